package cli

import (
	"github.com/temirov/check-project/internal/checklist"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Check  CheckConfiguration             `mapstructure:"check"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// CheckConfiguration holds the audit options that flags may override.
type CheckConfiguration struct {
	Directory string           `mapstructure:"directory"`
	Format    checklist.Format `mapstructure:"format"`
	Verbose   bool             `mapstructure:"verbose"`
	Quiet     bool             `mapstructure:"quiet"`

	checklist.Configuration `mapstructure:",squash"`
}

func defaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:         string(defaultLogLevelConstant),
		commonLogFormatConfigKeyConstant:        string(defaultLogFormatConstant),
		checkDirectoryConfigKeyConstant:         defaultDirectoryConstant,
		checkFormatConfigKeyConstant:            string(checklist.FormatText),
		checkVerboseConfigKeyConstant:           false,
		checkQuietConfigKeyConstant:             false,
		checkSkipRemotesConfigKeyConstant:       false,
		checkSkipReadmeConfigKeyConstant:        false,
		checkSkipLicenseConfigKeyConstant:       false,
		checkSkipStashConfigKeyConstant:         false,
		checkSkipUncommittedConfigKeyConstant:   false,
		checkSkipUnpushedConfigKeyConstant:      false,
		checkIgnoreUnpushedNoRemotesKeyConstant: false,
	}
}
