package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/check-project/internal/checklist"
	"github.com/temirov/check-project/internal/clierr"
	"github.com/temirov/check-project/internal/execshell"
	"github.com/temirov/check-project/internal/filesystem"
	"github.com/temirov/check-project/internal/gitproject"
	"github.com/temirov/check-project/internal/ui"
	"github.com/temirov/check-project/internal/utils"
	flagutils "github.com/temirov/check-project/internal/utils/flags"
	pathutils "github.com/temirov/check-project/internal/utils/path"
)

const (
	applicationNameConstant                 = "check-project"
	applicationShortDescriptionConstant     = "Audit a git working tree for unfinished work"
	applicationLongDescriptionConstant      = "check-project verifies that a project has a non-empty README and LICENSE, no uncommitted changes, no stash, no unpushed commits, and at least one remote. It exits with 3 when any check fails."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	directoryFlagNameConstant               = "directory"
	directoryFlagShorthandConstant          = "d"
	directoryFlagUsageConstant              = "Project directory to check (defaults to the current directory)."
	verboseFlagNameConstant                 = "verbose"
	verboseFlagShorthandConstant            = "v"
	verboseFlagUsageConstant                = "Print the project path and an explanation for every check."
	quietFlagNameConstant                   = "quiet"
	quietFlagShorthandConstant              = "q"
	quietFlagUsageConstant                  = "Print nothing; report through the exit code only."
	formatFlagNameConstant                  = "format"
	formatFlagUsageConstant                 = "Report format."
	ignoreUnpushedFlagNameConstant          = "ignore-unpushed"
	ignoreUnpushedFlagUsageConstant         = "Skip the unpushed commits check."
	ignoreUncommittedFlagNameConstant       = "ignore-uncommitted"
	ignoreUncommittedFlagUsageConstant      = "Skip the uncommitted changes check."
	ignoreStashFlagNameConstant             = "ignore-stash"
	ignoreStashFlagUsageConstant            = "Skip the stash check."
	ignoreMissingReadmeFlagNameConstant     = "ignore-missing-readme"
	ignoreMissingReadmeFlagUsageConstant    = "Skip the README check."
	ignoreMissingLicenseFlagNameConstant    = "ignore-missing-license"
	ignoreMissingLicenseFlagUsageConstant   = "Skip the LICENSE check."
	ignoreNoRemotesFlagNameConstant         = "ignore-no-remotes"
	ignoreNoRemotesFlagUsageConstant        = "Skip the remotes check."
	ignoreUnpushedNoRemotesFlagNameConstant = "ignore-unpushed-if-no-remotes"
	ignoreUnpushedNoRemotesFlagUsage        = "Skip the unpushed commits check when the project has no remotes."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	checkConfigurationKeyConstant           = "check"
	checkDirectoryConfigKeyConstant         = checkConfigurationKeyConstant + ".directory"
	checkFormatConfigKeyConstant            = checkConfigurationKeyConstant + ".format"
	checkVerboseConfigKeyConstant           = checkConfigurationKeyConstant + ".verbose"
	checkQuietConfigKeyConstant             = checkConfigurationKeyConstant + ".quiet"
	checkSkipRemotesConfigKeyConstant       = checkConfigurationKeyConstant + ".skip_remotes"
	checkSkipReadmeConfigKeyConstant        = checkConfigurationKeyConstant + ".skip_readme"
	checkSkipLicenseConfigKeyConstant       = checkConfigurationKeyConstant + ".skip_license"
	checkSkipStashConfigKeyConstant         = checkConfigurationKeyConstant + ".skip_stash"
	checkSkipUncommittedConfigKeyConstant   = checkConfigurationKeyConstant + ".skip_uncommitted"
	checkSkipUnpushedConfigKeyConstant      = checkConfigurationKeyConstant + ".skip_unpushed"
	checkIgnoreUnpushedNoRemotesKeyConstant = checkConfigurationKeyConstant + ".ignore_unpushed_if_no_remotes"
	environmentPrefixConstant               = "CHECKPROJECT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	executorCreationErrorTemplateConstant   = "unable to prepare git execution: %w"
	reportWriteErrorTemplateConstant        = "unable to write report: %w"
	checkCompletedMessageConstant           = "project check completed"
	logFieldDirectoryConstant               = "directory"
	logFieldFailureCountConstant            = "failure_count"
	logFieldCheckCountConstant              = "check_count"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	conflictingOutputFlagsTemplateConstant  = "--%s and --%s cannot both be enabled"
	defaultDirectoryConstant                = "."
	defaultLogLevelConstant                 = utils.LogLevelError
	defaultLogFormatConstant                = utils.LogFormatStructured
)

// checkFlagValues holds the raw flag targets; they replace configuration values only when changed.
type checkFlagValues struct {
	directory               string
	format                  string
	verbose                 bool
	quiet                   bool
	ignoreUnpushed          bool
	ignoreUncommitted       bool
	ignoreStash             bool
	ignoreMissingReadme     bool
	ignoreMissingLicense    bool
	ignoreNoRemotes         bool
	ignoreUnpushedNoRemotes bool
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	consoleLogger         *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	checkFlags            checkFlagValues
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		consoleLogger:       zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runCheck(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	application.bindCheckFlags(cobraCommand)
	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) bindCheckFlags(command *cobra.Command) {
	flagSet := command.Flags()
	flagValues := &application.checkFlags

	flagSet.StringVarP(&flagValues.directory, directoryFlagNameConstant, directoryFlagShorthandConstant, defaultDirectoryConstant, directoryFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.verbose, verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.quiet, quietFlagNameConstant, quietFlagShorthandConstant, false, quietFlagUsageConstant)
	flagutils.AddChoiceFlag(flagSet, &flagValues.format, formatFlagNameConstant, "", string(checklist.FormatText), checklist.FormatNames(), formatFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreUnpushed, ignoreUnpushedFlagNameConstant, "", false, ignoreUnpushedFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreUncommitted, ignoreUncommittedFlagNameConstant, "", false, ignoreUncommittedFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreStash, ignoreStashFlagNameConstant, "", false, ignoreStashFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreMissingReadme, ignoreMissingReadmeFlagNameConstant, "", false, ignoreMissingReadmeFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreMissingLicense, ignoreMissingLicenseFlagNameConstant, "", false, ignoreMissingLicenseFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreNoRemotes, ignoreNoRemotesFlagNameConstant, "", false, ignoreNoRemotesFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &flagValues.ignoreUnpushedNoRemotes, ignoreUnpushedNoRemotesFlagNameConstant, "", false, ignoreUnpushedNoRemotesFlagUsage)
}

// configurationSearchPaths lists where config.yaml is looked up when --config is absent.
// The working directory is excluded: it is usually the project under audit.
func configurationSearchPaths() []string {
	return []string{filepath.Join(xdg.ConfigHome, applicationNameConstant)}
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if flagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if flagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if overrideError := application.applyCheckFlagOverrides(command); overrideError != nil {
		return overrideError
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) applyCheckFlagOverrides(command *cobra.Command) error {
	flagValues := application.checkFlags
	checkConfiguration := &application.configuration.Check

	if flagChanged(command, directoryFlagNameConstant) {
		checkConfiguration.Directory = flagValues.directory
	}
	if flagChanged(command, formatFlagNameConstant) {
		parsedFormat, parseError := checklist.ParseFormat(flagValues.format)
		if parseError != nil {
			return parseError
		}
		checkConfiguration.Format = parsedFormat
	}

	booleanOverrides := []struct {
		flagName string
		value    bool
		target   *bool
	}{
		{flagName: verboseFlagNameConstant, value: flagValues.verbose, target: &checkConfiguration.Verbose},
		{flagName: quietFlagNameConstant, value: flagValues.quiet, target: &checkConfiguration.Quiet},
		{flagName: ignoreNoRemotesFlagNameConstant, value: flagValues.ignoreNoRemotes, target: &checkConfiguration.SkipRemotes},
		{flagName: ignoreMissingReadmeFlagNameConstant, value: flagValues.ignoreMissingReadme, target: &checkConfiguration.SkipReadme},
		{flagName: ignoreMissingLicenseFlagNameConstant, value: flagValues.ignoreMissingLicense, target: &checkConfiguration.SkipLicense},
		{flagName: ignoreStashFlagNameConstant, value: flagValues.ignoreStash, target: &checkConfiguration.SkipStash},
		{flagName: ignoreUncommittedFlagNameConstant, value: flagValues.ignoreUncommitted, target: &checkConfiguration.SkipUncommitted},
		{flagName: ignoreUnpushedFlagNameConstant, value: flagValues.ignoreUnpushed, target: &checkConfiguration.SkipUnpushed},
		{flagName: ignoreUnpushedNoRemotesFlagNameConstant, value: flagValues.ignoreUnpushedNoRemotes, target: &checkConfiguration.IgnoreUnpushedIfNoRemotes},
	}
	for _, override := range booleanOverrides {
		if flagChanged(command, override.flagName) {
			*override.target = override.value
		}
	}

	verboseRequested := flagChanged(command, verboseFlagNameConstant) && flagValues.verbose
	quietRequested := flagChanged(command, quietFlagNameConstant) && flagValues.quiet
	switch {
	case verboseRequested && quietRequested:
		return fmt.Errorf(conflictingOutputFlagsTemplateConstant, verboseFlagNameConstant, quietFlagNameConstant)
	case verboseRequested:
		checkConfiguration.Quiet = false
	case checkConfiguration.Quiet:
		checkConfiguration.Verbose = false
	}
	return nil
}

func (application *Application) runCheck(command *cobra.Command) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	executionContext := command.Context()
	checkConfiguration := application.configuration.Check

	shellExecutor, executorError := application.newShellExecutor()
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}

	inspector, inspectorError := gitproject.NewInspector(executionContext, gitproject.Dependencies{
		GitExecutor:  shellExecutor,
		FileSystem:   filesystem.OSFileSystem{},
		HomeExpander: pathutils.NewHomeExpander(),
	}, checkConfiguration.Directory)
	if inspectorError != nil {
		return inspectorError
	}

	report, evaluationError := checklist.Evaluate(executionContext, inspector, checkConfiguration.Configuration)
	if evaluationError != nil {
		return evaluationError
	}

	renderOptions := checklist.RenderOptions{
		Verbose:   checkConfiguration.Verbose,
		Quiet:     checkConfiguration.Quiet,
		Directory: inspector.Path(),
	}
	if encodeError := checklist.Encode(command.OutOrStdout(), report, checkConfiguration.Format, renderOptions); encodeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, encodeError)
	}

	application.logger.Debug(
		checkCompletedMessageConstant,
		zap.String(logFieldDirectoryConstant, inspector.Path()),
		zap.Int(logFieldCheckCountConstant, len(report)),
		zap.Int(logFieldFailureCountConstant, report.FailureCount()),
	)

	if exitCode := checklist.ExitCode(report); exitCode != 0 {
		return clierr.Silent(exitCode)
	}
	return nil
}

// newShellExecutor adds the console event logger when human-readable logging is configured.
func (application *Application) newShellExecutor() (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()
	if utils.LogFormat(application.configuration.Common.LogFormat) != utils.LogFormatConsole {
		return execshell.NewShellExecutor(application.logger, commandRunner)
	}
	return execshell.NewShellExecutorWithObserver(application.logger, commandRunner, ui.NewConsoleCommandEventLogger(application.consoleLogger))
}

func (application *Application) flushLogger() error {
	if syncError := utils.SyncLogger(application.logger); syncError != nil {
		return syncError
	}
	return utils.SyncLogger(application.consoleLogger)
}

func flagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	flagDefinition := command.Flags().Lookup(flagName)
	if flagDefinition == nil {
		return false
	}
	return flagDefinition.Changed
}
