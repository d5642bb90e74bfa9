package checklist

// Configuration selects which checks Evaluate runs.
type Configuration struct {
	SkipRemotes     bool `mapstructure:"skip_remotes"`
	SkipReadme      bool `mapstructure:"skip_readme"`
	SkipLicense     bool `mapstructure:"skip_license"`
	SkipStash       bool `mapstructure:"skip_stash"`
	SkipUncommitted bool `mapstructure:"skip_uncommitted"`
	SkipUnpushed    bool `mapstructure:"skip_unpushed"`

	// IgnoreUnpushedIfNoRemotes skips the unpushed check when the repository has no remotes at evaluation time.
	IgnoreUnpushedIfNoRemotes bool `mapstructure:"ignore_unpushed_if_no_remotes"`
}
