// Package utils exposes the configuration and logging plumbing shared by the CLI.
//
// ConfigurationLoader layers an embedded YAML document, an optional user file
// and CHECKPROJECT_* environment variables through Viper. LoggerFactory builds
// the zap loggers the command writes its diagnostics to.
package utils
