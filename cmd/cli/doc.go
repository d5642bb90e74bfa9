// Package cli builds the check-project command: a single cobra root command
// that loads configuration, constructs the zap loggers, audits one
// repository, and writes the report to standard output.
package cli
