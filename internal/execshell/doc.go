// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// notifications, OSCommandRunner runs processes through os/exec, and
// CommandFailedError carries the exit code and diagnostic output of a command
// that ran but failed so callers can classify the failure.
package execshell
