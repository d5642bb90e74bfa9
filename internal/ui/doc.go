// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns git query lifecycle events into concise
// progress messages, while detailed telemetry continues to flow through the
// structured logger owned by the shell executor.
package ui
