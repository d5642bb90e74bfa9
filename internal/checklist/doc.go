// Package checklist decides which project hygiene checks run, collects their
// verdicts into a Report, and derives the exit code and the text, YAML or
// Markdown rendering of that report.
package checklist
