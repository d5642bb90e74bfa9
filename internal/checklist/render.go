package checklist

import "fmt"

const (
	passPrefixConstant            = "    pass: "
	failPrefixConstant            = "*** FAIL: "
	projectHeaderTemplateConstant = "Project %s"
	verboseLineTemplateConstant   = "%s%s -- %s"
	plainLineTemplateConstant     = "%s%s"
)

// RenderOptions controls text rendering.
type RenderOptions struct {
	Verbose bool
	Quiet   bool
	// Directory is the absolute path printed in the verbose header.
	Directory string
}

// Render formats the report as one line per category in lexicographic order.
// Quiet yields no lines. Verbose adds a leading "Project <dir>" line and each entry's message.
func Render(report Report, options RenderOptions) []string {
	lines := make([]string, 0, len(report)+1)
	if options.Quiet {
		return lines
	}
	if options.Verbose {
		lines = append(lines, fmt.Sprintf(projectHeaderTemplateConstant, options.Directory))
	}

	for _, category := range report.Categories() {
		result := report[category]
		prefix := failPrefixConstant
		if result.Success {
			prefix = passPrefixConstant
		}
		if options.Verbose {
			lines = append(lines, fmt.Sprintf(verboseLineTemplateConstant, prefix, category, result.Message))
			continue
		}
		lines = append(lines, fmt.Sprintf(plainLineTemplateConstant, prefix, category))
	}
	return lines
}
