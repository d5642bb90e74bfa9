package checklist

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	formatTextStringConstant         = "text"
	formatYAMLStringConstant         = "yaml"
	formatMarkdownStringConstant     = "markdown"
	unsupportedFormatTemplate        = "%w %q (expected text, yaml, or markdown)"
	yamlIndentConstant               = 2
	markdownTitleConstant            = "Project hygiene report"
	markdownDirectoryTemplate        = "Directory: `%s`"
	markdownChecksHeadingConstant    = "Checks"
	markdownCheckColumnConstant      = "Check"
	markdownResultColumnConstant     = "Result"
	markdownDetailsColumnConstant    = "Details"
	markdownPassLabelConstant        = "pass"
	markdownFailLabelConstant        = "FAIL"
	markdownAllPassedMessageConstant = "All checks passed."
	markdownFailuresTemplate         = "%d of %d checks failed."
	markdownNoChecksMessageConstant  = "No checks were run."
)

// Format selects the report encoding.
type Format string

// Supported report formats.
const (
	FormatText     Format = Format(formatTextStringConstant)
	FormatYAML     Format = Format(formatYAMLStringConstant)
	FormatMarkdown Format = Format(formatMarkdownStringConstant)
)

// ErrUnsupportedFormat indicates an unknown report format name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// FormatNames lists the accepted format names, default first.
func FormatNames() []string {
	return []string{formatTextStringConstant, formatYAMLStringConstant, formatMarkdownStringConstant}
}

// ParseFormat resolves a format name case-insensitively. An empty name selects text.
func ParseFormat(formatName string) (Format, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(formatName))
	switch Format(normalizedName) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplate, ErrUnsupportedFormat, formatName)
	}
}

// UnmarshalText lets configuration decoding validate format names.
func (format *Format) UnmarshalText(text []byte) error {
	parsedFormat, parseError := ParseFormat(string(text))
	if parseError != nil {
		return parseError
	}
	*format = parsedFormat
	return nil
}

type yamlReportDocument struct {
	Project string           `yaml:"project"`
	Passed  bool             `yaml:"passed"`
	Checks  []yamlCheckEntry `yaml:"checks"`
}

type yamlCheckEntry struct {
	Category string `yaml:"category"`
	Success  bool   `yaml:"success"`
	Message  string `yaml:"message"`
}

// Encode writes the report to writer in the requested format. Quiet writes nothing for any format.
func Encode(writer io.Writer, report Report, format Format, options RenderOptions) error {
	if options.Quiet {
		return nil
	}

	switch format {
	case "", FormatText:
		return encodeText(writer, report, options)
	case FormatYAML:
		return encodeYAML(writer, report, options)
	case FormatMarkdown:
		return encodeMarkdown(writer, report, options)
	default:
		return fmt.Errorf(unsupportedFormatTemplate, ErrUnsupportedFormat, string(format))
	}
}

func encodeText(writer io.Writer, report Report, options RenderOptions) error {
	for _, line := range Render(report, options) {
		if _, writeError := fmt.Fprintln(writer, line); writeError != nil {
			return writeError
		}
	}
	return nil
}

func encodeYAML(writer io.Writer, report Report, options RenderOptions) error {
	document := yamlReportDocument{
		Project: options.Directory,
		Passed:  report.Passed(),
		Checks:  make([]yamlCheckEntry, 0, len(report)),
	}
	for _, category := range report.Categories() {
		result := report[category]
		document.Checks = append(document.Checks, yamlCheckEntry{
			Category: string(category),
			Success:  result.Success,
			Message:  result.Message,
		})
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func encodeMarkdown(writer io.Writer, report Report, options RenderOptions) error {
	titleCaser := cases.Title(language.English)
	document := markdown.NewMarkdown(writer)

	document.H1(markdownTitleConstant)
	document.PlainText("")
	if len(options.Directory) > 0 {
		document.PlainText(fmt.Sprintf(markdownDirectoryTemplate, options.Directory))
		document.PlainText("")
	}

	switch {
	case len(report) == 0:
		document.Note(markdownNoChecksMessageConstant)
	case report.Passed():
		document.Tip(markdownAllPassedMessageConstant)
	default:
		document.Cautionf(markdownFailuresTemplate, report.FailureCount(), len(report))
	}
	document.PlainText("")

	if len(report) > 0 {
		rows := make([][]string, 0, len(report))
		for _, category := range report.Categories() {
			result := report[category]
			resultLabel := markdownFailLabelConstant
			if result.Success {
				resultLabel = markdownPassLabelConstant
			}
			rows = append(rows, []string{titleCaser.String(string(category)), resultLabel, result.Message})
		}

		document.H2(markdownChecksHeadingConstant)
		document.PlainText("")
		document.Table(markdown.TableSet{
			Header: []string{markdownCheckColumnConstant, markdownResultColumnConstant, markdownDetailsColumnConstant},
			Rows:   rows,
		})
	}

	return document.Build()
}
