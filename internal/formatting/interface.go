// Package formatting renders reconciliation reports for the command line.
//
// Reports can be rendered as a table, as plain console lines, or as JSON or
// YAML for further processing.
package formatting

import (
	"fmt"
	"io"

	"realmform/internal/former"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Omit the change listing and unchanged resources
	Color  bool // Enable colored output
}

// Formatter renders a reconciliation report.
type Formatter interface {
	FormatReport(w io.Writer, report *former.Report) error
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, console, json or yaml)", s)
	}
}

// NewFormatter creates the appropriate formatter based on options
func NewFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	case FormatConsole:
		return &ConsoleFormatter{options: options}
	case FormatTable:
		fallthrough
	default:
		return &TableFormatter{options: options}
	}
}

// visible returns the entries to show under the options.
func visible(options Options, report *former.Report) []former.Entry {
	if !options.Quiet {
		return report.Entries
	}
	var out []former.Entry
	for _, e := range report.Entries {
		if e.Outcome != former.OutcomeUnchanged {
			out = append(out, e)
		}
	}
	return out
}

// summary is the one-line outcome count of a report.
func summary(report *former.Report) string {
	return fmt.Sprintf("%s: %d created, %d updated, %d deleted, %d unchanged, %d skipped, %d refused",
		report.Mode,
		report.Count(former.OutcomeCreated),
		report.Count(former.OutcomeUpdated),
		report.Count(former.OutcomeDeleted),
		report.Count(former.OutcomeUnchanged),
		report.Count(former.OutcomeSkipped),
		report.Count(former.OutcomeRefused))
}
