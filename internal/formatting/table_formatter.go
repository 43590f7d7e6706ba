package formatting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"realmform/internal/former"
	strs "realmform/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatReport writes one table row per resource, the changes of every
// changed resource and a summary line.
func (f *TableFormatter) FormatReport(w io.Writer, report *former.Report) error {
	entries := visible(f.options, report)
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", f.colorize(text.FgYellow, "No resources to show"), summary(report))
		return err
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"Realm", "Kind", "Resource", "Outcome"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Realm, string(e.Kind), e.Resource, f.outcome(e.Outcome)})
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	if !f.options.Quiet {
		if err := writeChanges(w, entries); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, summary(report))
	return err
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	if f.options.Color {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

func (f *TableFormatter) outcome(o former.Outcome) string {
	switch o {
	case former.OutcomeCreated:
		return f.colorize(text.FgGreen, string(o))
	case former.OutcomeUpdated:
		return f.colorize(text.FgYellow, string(o))
	case former.OutcomeDeleted, former.OutcomeRefused:
		return f.colorize(text.FgRed, string(o))
	default:
		return string(o)
	}
}

func (f *TableFormatter) colorize(color text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return color.Sprint(s)
}

// writeChanges lists the recorded changes below the resource they belong to.
func writeChanges(w io.Writer, entries []former.Entry) error {
	header := false
	for _, e := range entries {
		if len(e.Changes) == 0 {
			continue
		}
		if !header {
			if _, err := fmt.Fprintln(w, "\nChanges:"); err != nil {
				return err
			}
			header = true
		}
		label := e.Resource
		if e.Realm != "" && e.Kind != "realm" {
			label = e.Realm + ": " + label
		}
		if _, err := fmt.Fprintf(w, "  %s\n", label); err != nil {
			return err
		}
		for _, c := range e.Changes {
			if _, err := fmt.Fprintf(w, "    %s\n", strs.Truncate(c.String(), strs.DefaultChangeMaxLen)); err != nil {
				return err
			}
		}
	}
	if header {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}
