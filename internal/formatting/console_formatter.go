package formatting

import (
	"fmt"
	"io"

	"realmform/internal/former"
	strs "realmform/pkg/strings"
)

// ConsoleFormatter provides simple line based output
type ConsoleFormatter struct {
	options Options
}

// FormatReport writes one line per resource followed by its changes.
func (f *ConsoleFormatter) FormatReport(w io.Writer, report *former.Report) error {
	for _, e := range visible(f.options, report) {
		realm := e.Realm
		if realm == "" {
			realm = "-"
		}
		if _, err := fmt.Fprintf(w, "%s %s %s: %s\n", realm, e.Kind, e.Resource, e.Outcome); err != nil {
			return err
		}
		if f.options.Quiet {
			continue
		}
		for _, c := range e.Changes {
			if _, err := fmt.Fprintf(w, "  %s\n", strs.Truncate(c.String(), strs.DefaultChangeMaxLen)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, summary(report))
	return err
}
