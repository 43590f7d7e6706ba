package formatting

import (
	"encoding/json"
	"io"

	"sigs.k8s.io/yaml"

	"realmform/internal/former"
)

// reportView is the serialized form of a report.
type reportView struct {
	Mode    string      `json:"mode"`
	Changed bool        `json:"changed"`
	Counts  countsView  `json:"counts"`
	Entries []entryView `json:"entries"`
}

type countsView struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Refused   int `json:"refused"`
}

type entryView struct {
	Realm    string   `json:"realm,omitempty"`
	Kind     string   `json:"kind"`
	Resource string   `json:"resource"`
	Outcome  string   `json:"outcome"`
	Changes  []string `json:"changes,omitempty"`
}

func newReportView(options Options, report *former.Report) reportView {
	view := reportView{
		Mode:    report.Mode.String(),
		Changed: report.Changed(),
		Counts: countsView{
			Created:   report.Count(former.OutcomeCreated),
			Updated:   report.Count(former.OutcomeUpdated),
			Deleted:   report.Count(former.OutcomeDeleted),
			Unchanged: report.Count(former.OutcomeUnchanged),
			Skipped:   report.Count(former.OutcomeSkipped),
			Refused:   report.Count(former.OutcomeRefused),
		},
		Entries: []entryView{},
	}
	for _, e := range visible(options, report) {
		entry := entryView{Realm: e.Realm, Kind: string(e.Kind), Resource: e.Resource, Outcome: string(e.Outcome)}
		if !options.Quiet {
			for _, c := range e.Changes {
				entry.Changes = append(entry.Changes, c.String())
			}
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// FormatReport writes the report as indented JSON.
func (f *JSONFormatter) FormatReport(w io.Writer, report *former.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newReportView(f.options, report))
}

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// FormatReport writes the report as YAML using the JSON field names.
func (f *YAMLFormatter) FormatReport(w io.Writer, report *former.Report) error {
	data, err := yaml.Marshal(newReportView(f.options, report))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
