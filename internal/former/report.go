package former

import (
	"realmform/internal/changes"
	"realmform/internal/definition"
)

// Outcome is what a run did, or would do, to one resource.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeRefused   Outcome = "refused"
)

// Entry records the outcome for one resource.
type Entry struct {
	// Realm is the declared name of the enclosing realm.
	Realm    string
	Kind     definition.Kind
	Resource string
	Outcome  Outcome
	Changes  []changes.Change
}

// Report collects the entries of one run in visit order.
type Report struct {
	Mode    changes.Mode
	Entries []Entry
}

func (r *Report) add(realm string, kind definition.Kind, resource string, outcome Outcome, cs []changes.Change) {
	r.Entries = append(r.Entries, Entry{Realm: realm, Kind: kind, Resource: resource, Outcome: outcome, Changes: cs})
}

// Count returns the number of entries with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Changed reports whether the run created, updated or deleted anything.
func (r *Report) Changed() bool {
	return r.Count(OutcomeCreated)+r.Count(OutcomeUpdated)+r.Count(OutcomeDeleted) > 0
}

// Find returns the first entry for a resource of a realm.
func (r *Report) Find(realm string, kind definition.Kind, resource string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Realm == realm && e.Kind == kind && e.Resource == resource {
			return e, true
		}
	}
	return Entry{}, false
}
