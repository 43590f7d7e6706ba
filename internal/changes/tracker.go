package changes

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/api/equality"

	"realmform/pkg/logging"
)

// Mode selects whether tracked writes reach the live resource.
type Mode int

const (
	// Commit forwards effective changes to the target and records them.
	Commit Mode = iota
	// Preview records effective changes without forwarding them.
	Preview
)

func (m Mode) String() string {
	if m == Preview {
		return "preview"
	}
	return "commit"
}

// Property pairs the accessor and mutator of one field of M.
type Property[M any, V any] struct {
	Name string
	Get  func(*M) V
	Set  func(*M, V)
}

// Change is one effective field difference.
type Change struct {
	Attribute string
	Old       any
	New       any
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s >>> %s", c.Attribute, render(c.Old), render(c.New))
}

// Tracker intercepts writes to one live resource. The target is nil when
// the resource does not exist yet and the run is a preview.
type Tracker[M any] struct {
	target  *M
	mode    Mode
	fresh   bool
	changes []Change
}

// Track wraps an existing resource.
func Track[M any](target *M, mode Mode) *Tracker[M] {
	return &Tracker[M]{target: target, mode: mode}
}

// TrackNew wraps a resource that was just created, or nil for a resource
// that would be created by a committing run. Every comparison uses a null
// baseline so both modes report the same changes.
func TrackNew[M any](target *M, mode Mode) *Tracker[M] {
	return &Tracker[M]{target: target, mode: mode, fresh: true}
}

// Target returns the tracked resource, nil in a preview of a new resource.
func (t *Tracker[M]) Target() *M {
	return t.target
}

// Mode returns the tracking mode.
func (t *Tracker[M]) Mode() Mode {
	return t.mode
}

// Changed reports whether at least one change was recorded.
func (t *Tracker[M]) Changed() bool {
	return len(t.changes) > 0
}

// Changes returns the recorded changes in call order.
func (t *Tracker[M]) Changes() []Change {
	return t.changes
}

// String joins the change lines.
func (t *Tracker[M]) String() string {
	lines := make([]string, len(t.changes))
	for i, c := range t.changes {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n ")
}

// Set writes *value through p when value is present and differs from the
// current value. A nil value means the field is absent and leaves the
// resource untouched.
func Set[M any, V any](t *Tracker[M], p Property[M, V], value *V) {
	if value == nil {
		return
	}

	var old any
	switch {
	case t.fresh || t.target == nil:
		old = nil
	case p.Get == nil:
		logging.Warn("Tracker", "No accessor for %s, reporting null as previous value", p.Name)
		old = nil
	default:
		current := p.Get(t.target)
		if equality.Semantic.DeepEqual(current, *value) {
			return
		}
		old = current
	}

	if t.mode == Commit && t.target != nil {
		p.Set(t.target, *value)
	}
	t.changes = append(t.changes, Change{Attribute: p.Name, Old: old, New: *value})
}

// Record appends a change computed outside of a property write.
func (t *Tracker[M]) Record(attribute string, before, after any) {
	t.changes = append(t.changes, Change{Attribute: attribute, Old: before, New: after})
}

func render(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if val == nil {
			return "null"
		}
		return "[" + strings.Join(val, ", ") + "]"
	case map[string]string:
		if val == nil {
			return "null"
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + val[k]
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
