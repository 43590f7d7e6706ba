package reconciler

import (
	"sync"
	"time"

	"realmform/pkg/logging"
)

// defaultDebounce applies when a detector is built with a zero interval.
const defaultDebounce = 500 * time.Millisecond

// debouncer coalesces a burst of change events into its last event. Every
// run reloads all sources, so one event per quiet period is enough.
type debouncer struct {
	subsystem string
	interval  time.Duration
	out       chan<- ChangeEvent

	mu      sync.Mutex
	pending *ChangeEvent
	timer   *time.Timer
	seq     uint64
}

func newDebouncer(subsystem string, interval time.Duration, out chan<- ChangeEvent) *debouncer {
	if interval <= 0 {
		interval = defaultDebounce
	}
	return &debouncer{subsystem: subsystem, interval: interval, out: out}
}

// push schedules event, replacing the pending one. Two events for the same
// name merge their operations.
func (b *debouncer) push(event ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil && b.pending.Name == event.Name {
		event.Operation = mergeOperations(b.pending.Operation, event.Operation)
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.pending = &event
	b.seq++
	seq := b.seq
	b.timer = time.AfterFunc(b.interval, func() { b.fire(seq) })
}

func (b *debouncer) fire(seq uint64) {
	b.mu.Lock()
	if seq != b.seq || b.pending == nil {
		b.mu.Unlock()
		return
	}
	event := *b.pending
	b.pending = nil
	b.mu.Unlock()

	select {
	case b.out <- event:
		logging.Debug(b.subsystem, "Emitted change event: %s %s", event.Operation, event.Name)
	default:
		logging.Warn(b.subsystem, "Change event channel full, dropping event for %s", event.Name)
	}
}

// stop drops the pending event. A timer that already fired is ignored.
func (b *debouncer) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.pending = nil
	b.seq++
}

// mergeOperations folds two operations on the same name into the one a
// single observer would have seen.
func mergeOperations(old, new ChangeOperation) ChangeOperation {
	switch {
	case new == OperationDelete:
		return OperationDelete
	case old == OperationCreate:
		return OperationCreate
	default:
		return new
	}
}
