package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOperations(t *testing.T) {
	tests := []struct {
		old      ChangeOperation
		new      ChangeOperation
		expected ChangeOperation
	}{
		{OperationCreate, OperationUpdate, OperationCreate},
		{OperationCreate, OperationDelete, OperationDelete},
		{OperationUpdate, OperationUpdate, OperationUpdate},
		{OperationUpdate, OperationDelete, OperationDelete},
		{OperationDelete, OperationCreate, OperationCreate},
	}

	for _, tt := range tests {
		t.Run(string(tt.old)+"_"+string(tt.new), func(t *testing.T) {
			if got := mergeOperations(tt.old, tt.new); got != tt.expected {
				t.Errorf("mergeOperations(%s, %s) = %s, want %s", tt.old, tt.new, got, tt.expected)
			}
		})
	}
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	out := make(chan ChangeEvent, 10)
	b := newDebouncer("test", 20*time.Millisecond, out)

	b.push(ChangeEvent{Operation: OperationCreate, Name: "a.yaml"})
	b.push(ChangeEvent{Operation: OperationUpdate, Name: "a.yaml"})
	b.push(ChangeEvent{Operation: OperationUpdate, Name: "b.yaml"})

	select {
	case event := <-out:
		assert.Equal(t, "b.yaml", event.Name)
		assert.Equal(t, OperationUpdate, event.Operation)
	case <-time.After(2 * time.Second):
		require.Fail(t, "no event emitted")
	}

	select {
	case event := <-out:
		t.Fatalf("unexpected second event %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_MergesSameName(t *testing.T) {
	out := make(chan ChangeEvent, 10)
	b := newDebouncer("test", 20*time.Millisecond, out)

	b.push(ChangeEvent{Operation: OperationCreate, Name: "a.yaml"})
	b.push(ChangeEvent{Operation: OperationUpdate, Name: "a.yaml"})

	select {
	case event := <-out:
		assert.Equal(t, OperationCreate, event.Operation)
	case <-time.After(2 * time.Second):
		require.Fail(t, "no event emitted")
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	out := make(chan ChangeEvent, 10)
	b := newDebouncer("test", 20*time.Millisecond, out)

	b.push(ChangeEvent{Operation: OperationUpdate, Name: "a.yaml"})
	b.stop()

	select {
	case event := <-out:
		t.Fatalf("unexpected event %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNewDebouncer_DefaultInterval(t *testing.T) {
	b := newDebouncer("test", 0, make(chan ChangeEvent))
	assert.Equal(t, defaultDebounce, b.interval)
}
