package reconciler

import (
	"context"
	"fmt"
	"time"

	"realmform/internal/changes"
	"realmform/internal/model"
)

// ChangeEvent represents a detected change in a realm source.
type ChangeEvent struct {
	// Operation describes what kind of change occurred.
	Operation ChangeOperation

	// Timestamp is when the change was detected.
	Timestamp time.Time

	// Source indicates where the change came from.
	Source ChangeSource

	// Name is the file path or ConfigMap that changed.
	Name string
}

// ChangeOperation represents the type of change detected.
type ChangeOperation string

const (
	// OperationCreate indicates a new document appeared.
	OperationCreate ChangeOperation = "Create"

	// OperationUpdate indicates an existing document was modified.
	OperationUpdate ChangeOperation = "Update"

	// OperationDelete indicates a document was removed.
	OperationDelete ChangeOperation = "Delete"
)

// ChangeSource indicates where a change originated.
type ChangeSource string

const (
	// SourceFilesystem indicates the change came from filesystem watching.
	SourceFilesystem ChangeSource = "Filesystem"

	// SourceKubernetes indicates the change came from a ConfigMap informer.
	SourceKubernetes ChangeSource = "Kubernetes"
)

// ChangeDetector detects changes in realm sources.
type ChangeDetector interface {
	// Start begins watching and sends events on changes until ctx is done
	// or Stop is called.
	Start(ctx context.Context, changes chan<- ChangeEvent) error

	// Stop gracefully stops the detector.
	Stop() error

	// GetSource returns the change source type.
	GetSource() ChangeSource
}

// Backend opens the unit of work a run executes in.
type Backend interface {
	Begin(ctx context.Context) (model.UnitOfWork, error)
}

// ReconcileError wraps a failed run. The unit of work has been rolled back.
type ReconcileError struct {
	Mode changes.Mode
	Err  error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("%s run failed: %v", e.Mode, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}
