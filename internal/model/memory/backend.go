package memory

import (
	"context"
	"errors"
	"sync"

	"realmform/internal/model"
)

// ErrTransactionDone is returned when a finished unit of work is used again.
var ErrTransactionDone = errors.New("unit of work already committed or rolled back")

// Backend hands out units of work over a Store. Each unit of work operates
// on a private copy that replaces the store on commit. Only one unit of work
// may be open at a time.
type Backend struct {
	mu    sync.Mutex
	store *Store
}

// NewBackend wraps a store.
func NewBackend(store *Store) *Backend {
	if store == nil {
		store = NewStore()
	}
	return &Backend{store: store}
}

// Store returns the last committed store.
func (b *Backend) Store() *Store {
	return b.store
}

// Begin opens a unit of work. It blocks while another one is open.
func (b *Backend) Begin(ctx context.Context) (model.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	work, err := b.store.Clone()
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	return &Tx{backend: b, work: work}, nil
}

// Tx is a unit of work over a Backend.
type Tx struct {
	backend *Backend
	work    *Store
	done    bool
}

// Session returns the private store of the unit of work.
func (t *Tx) Session() model.Session {
	return t.work
}

// Commit publishes the private store.
func (t *Tx) Commit() error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	t.backend.store = t.work
	t.backend.mu.Unlock()
	return nil
}

// Rollback discards the private store. Rolling back a finished unit of work
// is a no-op so it can be deferred.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.backend.mu.Unlock()
	return nil
}
