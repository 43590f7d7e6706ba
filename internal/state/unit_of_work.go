package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"realmform/internal/model"
	"realmform/internal/model/memory"
	"realmform/pkg/logging"
)

// UnitOfWork is one run against a Store.
type UnitOfWork struct {
	ctx  context.Context
	tx   *sql.Tx
	work *memory.Store
	done bool
}

// Session returns the in-memory session of the unit of work.
func (u *UnitOfWork) Session() model.Session {
	return u.work
}

// Commit replaces the stored realms with the session state.
func (u *UnitOfWork) Commit() error {
	if u.done {
		return memory.ErrTransactionDone
	}
	u.done = true

	if err := u.write(); err != nil {
		u.tx.Rollback()
		return err
	}
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state transaction: %w", err)
	}
	return nil
}

func (u *UnitOfWork) write() error {
	snapshots, err := u.work.Export()
	if err != nil {
		return err
	}
	if _, err := u.tx.ExecContext(u.ctx, "DELETE FROM realms"); err != nil {
		return fmt.Errorf("failed to clear realms: %w", err)
	}

	stmt, err := u.tx.PrepareContext(u.ctx, "INSERT INTO realms (id, name, position, document) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare realm insert: %w", err)
	}
	defer stmt.Close()

	for i, snapshot := range snapshots {
		document, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode realm %q: %w", snapshot.Realm.Name, err)
		}
		if _, err := stmt.ExecContext(u.ctx, snapshot.Realm.ID, snapshot.Realm.Name, i, string(document)); err != nil {
			return fmt.Errorf("failed to store realm %q: %w", snapshot.Realm.Name, err)
		}
	}
	logging.Debug("StateStore", "Stored %d realms", len(snapshots))
	return nil
}

// Rollback discards the unit of work. Rolling back a finished unit of work
// is a no-op so it can be deferred.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back state transaction: %w", err)
	}
	return nil
}
