package state

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"realmform/internal/model"
	"realmform/internal/model/memory"
	"realmform/pkg/logging"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Store is a SQLite backed identity server state.
type Store struct {
	db         *sql.DB
	adminRealm string
}

// Open creates or opens the database at path. adminRealm is created when the
// database holds no realm of that name.
func Open(path, adminRealm string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to state database: %w", err)
	}

	// A unit of work holds the only connection until it finishes, which
	// serializes runs against the same database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logging.Debug("StateStore", "Opened state database %s", path)
	return &Store{db: db, adminRealm: adminRealm}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("state database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Begin opens a unit of work. It blocks while another unit of work of the
// same store is open.
func (s *Store) Begin(ctx context.Context) (model.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin state transaction: %w", err)
	}
	snapshots, err := load(ctx, tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	work := memory.NewStore(snapshots...)
	if s.adminRealm != "" && work.Realms().Get(s.adminRealm) == nil {
		logging.Info("StateStore", "Seeding admin realm %q", s.adminRealm)
		work.Realms().Create(s.adminRealm, s.adminRealm)
	}
	logging.Debug("StateStore", "Loaded %d realms", len(snapshots))
	return &UnitOfWork{ctx: ctx, tx: tx, work: work}, nil
}

func load(ctx context.Context, tx *sql.Tx) ([]*memory.RealmSnapshot, error) {
	rows, err := tx.QueryContext(ctx, "SELECT name, document FROM realms ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query realms: %w", err)
	}
	defer rows.Close()

	var snapshots []*memory.RealmSnapshot
	for rows.Next() {
		var name, document string
		if err := rows.Scan(&name, &document); err != nil {
			return nil, fmt.Errorf("failed to scan realm row: %w", err)
		}
		snapshot := &memory.RealmSnapshot{}
		if err := json.Unmarshal([]byte(document), snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode realm %q: %w", name, err)
		}
		if snapshot.Realm == nil {
			return nil, fmt.Errorf("realm row %q holds no realm", name)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read realms: %w", err)
	}
	return snapshots, nil
}
