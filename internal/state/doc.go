// Package state persists the identity server state between runs in a SQLite
// database.
//
// A Store hands out units of work. Begin loads every realm into an in-memory
// session inside a database transaction; Commit writes the session back and
// commits the transaction, Rollback discards both. The admin realm is seeded
// on first use so a fresh database behaves like a fresh identity server.
//
//	store, err := state.Open("realmform.db", "master")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	work, err := store.Begin(ctx)
//	...
package state
