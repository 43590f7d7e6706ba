// Package memory implements the live model on plain Go values.
//
// It stands in for the identity server in tests and backs the SQLite state
// store, which persists RealmSnapshot values between runs. Removals that
// would leave a dangling reference (a client scope still assigned to a
// client, a flow still bound to the realm) are refused the way a real server
// refuses them.
package memory
