// Package model defines the boundary to the live identity server: the live
// resource structs and the session interfaces the reconciliation engine
// reads and mutates.
//
// Live resources are plain structs handed out by pointer and owned by the
// session. The engine mutates them in place and then calls the matching
// Update method once, only when a change was recorded.
//
// Associations between resources are stored by natural key (role names,
// client scope names) so a snapshot of a realm is self-describing.
package model
