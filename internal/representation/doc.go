// Package representation holds the plain structs of the identity server's
// native export format.
//
// These types carry no reconciliation metadata. The definition package wraps
// them with a sync policy once a document has been decoded.
package representation
