// Package former reconciles a decoded realm document against the live state
// of an identity server.
//
// Every resource kind has an item former, which looks up the live resource
// by natural key, creates it when absent, applies the declared fields
// through a change tracker and forms its children, and a collection former,
// which forms a declared list and, under sync mode FULL, removes live
// resources of the same scope that the list does not name.
//
// Formers are looked up by kind through a Formers registry:
//
//	formers := former.NewFormers()
//	report, err := formers.Run(session, doc, former.Options{Mode: changes.Preview})
//
// A Context carries the current realm, client, client scope, flow and
// component parent down the tree. In a preview, a subtree below a resource
// that does not exist yet is formed without lookups, so the preview reports
// exactly the changes a committing run would make.
package former
