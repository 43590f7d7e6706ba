package updater

import (
	"fmt"

	"realmform/internal/changes"
	"realmform/internal/model"
)

// Resolver answers cross-reference lookups for updaters. Implementations
// consult the live state first and, in a preview, fall back to the declared
// document for resources that would have been created earlier in the run.
type Resolver interface {
	FlowID(alias string) (string, bool)
	AuthenticatorConfigID(alias string) (string, bool)
	HasClientScope(name string) bool
	HasClient(clientID string) bool
	HasIdentityProvider(alias string) bool
	RealmRoleID(name string) (string, bool)
	HasRole(ref model.RoleRef) bool
}

// UnresolvedReferenceError is returned when a declared node references a
// resource that exists neither live nor in the document.
type UnresolvedReferenceError struct {
	// Key describes the node holding the reference.
	Key string
	// Kind is the kind of the missing resource.
	Kind string
	// Reference is the alias or name that did not resolve.
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown %s %q", e.Key, e.Kind, e.Reference)
}

func unresolved(key, kind, reference string) error {
	return &UnresolvedReferenceError{Key: key, Kind: kind, Reference: reference}
}

// field builds a property from a field reference.
func field[M any, V any](name string, ref func(*M) *V) changes.Property[M, V] {
	return changes.Property[M, V]{
		Name: name,
		Get:  func(m *M) V { return *ref(m) },
		Set:  func(m *M, v V) { *ref(m) = v },
	}
}

// set writes a declared value through the tracker.
func set[M any, V any](t *changes.Tracker[M], name string, ref func(*M) *V, value *V) {
	changes.Set(t, field(name, ref), value)
}

// convert maps a present value and keeps nil as nil.
func convert[A any, B any](p *A, f func(A) B) *B {
	if p == nil {
		return nil
	}
	v := f(*p)
	return &v
}

// list turns a declared list into an optional value. A nil list is absent.
func list[T any](values []T) *[]T {
	if values == nil {
		return nil
	}
	return &values
}

// dict turns a declared map into an optional value. A nil map is absent.
func dict[K comparable, V any](values map[K]V) *map[K]V {
	if values == nil {
		return nil
	}
	return &values
}
