package definition

import (
	"fmt"
	"sort"

	"realmform/internal/representation"
)

// Overlay recovers the definition view of representation values decoded from
// one document. It is read-only once decoding finished and may be shared.
type Overlay struct {
	policies map[any]SyncMode
}

func newOverlay() *Overlay {
	return &Overlay{policies: make(map[any]SyncMode)}
}

func (o *Overlay) add(rep any, mode SyncMode) {
	o.policies[rep] = mode
}

func (o *Overlay) policy(rep any) (SyncMode, bool) {
	if o == nil {
		return "", false
	}
	mode, ok := o.policies[rep]
	return mode, ok
}

// Len returns the number of indexed nodes.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.policies)
}

// As returns the definition view of rep. A nil rep yields nil. A rep that was
// not decoded through this overlay fails with UnsupportedTypeError.
func As[R Representation](o *Overlay, rep *R) (*Definition[R], error) {
	if rep == nil {
		return nil, nil
	}
	mode, ok := o.policy(rep)
	if !ok {
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", rep)}
	}
	return &Definition[R]{Value: rep, SyncMode: mode}, nil
}

// AsList converts a list. Nil and empty lists pass through. Only the first
// non-nil element is validated; the others are wrapped with their decoded
// policy or FULL when unknown.
func AsList[R Representation](o *Overlay, reps []*R) ([]*Definition[R], error) {
	if reps == nil {
		return nil, nil
	}
	defs := make([]*Definition[R], len(reps))
	checked := false
	for i, rep := range reps {
		if rep == nil {
			continue
		}
		if !checked {
			def, err := As(o, rep)
			if err != nil {
				return nil, err
			}
			defs[i] = def
			checked = true
			continue
		}
		mode, ok := o.policy(rep)
		if !ok {
			mode = SyncModeFull
		}
		defs[i] = &Definition[R]{Value: rep, SyncMode: mode}
	}
	return defs, nil
}

// AsMap converts a map of lists. The first non-empty list in key order is
// validated like AsList; the remaining lists are converted unchecked.
func AsMap[R Representation](o *Overlay, reps map[string][]*R) (map[string][]*Definition[R], error) {
	if reps == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(reps))
	for k := range reps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string][]*Definition[R], len(reps))
	checked := false
	for _, k := range keys {
		list := reps[k]
		if !checked && hasElement(list) {
			defs, err := AsList(o, list)
			if err != nil {
				return nil, err
			}
			out[k] = defs
			checked = true
			continue
		}
		defs := make([]*Definition[R], len(list))
		for i, rep := range list {
			if rep == nil {
				continue
			}
			mode, ok := o.policy(rep)
			if !ok {
				mode = SyncModeFull
			}
			defs[i] = &Definition[R]{Value: rep, SyncMode: mode}
		}
		out[k] = defs
	}
	return out, nil
}

func hasElement[R any](list []*R) bool {
	for _, rep := range list {
		if rep != nil {
			return true
		}
	}
	return false
}

// Cast returns the definition view of an arbitrary object: nil for nil, the
// object itself for a definition, the indexed definition for a decoded
// representation, and UnsupportedTypeError for anything else.
func (o *Overlay) Cast(obj any) (Node, error) {
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case Node:
		return v, nil
	case *representation.Realm:
		return node(o, v)
	case *representation.Client:
		return node(o, v)
	case *representation.ClientScope:
		return node(o, v)
	case *representation.ProtocolMapper:
		return node(o, v)
	case *representation.Role:
		return node(o, v)
	case *representation.Roles:
		return node(o, v)
	case *representation.AuthenticationFlow:
		return node(o, v)
	case *representation.AuthenticationExecution:
		return node(o, v)
	case *representation.AuthenticatorConfig:
		return node(o, v)
	case *representation.Component:
		return node(o, v)
	case *representation.RequiredAction:
		return node(o, v)
	case *representation.IdentityProvider:
		return node(o, v)
	case *representation.IdentityProviderMapper:
		return node(o, v)
	case *representation.Group:
		return node(o, v)
	default:
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", obj)}
	}
}

func node[R Representation](o *Overlay, rep *R) (Node, error) {
	def, err := As(o, rep)
	if err != nil || def == nil {
		return nil, err
	}
	return def, nil
}
