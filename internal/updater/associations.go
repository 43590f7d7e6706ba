package updater

import (
	"sort"

	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
)

// CompositeRefs flattens declared composites into role references, realm
// roles first and client roles in clientId order.
func CompositeRefs(c *representation.RoleComposites) model.RoleRefs {
	if c == nil {
		return nil
	}
	refs := model.RoleRefs{}
	for _, name := range c.Realm {
		refs = append(refs, model.RoleRef{Name: name})
	}
	for _, clientID := range sortedKeys(c.Client) {
		for _, name := range c.Client[clientID] {
			refs = append(refs, model.RoleRef{ClientID: clientID, Name: name})
		}
	}
	return refs
}

// UpdateRoleRefs writes a role reference list. With replace the declared list
// becomes the new value; otherwise missing references are appended to the
// current list. Every declared reference must resolve.
func UpdateRoleRefs[M any](t *changes.Tracker[M], name string, ref func(*M) *model.RoleRefs, declared model.RoleRefs, replace bool, r Resolver, key string) error {
	if declared == nil {
		return nil
	}
	for _, role := range declared {
		if role.ClientID != "" && !r.HasClient(role.ClientID) {
			return unresolved(key, "client", role.ClientID)
		}
		if !r.HasRole(role) {
			kind := "realm role"
			if role.ClientID != "" {
				kind = "client role"
			}
			return unresolved(key, kind, role.String())
		}
	}

	desired := declared
	if !replace {
		var current model.RoleRefs
		if target := t.Target(); target != nil {
			current = *ref(target)
		}
		desired = append(model.RoleRefs{}, current...)
		for _, role := range declared {
			if !desired.Contains(role) {
				desired = append(desired, role)
			}
		}
	}
	set(t, name, ref, &desired)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
