package former

import (
	"sort"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
	"realmform/pkg/logging"
)

// compositesFormer applies role composites once every role of the realm
// and its clients exists. Under FULL the declared composites replace the
// live ones; otherwise they are added.
type compositesFormer struct {
	subsystem string
}

func (f *compositesFormer) Form(c *Context, def *definition.Definition[representation.Roles]) error {
	if def == nil || def.Value == nil {
		return nil
	}
	if def.Policy().IsIgnore() {
		logging.Info(f.subsystem, "roles of realm %s sync mode IGNORE, skipping composites", quote(c.realmName()))
		return nil
	}
	replace := c.SyncMode().IsFull()

	for _, role := range def.Value.Realm {
		if err := f.formRole(c, "", role, replace); err != nil {
			return err
		}
	}
	clientIDs := make([]string, 0, len(def.Value.Client))
	for clientID := range def.Value.Client {
		clientIDs = append(clientIDs, clientID)
	}
	sort.Strings(clientIDs)
	for _, clientID := range clientIDs {
		for _, role := range def.Value.Client[clientID] {
			if err := f.formRole(c, clientID, role, replace); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *compositesFormer) formRole(c *Context, clientID string, d *representation.Role, replace bool) error {
	if d == nil || d.Composites == nil {
		return nil
	}
	if def, err := definition.As(c.overlay, d); err == nil && def.Policy().IsIgnore() {
		return nil
	}
	ref := model.RoleRef{ClientID: clientID, Name: representation.Deref(d.Name)}
	resource := "role " + quote(ref.Name)
	if clientID != "" {
		resource += " of client " + quote(clientID)
	}

	role, container := c.liveRole(ref)
	if role == nil && c.Committing() {
		// The role was skipped, so are its composites.
		return nil
	}
	persist := func(r *model.Role) { container.UpdateRole(r) }
	return formRoleRefs(c, f.subsystem, definition.KindRoles, resource+" composites", role,
		func(r *model.Role) *model.RoleRefs { return &r.Composites }, "Composites",
		updater.CompositeRefs(d.Composites), replace, persist)
}

// liveRole finds a role by reference in the current realm.
func (c *Context) liveRole(ref model.RoleRef) (*model.Role, model.RoleContainer) {
	if c.Phantom() {
		return nil, nil
	}
	container := c.resources.RealmRoles()
	if ref.ClientID != "" {
		client := c.resources.ClientByClientID(ref.ClientID)
		if client == nil {
			return nil, nil
		}
		container = c.resources.ClientRoles(client.ID)
	}
	return container.Role(ref.Name), container
}

type scopeTarget struct {
	client      string
	clientScope string
}

func (t scopeTarget) String() string {
	if t.client != "" {
		return "client " + quote(t.client)
	}
	return "client scope " + quote(t.clientScope)
}

// formScopeMappings applies the realm's scope mappings and client scope
// mappings, aggregated per client or client scope.
func formScopeMappings(c *Context, d *representation.Realm) error {
	const subsystem = "ScopeMappingsFormer"
	var targets []scopeTarget
	declared := make(map[scopeTarget]model.RoleRefs)

	add := func(m *representation.ScopeMapping, clientID string) error {
		if m == nil {
			return nil
		}
		target := scopeTarget{client: representation.Deref(m.Client), clientScope: representation.Deref(m.ClientScope)}
		if (target.client == "") == (target.clientScope == "") {
			return &updater.UnresolvedReferenceError{
				Key:       "scope mapping of realm " + quote(d.Name()),
				Kind:      "client or client scope",
				Reference: target.client + target.clientScope,
			}
		}
		if _, ok := declared[target]; !ok {
			targets = append(targets, target)
			declared[target] = model.RoleRefs{}
		}
		for _, name := range m.Roles {
			ref := model.RoleRef{ClientID: clientID, Name: name}
			if !declared[target].Contains(ref) {
				declared[target] = append(declared[target], ref)
			}
		}
		return nil
	}

	for _, m := range d.ScopeMappings {
		if err := add(m, ""); err != nil {
			return err
		}
	}
	clientIDs := make([]string, 0, len(d.ClientScopeMappings))
	for clientID := range d.ClientScopeMappings {
		clientIDs = append(clientIDs, clientID)
	}
	sort.Strings(clientIDs)
	for _, clientID := range clientIDs {
		for _, m := range d.ClientScopeMappings[clientID] {
			if err := add(m, clientID); err != nil {
				return err
			}
		}
	}

	replace := c.SyncMode().IsFull()
	for _, target := range targets {
		resource := target.String() + " scope mappings"
		if target.client != "" {
			if !c.HasClient(target.client) {
				return &updater.UnresolvedReferenceError{Key: "scope mapping", Kind: "client", Reference: target.client}
			}
			var client *model.Client
			if !c.Phantom() {
				client = c.resources.ClientByClientID(target.client)
			}
			err := formRoleRefs(c, subsystem, definition.KindClient, resource, client,
				func(m *model.Client) *model.RoleRefs { return &m.ScopeMappings }, "ScopeMappings",
				declared[target], replace, func(m *model.Client) { c.resources.UpdateClient(m) })
			if err != nil {
				return err
			}
			continue
		}
		if !c.HasClientScope(target.clientScope) {
			return &updater.UnresolvedReferenceError{Key: "scope mapping", Kind: "client scope", Reference: target.clientScope}
		}
		var scope *model.ClientScope
		if !c.Phantom() {
			scope = c.resources.ClientScopeByName(target.clientScope)
		}
		err := formRoleRefs(c, subsystem, definition.KindClientScope, resource, scope,
			func(m *model.ClientScope) *model.RoleRefs { return &m.ScopeMappings }, "ScopeMappings",
			declared[target], replace, func(m *model.ClientScope) { c.resources.UpdateClientScope(m) })
		if err != nil {
			return err
		}
	}
	return nil
}

// formRoleRefs writes one role reference list of target. A nil target is a
// resource that only a committing run would have created; like a target
// created by this run it is compared against a null baseline.
func formRoleRefs[M any](c *Context, subsystem string, kind definition.Kind, resource string, target *M,
	ref func(*M) *model.RoleRefs, attribute string, declared model.RoleRefs, replace bool, persist func(*M)) error {
	if target == nil && c.Committing() {
		return nil
	}
	var t *changes.Tracker[M]
	if target == nil || c.wasCreated(target) {
		t = changes.TrackNew(target, c.mode)
	} else {
		t = changes.Track(target, c.mode)
	}
	if err := updater.UpdateRoleRefs(t, attribute, ref, declared, replace, c, resource); err != nil {
		return err
	}
	if !t.Changed() {
		logging.Debug(subsystem, "%s without changes", resource)
		return nil
	}
	logging.Info(subsystem, "%s updated with the following changes:\n %s", resource, t)
	if c.Committing() {
		persist(target)
	}
	c.report.add(c.realmName(), kind, resource, OutcomeUpdated, t.Changes())
	return nil
}
