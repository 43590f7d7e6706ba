package former

import (
	"github.com/google/uuid"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

type realmKind struct {
	baseKind[model.Realm, representation.Realm]
}

func (realmKind) describe(_ *Context, d *representation.Realm) string {
	return "realm " + quote(d.Name())
}

// lookup matches by id when one is declared and falls back to the name.
func (realmKind) lookup(c *Context, d *representation.Realm) (*model.Realm, error) {
	if id := representation.Deref(d.ID); id != "" {
		if realm := c.session.Realms().GetByID(id); realm != nil {
			return realm, nil
		}
	}
	return c.session.Realms().Get(d.Name()), nil
}

// defaultEventsListeners are the event listeners of a new realm until the
// document declares its own.
var defaultEventsListeners = []string{"jboss-logging"}

func (realmKind) create(c *Context, d *representation.Realm) *model.Realm {
	realm := c.session.Realms().Create(newID(d.ID), d.Name())
	realm.EventsListeners = append([]string(nil), defaultEventsListeners...)
	return realm
}

func (realmKind) update(_ *Context, t *changes.Tracker[model.Realm], d *representation.Realm) error {
	updater.UpdateRealm(t, d)
	return nil
}

// children forms everything a realm owns in dependency order, then links
// the realm level references to resources formed above. Undeclared client
// scopes are removed last, after clients and realm defaults released them.
func (realmKind) children(c *Context, m *model.Realm, def *definition.Definition[representation.Realm], t *changes.Tracker[model.Realm]) error {
	leave := c.withRealm(m, def)
	defer leave()
	d := def.Value

	sweepClientScopes := func() {}
	steps := []func() error{
		func() error { return formCollection(c, d.RequiredActions) },
		func() error { return formComponents(c, d.Components) },
		func() error { return formCollection(c, d.AuthenticatorConfig) },
		func() error { return formCollection(c, d.AuthenticationFlows) },
		func() error { return formCollection(c, realmRoles(d)) },
		func() (err error) {
			sweepClientScopes, err = formCollectionDeferred(c, d.ClientScopes)
			return err
		},
		func() error { return formCollection(c, d.Clients) },
		func() error { return formCollection(c, d.IdentityProviders) },
		func() error { return formCollection(c, d.IdentityProviderMappers) },
		func() error { return formCollection(c, d.Groups) },
		func() error { return formItem(c, d.Roles) },
		func() error { return formScopeMappings(c, d) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	if err := updater.LinkRealm(t, d, c, "realm "+quote(d.Name())); err != nil {
		return err
	}
	sweepClientScopes()
	return nil
}

func (realmKind) persist(c *Context, m *model.Realm) {
	c.session.Realms().Update(m)
}

func (realmKind) list(c *Context) []*model.Realm {
	return c.session.Realms().List()
}

func (realmKind) declaredKeys(_ *Context, d *representation.Realm) []string {
	return keyed("id", representation.Deref(d.ID), "name", d.Name())
}

func (realmKind) liveKeys(m *model.Realm) []string {
	return keyed("id", m.ID, "name", m.Name)
}

func (realmKind) describeLive(_ *Context, m *model.Realm) string {
	return "realm " + quote(m.Name)
}

func (realmKind) remove(c *Context, m *model.Realm) bool {
	return c.session.Realms().Remove(m.ID)
}

// protected keeps the admin realm regardless of the declaration.
func (realmKind) protected(c *Context, m *model.Realm) bool {
	return m.Name == c.adminRealm
}

func realmRoles(d *representation.Realm) []*representation.Role {
	if d.Roles == nil {
		return nil
	}
	return d.Roles.Realm
}

func newID(declared *string) string {
	if id := representation.Deref(declared); id != "" {
		return id
	}
	return uuid.NewString()
}
