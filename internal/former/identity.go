package former

import (
	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

type identityProviderKind struct {
	baseKind[model.IdentityProvider, representation.IdentityProvider]
}

func (identityProviderKind) describe(_ *Context, d *representation.IdentityProvider) string {
	return "identity provider " + quote(representation.Deref(d.Alias))
}

func (identityProviderKind) lookup(c *Context, d *representation.IdentityProvider) (*model.IdentityProvider, error) {
	return c.resources.IdentityProviderByAlias(representation.Deref(d.Alias)), nil
}

func (identityProviderKind) create(_ *Context, d *representation.IdentityProvider) *model.IdentityProvider {
	return &model.IdentityProvider{Alias: representation.Deref(d.Alias), InternalID: newID(d.InternalID)}
}

func (k identityProviderKind) update(c *Context, t *changes.Tracker[model.IdentityProvider], d *representation.IdentityProvider) error {
	return updater.UpdateIdentityProvider(t, d, c, k.describe(c, d))
}

func (identityProviderKind) register(c *Context, m *model.IdentityProvider) {
	c.resources.AddIdentityProvider(m)
}

func (identityProviderKind) persist(c *Context, m *model.IdentityProvider) {
	c.resources.UpdateIdentityProvider(m)
}

func (identityProviderKind) list(c *Context) []*model.IdentityProvider {
	return c.resources.IdentityProviders()
}

func (identityProviderKind) declaredKeys(_ *Context, d *representation.IdentityProvider) []string {
	return keyed("alias", representation.Deref(d.Alias))
}

func (identityProviderKind) liveKeys(m *model.IdentityProvider) []string {
	return keyed("alias", m.Alias)
}

func (identityProviderKind) describeLive(_ *Context, m *model.IdentityProvider) string {
	return "identity provider " + quote(m.Alias)
}

func (identityProviderKind) remove(c *Context, m *model.IdentityProvider) bool {
	return c.resources.RemoveIdentityProvider(m.Alias)
}

// identityProviderMapperKind matches mappers by id, or by identity provider
// alias and name when no id is declared.
type identityProviderMapperKind struct {
	baseKind[model.IdentityProviderMapper, representation.IdentityProviderMapper]
}

func (identityProviderMapperKind) describe(_ *Context, d *representation.IdentityProviderMapper) string {
	return "identity provider mapper " + quote(representation.Deref(d.Name)) +
		" of " + quote(representation.Deref(d.IdentityProviderAlias))
}

func (identityProviderMapperKind) lookup(c *Context, d *representation.IdentityProviderMapper) (*model.IdentityProviderMapper, error) {
	if id := representation.Deref(d.ID); id != "" {
		return c.resources.IdentityProviderMapperByID(id), nil
	}
	alias, name := representation.Deref(d.IdentityProviderAlias), representation.Deref(d.Name)
	for _, m := range c.resources.IdentityProviderMappers() {
		if m.IdentityProviderAlias == alias && m.Name == name {
			return m, nil
		}
	}
	return nil, nil
}

func (identityProviderMapperKind) create(_ *Context, d *representation.IdentityProviderMapper) *model.IdentityProviderMapper {
	return &model.IdentityProviderMapper{ID: newID(d.ID)}
}

func (k identityProviderMapperKind) update(c *Context, t *changes.Tracker[model.IdentityProviderMapper], d *representation.IdentityProviderMapper) error {
	return updater.UpdateIdentityProviderMapper(t, d, c, k.describe(c, d))
}

func (identityProviderMapperKind) register(c *Context, m *model.IdentityProviderMapper) {
	c.resources.AddIdentityProviderMapper(m)
}

func (identityProviderMapperKind) persist(c *Context, m *model.IdentityProviderMapper) {
	c.resources.UpdateIdentityProviderMapper(m)
}

func (identityProviderMapperKind) list(c *Context) []*model.IdentityProviderMapper {
	return c.resources.IdentityProviderMappers()
}

func (identityProviderMapperKind) declaredKeys(_ *Context, d *representation.IdentityProviderMapper) []string {
	if id := representation.Deref(d.ID); id != "" {
		return keyed("id", id)
	}
	return keyed("name", representation.Deref(d.IdentityProviderAlias)+"/"+representation.Deref(d.Name))
}

func (identityProviderMapperKind) liveKeys(m *model.IdentityProviderMapper) []string {
	return keyed("id", m.ID, "name", m.IdentityProviderAlias+"/"+m.Name)
}

func (identityProviderMapperKind) describeLive(_ *Context, m *model.IdentityProviderMapper) string {
	return "identity provider mapper " + quote(m.Name) + " of " + quote(m.IdentityProviderAlias)
}

func (identityProviderMapperKind) remove(c *Context, m *model.IdentityProviderMapper) bool {
	return c.resources.RemoveIdentityProviderMapper(m.ID)
}

// groupKind matches top level groups by id, or by name when no id is
// declared.
type groupKind struct {
	baseKind[model.Group, representation.Group]
}

func (groupKind) describe(_ *Context, d *representation.Group) string {
	return "group " + quote(representation.Deref(d.Name))
}

func (groupKind) lookup(c *Context, d *representation.Group) (*model.Group, error) {
	if id := representation.Deref(d.ID); id != "" {
		return c.resources.GroupByID(id), nil
	}
	name := representation.Deref(d.Name)
	for _, g := range c.resources.Groups() {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, nil
}

func (groupKind) create(c *Context, d *representation.Group) *model.Group {
	return c.resources.CreateGroup(newID(d.ID), representation.Deref(d.Name))
}

func (k groupKind) update(c *Context, t *changes.Tracker[model.Group], d *representation.Group) error {
	return updater.UpdateGroup(t, d, c, k.describe(c, d))
}

func (groupKind) persist(c *Context, m *model.Group) {
	c.resources.UpdateGroup(m)
}

func (groupKind) list(c *Context) []*model.Group {
	return c.resources.Groups()
}

func (groupKind) declaredKeys(_ *Context, d *representation.Group) []string {
	if id := representation.Deref(d.ID); id != "" {
		return keyed("id", id)
	}
	return keyed("name", representation.Deref(d.Name))
}

func (groupKind) liveKeys(m *model.Group) []string {
	return keyed("id", m.ID, "name", m.Name)
}

func (groupKind) describeLive(_ *Context, m *model.Group) string {
	return "group " + quote(m.Name)
}

func (groupKind) remove(c *Context, m *model.Group) bool {
	return c.resources.RemoveGroup(m.ID)
}
