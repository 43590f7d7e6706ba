package former

import (
	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

type clientKind struct {
	baseKind[model.Client, representation.Client]
}

func (clientKind) describe(_ *Context, d *representation.Client) string {
	return "client " + quote(representation.Deref(d.ClientID))
}

func (clientKind) lookup(c *Context, d *representation.Client) (*model.Client, error) {
	return c.resources.ClientByClientID(representation.Deref(d.ClientID)), nil
}

func (clientKind) create(c *Context, d *representation.Client) *model.Client {
	return c.resources.AddClient(newID(d.ID), representation.Deref(d.ClientID))
}

func (k clientKind) update(c *Context, t *changes.Tracker[model.Client], d *representation.Client) error {
	return updater.UpdateClient(t, d, c, k.describe(c, d))
}

// children forms the client roles declared under roles.client, then the
// protocol mappers.
func (clientKind) children(c *Context, m *model.Client, def *definition.Definition[representation.Client], _ *changes.Tracker[model.Client]) error {
	clientID := representation.Deref(def.Value.ClientID)
	leave := c.withClient(m, clientID)
	defer leave()

	var roles []*representation.Role
	if declared := c.declaredRealm().Roles; declared != nil {
		roles = declared.Client[clientID]
	}
	if err := formCollection(c, roles); err != nil {
		return err
	}
	return formCollection(c, def.Value.ProtocolMappers)
}

func (clientKind) persist(c *Context, m *model.Client) {
	c.resources.UpdateClient(m)
}

func (clientKind) list(c *Context) []*model.Client {
	return c.resources.Clients()
}

func (clientKind) declaredKeys(_ *Context, d *representation.Client) []string {
	return keyed("clientId", representation.Deref(d.ClientID))
}

func (clientKind) liveKeys(m *model.Client) []string {
	return keyed("clientId", m.ClientID)
}

func (clientKind) describeLive(_ *Context, m *model.Client) string {
	return "client " + quote(m.ClientID)
}

func (clientKind) remove(c *Context, m *model.Client) bool {
	return c.resources.RemoveClient(m.ID)
}

type clientScopeKind struct {
	baseKind[model.ClientScope, representation.ClientScope]
}

func (clientScopeKind) describe(_ *Context, d *representation.ClientScope) string {
	return "client scope " + quote(representation.Deref(d.Name))
}

func (clientScopeKind) lookup(c *Context, d *representation.ClientScope) (*model.ClientScope, error) {
	return c.resources.ClientScopeByName(representation.Deref(d.Name)), nil
}

func (clientScopeKind) create(c *Context, d *representation.ClientScope) *model.ClientScope {
	return c.resources.AddClientScope(newID(d.ID), representation.Deref(d.Name))
}

func (clientScopeKind) update(_ *Context, t *changes.Tracker[model.ClientScope], d *representation.ClientScope) error {
	updater.UpdateClientScope(t, d)
	return nil
}

func (clientScopeKind) children(c *Context, m *model.ClientScope, def *definition.Definition[representation.ClientScope], _ *changes.Tracker[model.ClientScope]) error {
	leave := c.withClientScope(m, representation.Deref(def.Value.Name))
	defer leave()
	return formCollection(c, def.Value.ProtocolMappers)
}

func (clientScopeKind) persist(c *Context, m *model.ClientScope) {
	c.resources.UpdateClientScope(m)
}

func (clientScopeKind) list(c *Context) []*model.ClientScope {
	return c.resources.ClientScopes()
}

func (clientScopeKind) declaredKeys(_ *Context, d *representation.ClientScope) []string {
	return keyed("name", representation.Deref(d.Name))
}

func (clientScopeKind) liveKeys(m *model.ClientScope) []string {
	return keyed("name", m.Name)
}

func (clientScopeKind) describeLive(_ *Context, m *model.ClientScope) string {
	return "client scope " + quote(m.Name)
}

func (clientScopeKind) remove(c *Context, m *model.ClientScope) bool {
	return c.resources.RemoveClientScope(m.ID)
}

// protocolMapperKind forms the mappers of the current client or client scope.
type protocolMapperKind struct {
	baseKind[model.ProtocolMapper, representation.ProtocolMapper]
}

func (protocolMapperKind) describe(c *Context, d *representation.ProtocolMapper) string {
	return "protocol mapper " + quote(representation.Deref(d.Name)) + c.containerLabel()
}

func (protocolMapperKind) lookup(c *Context, d *representation.ProtocolMapper) (*model.ProtocolMapper, error) {
	return c.mapperContainer().ProtocolMapper(representation.Deref(d.Name)), nil
}

func (protocolMapperKind) create(_ *Context, d *representation.ProtocolMapper) *model.ProtocolMapper {
	return &model.ProtocolMapper{ID: newID(d.ID)}
}

func (protocolMapperKind) update(_ *Context, t *changes.Tracker[model.ProtocolMapper], d *representation.ProtocolMapper) error {
	updater.UpdateProtocolMapper(t, d)
	return nil
}

func (protocolMapperKind) register(c *Context, m *model.ProtocolMapper) {
	c.mapperContainer().AddProtocolMapper(m)
}

func (protocolMapperKind) persist(c *Context, m *model.ProtocolMapper) {
	c.mapperContainer().UpdateProtocolMapper(m)
}

func (protocolMapperKind) list(c *Context) []*model.ProtocolMapper {
	return c.mapperContainer().ProtocolMappers()
}

func (protocolMapperKind) declaredKeys(_ *Context, d *representation.ProtocolMapper) []string {
	return keyed("name", representation.Deref(d.Name))
}

func (protocolMapperKind) liveKeys(m *model.ProtocolMapper) []string {
	return keyed("name", m.Name)
}

func (protocolMapperKind) describeLive(c *Context, m *model.ProtocolMapper) string {
	return "protocol mapper " + quote(m.Name) + c.containerLabel()
}

func (protocolMapperKind) remove(c *Context, m *model.ProtocolMapper) bool {
	return c.mapperContainer().RemoveProtocolMapper(m.ID)
}

// roleKind forms the roles of the realm or of the current client.
type roleKind struct {
	baseKind[model.Role, representation.Role]
}

func (roleKind) describe(c *Context, d *representation.Role) string {
	return "role " + quote(representation.Deref(d.Name)) + c.containerLabel()
}

func (roleKind) lookup(c *Context, d *representation.Role) (*model.Role, error) {
	return c.roleContainer().Role(representation.Deref(d.Name)), nil
}

func (roleKind) create(c *Context, d *representation.Role) *model.Role {
	return c.roleContainer().AddRole(newID(d.ID), representation.Deref(d.Name))
}

func (roleKind) update(_ *Context, t *changes.Tracker[model.Role], d *representation.Role) error {
	updater.UpdateRole(t, d)
	return nil
}

func (roleKind) persist(c *Context, m *model.Role) {
	c.roleContainer().UpdateRole(m)
}

func (roleKind) list(c *Context) []*model.Role {
	return c.roleContainer().Roles()
}

func (roleKind) declaredKeys(_ *Context, d *representation.Role) []string {
	return keyed("name", representation.Deref(d.Name))
}

func (roleKind) liveKeys(m *model.Role) []string {
	return keyed("name", m.Name)
}

func (roleKind) describeLive(c *Context, m *model.Role) string {
	return "role " + quote(m.Name) + c.containerLabel()
}

// protected keeps the realm default role, which the server never removes.
func (roleKind) protected(c *Context, m *model.Role) bool {
	return c.clientLabel == "" && c.realm != nil && m.ID == c.realm.DefaultRoleID
}

func (roleKind) remove(c *Context, m *model.Role) bool {
	return c.roleContainer().RemoveRole(m.ID)
}
