package memory

import (
	"slices"

	"realmform/internal/model"
)

// resources implements model.RealmResources over one realm snapshot.
// Removals that would break a reference held elsewhere in the realm are
// refused.
type resources struct {
	snap *RealmSnapshot
}

func (r *resources) RealmRoles() model.RoleContainer {
	return &roleContainer{
		roles:       &r.snap.Roles,
		containerID: r.snap.Realm.ID,
		protected: func(role *model.Role) bool {
			return role.ID == r.snap.Realm.DefaultRoleID
		},
	}
}

func (r *resources) ClientRoles(clientInternalID string) model.RoleContainer {
	c := r.client(clientInternalID)
	if c == nil {
		return nil
	}
	return &roleContainer{
		roles:       &c.Roles,
		containerID: clientInternalID,
		clientRole:  true,
		protected:   func(*model.Role) bool { return false },
	}
}

func (r *resources) ClientProtocolMappers(clientInternalID string) model.ProtocolMapperContainer {
	c := r.client(clientInternalID)
	if c == nil {
		return nil
	}
	return &mapperContainer{mappers: &c.ProtocolMappers}
}

func (r *resources) ClientScopeProtocolMappers(scopeID string) model.ProtocolMapperContainer {
	s := find(r.snap.ClientScopes, func(s *ClientScopeSnapshot) bool { return s.ClientScope.ID == scopeID })
	if s == nil {
		return nil
	}
	return &mapperContainer{mappers: &s.ProtocolMappers}
}

func (r *resources) client(id string) *ClientSnapshot {
	return find(r.snap.Clients, func(c *ClientSnapshot) bool { return c.Client.ID == id })
}

// Clients

func (r *resources) Clients() []*model.Client {
	out := make([]*model.Client, len(r.snap.Clients))
	for i, c := range r.snap.Clients {
		out[i] = c.Client
	}
	return out
}

func (r *resources) ClientByClientID(clientID string) *model.Client {
	if c := find(r.snap.Clients, func(c *ClientSnapshot) bool { return c.Client.ClientID == clientID }); c != nil {
		return c.Client
	}
	return nil
}

func (r *resources) AddClient(id, clientID string) *model.Client {
	c := &ClientSnapshot{Client: &model.Client{ID: id, ClientID: clientID}}
	r.snap.Clients = append(r.snap.Clients, c)
	return c.Client
}

func (r *resources) UpdateClient(*model.Client) {}

func (r *resources) RemoveClient(id string) bool {
	var removed bool
	r.snap.Clients, removed = remove(r.snap.Clients, func(c *ClientSnapshot) bool { return c.Client.ID == id })
	return removed
}

// Client scopes

func (r *resources) ClientScopes() []*model.ClientScope {
	out := make([]*model.ClientScope, len(r.snap.ClientScopes))
	for i, s := range r.snap.ClientScopes {
		out[i] = s.ClientScope
	}
	return out
}

func (r *resources) ClientScopeByName(name string) *model.ClientScope {
	if s := find(r.snap.ClientScopes, func(s *ClientScopeSnapshot) bool { return s.ClientScope.Name == name }); s != nil {
		return s.ClientScope
	}
	return nil
}

func (r *resources) AddClientScope(id, name string) *model.ClientScope {
	s := &ClientScopeSnapshot{ClientScope: &model.ClientScope{ID: id, Name: name}}
	r.snap.ClientScopes = append(r.snap.ClientScopes, s)
	return s.ClientScope
}

func (r *resources) UpdateClientScope(*model.ClientScope) {}

// RemoveClientScope refuses to remove a scope still assigned to a client or
// used as a realm default.
func (r *resources) RemoveClientScope(id string) bool {
	s := find(r.snap.ClientScopes, func(s *ClientScopeSnapshot) bool { return s.ClientScope.ID == id })
	if s == nil {
		return false
	}
	name := s.ClientScope.Name
	if slices.Contains(r.snap.Realm.DefaultClientScopes, name) || slices.Contains(r.snap.Realm.OptionalClientScopes, name) {
		return false
	}
	for _, c := range r.snap.Clients {
		if slices.Contains(c.Client.DefaultClientScopes, name) || slices.Contains(c.Client.OptionalClientScopes, name) {
			return false
		}
	}
	var removed bool
	r.snap.ClientScopes, removed = remove(r.snap.ClientScopes, func(s *ClientScopeSnapshot) bool { return s.ClientScope.ID == id })
	return removed
}

// Authentication flows

func (r *resources) AuthenticationFlows() []*model.AuthenticationFlow {
	return copyOf(r.snap.AuthenticationFlows)
}

func (r *resources) AuthenticationFlowByID(id string) *model.AuthenticationFlow {
	return find(r.snap.AuthenticationFlows, func(f *model.AuthenticationFlow) bool { return f.ID == id })
}

func (r *resources) AuthenticationFlowByAlias(alias string) *model.AuthenticationFlow {
	return find(r.snap.AuthenticationFlows, func(f *model.AuthenticationFlow) bool { return f.Alias == alias })
}

func (r *resources) AddAuthenticationFlow(flow *model.AuthenticationFlow) {
	r.snap.AuthenticationFlows = append(r.snap.AuthenticationFlows, flow)
}

func (r *resources) UpdateAuthenticationFlow(*model.AuthenticationFlow) {}

// RemoveAuthenticationFlow refuses built-in flows and flows bound to the
// realm or an identity provider. Executions of a removed flow go with it.
func (r *resources) RemoveAuthenticationFlow(id string) bool {
	flow := r.AuthenticationFlowByID(id)
	if flow == nil || flow.BuiltIn {
		return false
	}
	realm := r.snap.Realm
	bindings := []string{
		realm.BrowserFlow, realm.RegistrationFlow, realm.DirectGrantFlow, realm.ResetCredentialsFlow,
		realm.ClientAuthenticationFlow, realm.DockerAuthenticationFlow, realm.FirstBrokerLoginFlow,
	}
	if slices.Contains(bindings, id) {
		return false
	}
	for _, idp := range r.snap.IdentityProviders {
		if idp.FirstBrokerLoginFlowID == id || idp.PostBrokerLoginFlowID == id {
			return false
		}
	}
	r.snap.AuthenticationFlows, _ = remove(r.snap.AuthenticationFlows, func(f *model.AuthenticationFlow) bool { return f.ID == id })
	r.snap.AuthenticationExecutions = removeAll(r.snap.AuthenticationExecutions, func(e *model.AuthenticationExecution) bool {
		return e.ParentFlow == id
	})
	return true
}

// Executions

func (r *resources) AuthenticationExecutions(flowID string) []*model.AuthenticationExecution {
	var out []*model.AuthenticationExecution
	for _, e := range r.snap.AuthenticationExecutions {
		if e.ParentFlow == flowID {
			out = append(out, e)
		}
	}
	return out
}

func (r *resources) AddAuthenticationExecution(execution *model.AuthenticationExecution) {
	r.snap.AuthenticationExecutions = append(r.snap.AuthenticationExecutions, execution)
}

func (r *resources) UpdateAuthenticationExecution(*model.AuthenticationExecution) {}

func (r *resources) RemoveAuthenticationExecution(id string) bool {
	var removed bool
	r.snap.AuthenticationExecutions, removed = remove(r.snap.AuthenticationExecutions, func(e *model.AuthenticationExecution) bool {
		return e.ID == id
	})
	return removed
}

// Authenticator configs

func (r *resources) AuthenticatorConfigs() []*model.AuthenticatorConfig {
	return copyOf(r.snap.AuthenticatorConfigs)
}

func (r *resources) AuthenticatorConfigByID(id string) *model.AuthenticatorConfig {
	return find(r.snap.AuthenticatorConfigs, func(c *model.AuthenticatorConfig) bool { return c.ID == id })
}

func (r *resources) AuthenticatorConfigByAlias(alias string) *model.AuthenticatorConfig {
	return find(r.snap.AuthenticatorConfigs, func(c *model.AuthenticatorConfig) bool { return c.Alias == alias })
}

func (r *resources) AddAuthenticatorConfig(config *model.AuthenticatorConfig) {
	r.snap.AuthenticatorConfigs = append(r.snap.AuthenticatorConfigs, config)
}

func (r *resources) UpdateAuthenticatorConfig(*model.AuthenticatorConfig) {}

// RemoveAuthenticatorConfig refuses configs referenced by an execution.
func (r *resources) RemoveAuthenticatorConfig(id string) bool {
	for _, e := range r.snap.AuthenticationExecutions {
		if e.AuthenticatorConfig == id {
			return false
		}
	}
	var removed bool
	r.snap.AuthenticatorConfigs, removed = remove(r.snap.AuthenticatorConfigs, func(c *model.AuthenticatorConfig) bool { return c.ID == id })
	return removed
}

// Components

func (r *resources) Components() []*model.Component {
	return copyOf(r.snap.Components)
}

func (r *resources) ComponentByID(id string) *model.Component {
	return find(r.snap.Components, func(c *model.Component) bool { return c.ID == id })
}

func (r *resources) AddComponent(component *model.Component) {
	r.snap.Components = append(r.snap.Components, component)
}

func (r *resources) UpdateComponent(*model.Component) {}

// RemoveComponent removes the component and its descendants.
func (r *resources) RemoveComponent(id string) bool {
	if r.ComponentByID(id) == nil {
		return false
	}
	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for _, c := range r.snap.Components {
			if !doomed[c.ID] && doomed[c.ParentID] {
				doomed[c.ID] = true
				grew = true
			}
		}
	}
	r.snap.Components = removeAll(r.snap.Components, func(c *model.Component) bool { return doomed[c.ID] })
	return true
}

// Required actions

func (r *resources) RequiredActions() []*model.RequiredAction {
	return copyOf(r.snap.RequiredActions)
}

func (r *resources) RequiredActionByAlias(alias string) *model.RequiredAction {
	return find(r.snap.RequiredActions, func(a *model.RequiredAction) bool { return a.Alias == alias })
}

func (r *resources) AddRequiredAction(action *model.RequiredAction) {
	r.snap.RequiredActions = append(r.snap.RequiredActions, action)
}

func (r *resources) UpdateRequiredAction(*model.RequiredAction) {}

func (r *resources) RemoveRequiredAction(alias string) bool {
	var removed bool
	r.snap.RequiredActions, removed = remove(r.snap.RequiredActions, func(a *model.RequiredAction) bool { return a.Alias == alias })
	return removed
}

// Identity providers

func (r *resources) IdentityProviders() []*model.IdentityProvider {
	return copyOf(r.snap.IdentityProviders)
}

func (r *resources) IdentityProviderByAlias(alias string) *model.IdentityProvider {
	return find(r.snap.IdentityProviders, func(p *model.IdentityProvider) bool { return p.Alias == alias })
}

func (r *resources) AddIdentityProvider(idp *model.IdentityProvider) {
	r.snap.IdentityProviders = append(r.snap.IdentityProviders, idp)
}

func (r *resources) UpdateIdentityProvider(*model.IdentityProvider) {}

// RemoveIdentityProvider removes the provider and its mappers.
func (r *resources) RemoveIdentityProvider(alias string) bool {
	var removed bool
	r.snap.IdentityProviders, removed = remove(r.snap.IdentityProviders, func(p *model.IdentityProvider) bool { return p.Alias == alias })
	if removed {
		r.snap.IdentityProviderMappers = removeAll(r.snap.IdentityProviderMappers, func(m *model.IdentityProviderMapper) bool {
			return m.IdentityProviderAlias == alias
		})
	}
	return removed
}

// Identity provider mappers

func (r *resources) IdentityProviderMappers() []*model.IdentityProviderMapper {
	return copyOf(r.snap.IdentityProviderMappers)
}

func (r *resources) IdentityProviderMapperByID(id string) *model.IdentityProviderMapper {
	return find(r.snap.IdentityProviderMappers, func(m *model.IdentityProviderMapper) bool { return m.ID == id })
}

func (r *resources) AddIdentityProviderMapper(mapper *model.IdentityProviderMapper) {
	r.snap.IdentityProviderMappers = append(r.snap.IdentityProviderMappers, mapper)
}

func (r *resources) UpdateIdentityProviderMapper(*model.IdentityProviderMapper) {}

func (r *resources) RemoveIdentityProviderMapper(id string) bool {
	var removed bool
	r.snap.IdentityProviderMappers, removed = remove(r.snap.IdentityProviderMappers, func(m *model.IdentityProviderMapper) bool {
		return m.ID == id
	})
	return removed
}

// Groups

func (r *resources) Groups() []*model.Group {
	return copyOf(r.snap.Groups)
}

func (r *resources) GroupByID(id string) *model.Group {
	return find(r.snap.Groups, func(g *model.Group) bool { return g.ID == id })
}

func (r *resources) CreateGroup(id, name string) *model.Group {
	g := &model.Group{ID: id, Name: name}
	r.snap.Groups = append(r.snap.Groups, g)
	return g
}

func (r *resources) UpdateGroup(*model.Group) {}

func (r *resources) RemoveGroup(id string) bool {
	var removed bool
	r.snap.Groups, removed = remove(r.snap.Groups, func(g *model.Group) bool { return g.ID == id })
	return removed
}

type roleContainer struct {
	roles       *[]*model.Role
	containerID string
	clientRole  bool
	protected   func(*model.Role) bool
}

func (c *roleContainer) Role(name string) *model.Role {
	return find(*c.roles, func(r *model.Role) bool { return r.Name == name })
}

func (c *roleContainer) Roles() []*model.Role {
	return copyOf(*c.roles)
}

func (c *roleContainer) AddRole(id, name string) *model.Role {
	role := &model.Role{ID: id, Name: name, ContainerID: c.containerID, ClientRole: c.clientRole}
	*c.roles = append(*c.roles, role)
	return role
}

func (c *roleContainer) UpdateRole(*model.Role) {}

// RemoveRole refuses the realm default role.
func (c *roleContainer) RemoveRole(id string) bool {
	role := find(*c.roles, func(r *model.Role) bool { return r.ID == id })
	if role == nil || c.protected(role) {
		return false
	}
	*c.roles, _ = remove(*c.roles, func(r *model.Role) bool { return r.ID == id })
	return true
}

type mapperContainer struct {
	mappers *[]*model.ProtocolMapper
}

func (c *mapperContainer) ProtocolMapper(name string) *model.ProtocolMapper {
	return find(*c.mappers, func(m *model.ProtocolMapper) bool { return m.Name == name })
}

func (c *mapperContainer) ProtocolMappers() []*model.ProtocolMapper {
	return copyOf(*c.mappers)
}

func (c *mapperContainer) AddProtocolMapper(mapper *model.ProtocolMapper) {
	*c.mappers = append(*c.mappers, mapper)
}

func (c *mapperContainer) UpdateProtocolMapper(*model.ProtocolMapper) {}

func (c *mapperContainer) RemoveProtocolMapper(id string) bool {
	var removed bool
	*c.mappers, removed = remove(*c.mappers, func(m *model.ProtocolMapper) bool { return m.ID == id })
	return removed
}
