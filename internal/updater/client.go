package updater

import (
	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
)

// UpdateClient copies the client fields. Default and optional client scopes
// must name existing client scopes.
func UpdateClient(t *changes.Tracker[model.Client], d *representation.Client, r Resolver, key string) error {
	for _, name := range d.DefaultClientScopes {
		if !r.HasClientScope(name) {
			return unresolved(key, "client scope", name)
		}
	}
	for _, name := range d.OptionalClientScopes {
		if !r.HasClientScope(name) {
			return unresolved(key, "client scope", name)
		}
	}

	set(t, "ClientId", func(c *model.Client) *string { return &c.ClientID }, d.ClientID)
	set(t, "Name", func(c *model.Client) *string { return &c.Name }, d.Name)
	set(t, "Description", func(c *model.Client) *string { return &c.Description }, d.Description)
	set(t, "Enabled", func(c *model.Client) *bool { return &c.Enabled }, d.Enabled)
	set(t, "AlwaysDisplayInConsole", func(c *model.Client) *bool { return &c.AlwaysDisplayInConsole }, d.AlwaysDisplayInConsole)
	set(t, "RootUrl", func(c *model.Client) *string { return &c.RootURL }, d.RootURL)
	set(t, "BaseUrl", func(c *model.Client) *string { return &c.BaseURL }, d.BaseURL)
	set(t, "ManagementUrl", func(c *model.Client) *string { return &c.AdminURL }, d.AdminURL)
	set(t, "SurrogateAuthRequired", func(c *model.Client) *bool { return &c.SurrogateAuthRequired }, d.SurrogateAuthRequired)
	set(t, "ClientAuthenticatorType", func(c *model.Client) *string { return &c.ClientAuthenticatorType }, d.ClientAuthenticatorType)
	set(t, "Secret", func(c *model.Client) *string { return &c.Secret }, d.Secret)
	set(t, "RedirectUris", func(c *model.Client) *[]string { return &c.RedirectURIs }, list(d.RedirectURIs))
	set(t, "WebOrigins", func(c *model.Client) *[]string { return &c.WebOrigins }, list(d.WebOrigins))
	set(t, "NotBefore", func(c *model.Client) *int { return &c.NotBefore }, d.NotBefore)
	set(t, "BearerOnly", func(c *model.Client) *bool { return &c.BearerOnly }, d.BearerOnly)
	set(t, "ConsentRequired", func(c *model.Client) *bool { return &c.ConsentRequired }, d.ConsentRequired)
	set(t, "StandardFlowEnabled", func(c *model.Client) *bool { return &c.StandardFlowEnabled }, d.StandardFlowEnabled)
	set(t, "ImplicitFlowEnabled", func(c *model.Client) *bool { return &c.ImplicitFlowEnabled }, d.ImplicitFlowEnabled)
	set(t, "DirectAccessGrantsEnabled", func(c *model.Client) *bool { return &c.DirectAccessGrantsEnabled }, d.DirectAccessGrantsEnabled)
	set(t, "ServiceAccountsEnabled", func(c *model.Client) *bool { return &c.ServiceAccountsEnabled }, d.ServiceAccountsEnabled)
	set(t, "PublicClient", func(c *model.Client) *bool { return &c.PublicClient }, d.PublicClient)
	set(t, "FrontchannelLogout", func(c *model.Client) *bool { return &c.FrontchannelLogout }, d.FrontchannelLogout)
	set(t, "Protocol", func(c *model.Client) *string { return &c.Protocol }, d.Protocol)
	set(t, "Attributes", func(c *model.Client) *map[string]string { return &c.Attributes }, dict(d.Attributes))
	set(t, "AuthenticationFlowBindingOverrides", func(c *model.Client) *map[string]string { return &c.AuthenticationFlowBindingOverrides },
		dict(d.AuthenticationFlowBindingOverrides))
	set(t, "FullScopeAllowed", func(c *model.Client) *bool { return &c.FullScopeAllowed }, d.FullScopeAllowed)
	set(t, "NodeReRegistrationTimeout", func(c *model.Client) *int { return &c.NodeReRegistrationTimeout }, d.NodeReRegistrationTimeout)
	set(t, "DefaultClientScopes", func(c *model.Client) *[]string { return &c.DefaultClientScopes }, list(d.DefaultClientScopes))
	set(t, "OptionalClientScopes", func(c *model.Client) *[]string { return &c.OptionalClientScopes }, list(d.OptionalClientScopes))
	return nil
}

// UpdateClientScope copies the client scope fields.
func UpdateClientScope(t *changes.Tracker[model.ClientScope], d *representation.ClientScope) {
	set(t, "Name", func(s *model.ClientScope) *string { return &s.Name }, d.Name)
	set(t, "Description", func(s *model.ClientScope) *string { return &s.Description }, d.Description)
	set(t, "Protocol", func(s *model.ClientScope) *string { return &s.Protocol }, d.Protocol)
	set(t, "Attributes", func(s *model.ClientScope) *map[string]string { return &s.Attributes }, dict(d.Attributes))
}

// UpdateProtocolMapper copies the protocol mapper fields.
func UpdateProtocolMapper(t *changes.Tracker[model.ProtocolMapper], d *representation.ProtocolMapper) {
	set(t, "Name", func(m *model.ProtocolMapper) *string { return &m.Name }, d.Name)
	set(t, "Protocol", func(m *model.ProtocolMapper) *string { return &m.Protocol }, d.Protocol)
	set(t, "ProtocolMapper", func(m *model.ProtocolMapper) *string { return &m.ProtocolMapper }, d.ProtocolMapper)
	set(t, "Config", func(m *model.ProtocolMapper) *map[string]string { return &m.Config }, dict(d.Config))
}

// UpdateRole copies the role fields. Composites are applied separately once
// every role of the realm exists.
func UpdateRole(t *changes.Tracker[model.Role], d *representation.Role) {
	set(t, "Attributes", func(r *model.Role) *map[string][]string { return &r.Attributes }, dict(d.Attributes))
	set(t, "Description", func(r *model.Role) *string { return &r.Description }, d.Description)
	set(t, "Name", func(r *model.Role) *string { return &r.Name }, d.Name)
}

// UpdateGroup copies the group fields. Role mappings must name existing
// roles.
func UpdateGroup(t *changes.Tracker[model.Group], d *representation.Group, r Resolver, key string) error {
	for _, name := range d.RealmRoles {
		if !r.HasRole(model.RoleRef{Name: name}) {
			return unresolved(key, "realm role", name)
		}
	}
	for _, clientID := range sortedKeys(d.ClientRoles) {
		if !r.HasClient(clientID) {
			return unresolved(key, "client", clientID)
		}
		for _, name := range d.ClientRoles[clientID] {
			ref := model.RoleRef{ClientID: clientID, Name: name}
			if !r.HasRole(ref) {
				return unresolved(key, "client role", ref.String())
			}
		}
	}

	set(t, "Attributes", func(g *model.Group) *map[string][]string { return &g.Attributes }, dict(d.Attributes))
	set(t, "Name", func(g *model.Group) *string { return &g.Name }, d.Name)
	set(t, "RealmRoles", func(g *model.Group) *[]string { return &g.RealmRoles }, list(d.RealmRoles))
	set(t, "ClientRoles", func(g *model.Group) *map[string][]string { return &g.ClientRoles }, dict(d.ClientRoles))
	return nil
}
