package former

import (
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

var _ updater.Resolver = (*Context)(nil)

// pendingID stands in for the id a committing run would generate.
func pendingID(key string) string {
	return "<new " + key + ">"
}

// FlowID resolves a flow alias of the current realm. In a preview, flows
// that the run would create resolve to their declared or a pending id.
func (c *Context) FlowID(alias string) (string, bool) {
	if c.resources != nil {
		if flow := c.resources.AuthenticationFlowByAlias(alias); flow != nil {
			return flow.ID, true
		}
	}
	if d := declared(c, c.declaredRealm().AuthenticationFlows, func(f *representation.AuthenticationFlow) bool {
		return representation.Deref(f.Alias) == alias
	}); d != nil {
		return idOr(d.ID, "flow "+alias), true
	}
	return "", false
}

// AuthenticatorConfigID resolves an authenticator config alias.
func (c *Context) AuthenticatorConfigID(alias string) (string, bool) {
	if c.resources != nil {
		if config := c.resources.AuthenticatorConfigByAlias(alias); config != nil {
			return config.ID, true
		}
	}
	if d := declared(c, c.declaredRealm().AuthenticatorConfig, func(a *representation.AuthenticatorConfig) bool {
		return representation.Deref(a.Alias) == alias
	}); d != nil {
		return idOr(d.ID, "authenticator config "+alias), true
	}
	return "", false
}

// HasClientScope reports whether a client scope name resolves.
func (c *Context) HasClientScope(name string) bool {
	if c.resources != nil && c.resources.ClientScopeByName(name) != nil {
		return true
	}
	return declared(c, c.declaredRealm().ClientScopes, func(s *representation.ClientScope) bool {
		return representation.Deref(s.Name) == name
	}) != nil
}

// HasClient reports whether a clientId resolves.
func (c *Context) HasClient(clientID string) bool {
	if c.resources != nil && c.resources.ClientByClientID(clientID) != nil {
		return true
	}
	return c.declaredClient(clientID) != nil
}

// HasIdentityProvider reports whether an identity provider alias resolves.
func (c *Context) HasIdentityProvider(alias string) bool {
	if c.resources != nil && c.resources.IdentityProviderByAlias(alias) != nil {
		return true
	}
	return declared(c, c.declaredRealm().IdentityProviders, func(p *representation.IdentityProvider) bool {
		return representation.Deref(p.Alias) == alias
	}) != nil
}

// RealmRoleID resolves a realm role name to its id.
func (c *Context) RealmRoleID(name string) (string, bool) {
	if c.resources != nil {
		if role := c.resources.RealmRoles().Role(name); role != nil {
			return role.ID, true
		}
	}
	if d := c.declaredRole(model.RoleRef{Name: name}); d != nil {
		return idOr(d.ID, "role "+name), true
	}
	return "", false
}

// HasRole reports whether a realm or client role reference resolves.
func (c *Context) HasRole(ref model.RoleRef) bool {
	if c.resources != nil {
		container := c.resources.RealmRoles()
		if ref.ClientID != "" {
			container = nil
			if client := c.resources.ClientByClientID(ref.ClientID); client != nil {
				container = c.resources.ClientRoles(client.ID)
			}
		}
		if container != nil && container.Role(ref.Name) != nil {
			return true
		}
	}
	return c.declaredRole(ref) != nil
}

func (c *Context) declaredRealm() *representation.Realm {
	if c.realmDefinition == nil {
		return &representation.Realm{}
	}
	return c.realmDefinition.Value
}

func (c *Context) declaredClient(clientID string) *representation.Client {
	return declared(c, c.declaredRealm().Clients, func(cl *representation.Client) bool {
		return representation.Deref(cl.ClientID) == clientID
	})
}

func (c *Context) declaredRole(ref model.RoleRef) *representation.Role {
	roles := c.declaredRealm().Roles
	if roles == nil {
		return nil
	}
	list := roles.Realm
	if ref.ClientID != "" {
		if c.declaredClient(ref.ClientID) == nil {
			return nil
		}
		list = roles.Client[ref.ClientID]
	}
	return declared(c, list, func(r *representation.Role) bool {
		return representation.Deref(r.Name) == ref.Name
	})
}

// declared finds a node of the current realm document that a committing run
// would have created by now. It only answers in a preview: when committing,
// created resources are live and the document adds nothing.
func declared[R definition.Representation](c *Context, reps []*R, match func(*R) bool) *R {
	if c.Committing() {
		return nil
	}
	for _, rep := range reps {
		if rep == nil || !match(rep) {
			continue
		}
		if def, err := definition.As(c.overlay, rep); err == nil && def.Policy().IsIgnore() {
			continue
		}
		return rep
	}
	return nil
}

func idOr(id *string, key string) string {
	if id != nil && *id != "" {
		return *id
	}
	return pendingID(key)
}
