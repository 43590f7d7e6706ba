package model

// Session is the handle on the live server state for one unit of work.
type Session interface {
	Realms() RealmProvider
}

// RealmProvider manages realms. Remove methods report false when the server
// refuses the removal.
type RealmProvider interface {
	Get(name string) *Realm
	GetByID(id string) *Realm
	List() []*Realm
	Create(id, name string) *Realm
	Update(realm *Realm)
	Remove(id string) bool

	// Resources returns the per-realm resource accessor. It is the explicit
	// replacement for request-scoped realm state.
	Resources(realmID string) RealmResources
}

// RoleContainer is implemented by realms and clients.
type RoleContainer interface {
	Role(name string) *Role
	Roles() []*Role
	AddRole(id, name string) *Role
	UpdateRole(role *Role)
	RemoveRole(id string) bool
}

// ProtocolMapperContainer is implemented by clients and client scopes.
type ProtocolMapperContainer interface {
	ProtocolMapper(name string) *ProtocolMapper
	ProtocolMappers() []*ProtocolMapper
	AddProtocolMapper(mapper *ProtocolMapper)
	UpdateProtocolMapper(mapper *ProtocolMapper)
	RemoveProtocolMapper(id string) bool
}

// RealmResources gives access to everything owned by one realm.
//
// Add methods register a detached resource built by the caller. Create-style
// methods (AddClient, AddClientScope, AddRole, CreateGroup) return a resource
// that is already registered.
type RealmResources interface {
	RealmRoles() RoleContainer
	ClientRoles(clientInternalID string) RoleContainer
	ClientProtocolMappers(clientInternalID string) ProtocolMapperContainer
	ClientScopeProtocolMappers(scopeID string) ProtocolMapperContainer

	Clients() []*Client
	ClientByClientID(clientID string) *Client
	AddClient(id, clientID string) *Client
	UpdateClient(client *Client)
	RemoveClient(id string) bool

	ClientScopes() []*ClientScope
	ClientScopeByName(name string) *ClientScope
	AddClientScope(id, name string) *ClientScope
	UpdateClientScope(scope *ClientScope)
	RemoveClientScope(id string) bool

	AuthenticationFlows() []*AuthenticationFlow
	AuthenticationFlowByID(id string) *AuthenticationFlow
	AuthenticationFlowByAlias(alias string) *AuthenticationFlow
	AddAuthenticationFlow(flow *AuthenticationFlow)
	UpdateAuthenticationFlow(flow *AuthenticationFlow)
	RemoveAuthenticationFlow(id string) bool

	AuthenticationExecutions(flowID string) []*AuthenticationExecution
	AddAuthenticationExecution(execution *AuthenticationExecution)
	UpdateAuthenticationExecution(execution *AuthenticationExecution)
	RemoveAuthenticationExecution(id string) bool

	AuthenticatorConfigs() []*AuthenticatorConfig
	AuthenticatorConfigByID(id string) *AuthenticatorConfig
	AuthenticatorConfigByAlias(alias string) *AuthenticatorConfig
	AddAuthenticatorConfig(config *AuthenticatorConfig)
	UpdateAuthenticatorConfig(config *AuthenticatorConfig)
	RemoveAuthenticatorConfig(id string) bool

	Components() []*Component
	ComponentByID(id string) *Component
	AddComponent(component *Component)
	UpdateComponent(component *Component)
	RemoveComponent(id string) bool

	RequiredActions() []*RequiredAction
	RequiredActionByAlias(alias string) *RequiredAction
	AddRequiredAction(action *RequiredAction)
	UpdateRequiredAction(action *RequiredAction)
	RemoveRequiredAction(alias string) bool

	IdentityProviders() []*IdentityProvider
	IdentityProviderByAlias(alias string) *IdentityProvider
	AddIdentityProvider(idp *IdentityProvider)
	UpdateIdentityProvider(idp *IdentityProvider)
	RemoveIdentityProvider(alias string) bool

	IdentityProviderMappers() []*IdentityProviderMapper
	IdentityProviderMapperByID(id string) *IdentityProviderMapper
	AddIdentityProviderMapper(mapper *IdentityProviderMapper)
	UpdateIdentityProviderMapper(mapper *IdentityProviderMapper)
	RemoveIdentityProviderMapper(id string) bool

	Groups() []*Group
	GroupByID(id string) *Group
	CreateGroup(id, name string) *Group
	UpdateGroup(group *Group)
	RemoveGroup(id string) bool
}

// UnitOfWork is the transactional scope of one reconciliation run.
type UnitOfWork interface {
	Session() Session
	Commit() error
	Rollback() error
}
