package representation

// AuthenticationFlow mirrors the flow export format including its executions.
type AuthenticationFlow struct {
	ID                       *string                    `json:"id,omitempty"`
	Alias                    *string                    `json:"alias,omitempty"`
	Description              *string                    `json:"description,omitempty"`
	ProviderID               *string                    `json:"providerId,omitempty"`
	TopLevel                 *bool                      `json:"topLevel,omitempty"`
	BuiltIn                  *bool                      `json:"builtIn,omitempty"`
	AuthenticationExecutions []*AuthenticationExecution `json:"authenticationExecutions,omitempty"`
}

// AuthenticationExecution is an exported execution. It has no identity of
// its own; configs and subflows are referenced by alias.
type AuthenticationExecution struct {
	Authenticator       *string `json:"authenticator,omitempty"`
	AuthenticatorConfig *string `json:"authenticatorConfig,omitempty"`
	AuthenticatorFlow   *bool   `json:"authenticatorFlow,omitempty"`
	FlowAlias           *string `json:"flowAlias,omitempty"`
	Requirement         *string `json:"requirement,omitempty"`
	Priority            *int    `json:"priority,omitempty"`
	UserSetupAllowed    *bool   `json:"userSetupAllowed,omitempty"`
}

// AuthenticatorConfig holds the settings of one authenticator.
type AuthenticatorConfig struct {
	ID     *string           `json:"id,omitempty"`
	Alias  *string           `json:"alias,omitempty"`
	Config map[string]string `json:"config,omitempty"`
}

// RequiredAction mirrors a required action provider.
type RequiredAction struct {
	Alias         *string           `json:"alias,omitempty"`
	Name          *string           `json:"name,omitempty"`
	ProviderID    *string           `json:"providerId,omitempty"`
	Enabled       *bool             `json:"enabled,omitempty"`
	DefaultAction *bool             `json:"defaultAction,omitempty"`
	Priority      *int              `json:"priority,omitempty"`
	Config        map[string]string `json:"config,omitempty"`
}

// Component mirrors the component export format. Sub components are keyed by
// provider type like the realm level map.
type Component struct {
	ID            *string                 `json:"id,omitempty"`
	Name          *string                 `json:"name,omitempty"`
	ProviderID    *string                 `json:"providerId,omitempty"`
	SubType       *string                 `json:"subType,omitempty"`
	SubComponents map[string][]*Component `json:"subComponents,omitempty"`
	Config        map[string][]string     `json:"config,omitempty"`
}

// IdentityProvider mirrors the identity provider export format.
type IdentityProvider struct {
	Alias                     *string           `json:"alias,omitempty"`
	DisplayName               *string           `json:"displayName,omitempty"`
	InternalID                *string           `json:"internalId,omitempty"`
	ProviderID                *string           `json:"providerId,omitempty"`
	Enabled                   *bool             `json:"enabled,omitempty"`
	TrustEmail                *bool             `json:"trustEmail,omitempty"`
	StoreToken                *bool             `json:"storeToken,omitempty"`
	AddReadTokenRoleOnCreate  *bool             `json:"addReadTokenRoleOnCreate,omitempty"`
	AuthenticateByDefault     *bool             `json:"authenticateByDefault,omitempty"`
	LinkOnly                  *bool             `json:"linkOnly,omitempty"`
	FirstBrokerLoginFlowAlias *string           `json:"firstBrokerLoginFlowAlias,omitempty"`
	PostBrokerLoginFlowAlias  *string           `json:"postBrokerLoginFlowAlias,omitempty"`
	Config                    map[string]string `json:"config,omitempty"`
}

// IdentityProviderMapper maps brokered claims for one identity provider.
type IdentityProviderMapper struct {
	ID                     *string           `json:"id,omitempty"`
	Name                   *string           `json:"name,omitempty"`
	IdentityProviderAlias  *string           `json:"identityProviderAlias,omitempty"`
	IdentityProviderMapper *string           `json:"identityProviderMapper,omitempty"`
	Config                 map[string]string `json:"config,omitempty"`
}

// Group mirrors a top level group. Sub groups are not reconciled.
type Group struct {
	ID          *string             `json:"id,omitempty"`
	Name        *string             `json:"name,omitempty"`
	Path        *string             `json:"path,omitempty"`
	Attributes  map[string][]string `json:"attributes,omitempty"`
	RealmRoles  []string            `json:"realmRoles,omitempty"`
	ClientRoles map[string][]string `json:"clientRoles,omitempty"`
}
