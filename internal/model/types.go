package model

import "strings"

// SSLRequired is the realm's transport security requirement.
type SSLRequired string

const (
	SSLRequiredAll      SSLRequired = "all"
	SSLRequiredExternal SSLRequired = "external"
	SSLRequiredNone     SSLRequired = "none"
)

// Requirement is the requirement level of an authentication execution.
type Requirement string

const (
	RequirementRequired    Requirement = "REQUIRED"
	RequirementAlternative Requirement = "ALTERNATIVE"
	RequirementDisabled    Requirement = "DISABLED"
	RequirementConditional Requirement = "CONDITIONAL"
)

// Realm is a live realm. Flow bindings hold flow ids.
type Realm struct {
	ID                          string            `json:"id"`
	Name                        string            `json:"name"`
	DisplayName                 string            `json:"displayName,omitempty"`
	DisplayNameHTML             string            `json:"displayNameHtml,omitempty"`
	Enabled                     bool              `json:"enabled"`
	SSLRequired                 SSLRequired       `json:"sslRequired,omitempty"`
	RegistrationAllowed         bool              `json:"registrationAllowed"`
	RegistrationEmailAsUsername bool              `json:"registrationEmailAsUsername"`
	RememberMe                  bool              `json:"rememberMe"`
	VerifyEmail                 bool              `json:"verifyEmail"`
	LoginWithEmailAllowed       bool              `json:"loginWithEmailAllowed"`
	DuplicateEmailsAllowed      bool              `json:"duplicateEmailsAllowed"`
	ResetPasswordAllowed        bool              `json:"resetPasswordAllowed"`
	EditUsernameAllowed         bool              `json:"editUsernameAllowed"`
	BruteForceProtected         bool              `json:"bruteForceProtected"`
	PermanentLockout            bool              `json:"permanentLockout"`
	MaxFailureWaitSeconds       int               `json:"maxFailureWaitSeconds"`
	FailureFactor               int               `json:"failureFactor"`
	AccessTokenLifespan         int               `json:"accessTokenLifespan"`
	SSOSessionIdleTimeout       int               `json:"ssoSessionIdleTimeout"`
	SSOSessionMaxLifespan       int               `json:"ssoSessionMaxLifespan"`
	PasswordPolicy              string            `json:"passwordPolicy,omitempty"`
	LoginTheme                  string            `json:"loginTheme,omitempty"`
	AccountTheme                string            `json:"accountTheme,omitempty"`
	AdminTheme                  string            `json:"adminTheme,omitempty"`
	EmailTheme                  string            `json:"emailTheme,omitempty"`
	EventsEnabled               bool              `json:"eventsEnabled"`
	EventsListeners             []string          `json:"eventsListeners,omitempty"`
	EnabledEventTypes           []string          `json:"enabledEventTypes,omitempty"`
	InternationalizationEnabled bool              `json:"internationalizationEnabled"`
	SupportedLocales            []string          `json:"supportedLocales,omitempty"`
	DefaultLocale               string            `json:"defaultLocale,omitempty"`
	Attributes                  map[string]string `json:"attributes,omitempty"`
	BrowserSecurityHeaders      map[string]string `json:"browserSecurityHeaders,omitempty"`

	BrowserFlow              string `json:"browserFlow,omitempty"`
	RegistrationFlow         string `json:"registrationFlow,omitempty"`
	DirectGrantFlow          string `json:"directGrantFlow,omitempty"`
	ResetCredentialsFlow     string `json:"resetCredentialsFlow,omitempty"`
	ClientAuthenticationFlow string `json:"clientAuthenticationFlow,omitempty"`
	DockerAuthenticationFlow string `json:"dockerAuthenticationFlow,omitempty"`
	FirstBrokerLoginFlow     string `json:"firstBrokerLoginFlow,omitempty"`

	DefaultRoleID        string   `json:"defaultRoleId,omitempty"`
	DefaultClientScopes  []string `json:"defaultClientScopes,omitempty"`
	OptionalClientScopes []string `json:"optionalClientScopes,omitempty"`
}

// Client is a live client. Client scopes are referenced by name.
type Client struct {
	ID                                 string            `json:"id"`
	ClientID                           string            `json:"clientId"`
	Name                               string            `json:"name,omitempty"`
	Description                        string            `json:"description,omitempty"`
	Enabled                            bool              `json:"enabled"`
	AlwaysDisplayInConsole             bool              `json:"alwaysDisplayInConsole"`
	RootURL                            string            `json:"rootUrl,omitempty"`
	BaseURL                            string            `json:"baseUrl,omitempty"`
	AdminURL                           string            `json:"adminUrl,omitempty"`
	SurrogateAuthRequired              bool              `json:"surrogateAuthRequired"`
	ClientAuthenticatorType            string            `json:"clientAuthenticatorType,omitempty"`
	Secret                             string            `json:"secret,omitempty"`
	RedirectURIs                       []string          `json:"redirectUris,omitempty"`
	WebOrigins                         []string          `json:"webOrigins,omitempty"`
	NotBefore                          int               `json:"notBefore"`
	BearerOnly                         bool              `json:"bearerOnly"`
	ConsentRequired                    bool              `json:"consentRequired"`
	StandardFlowEnabled                bool              `json:"standardFlowEnabled"`
	ImplicitFlowEnabled                bool              `json:"implicitFlowEnabled"`
	DirectAccessGrantsEnabled          bool              `json:"directAccessGrantsEnabled"`
	ServiceAccountsEnabled             bool              `json:"serviceAccountsEnabled"`
	PublicClient                       bool              `json:"publicClient"`
	FrontchannelLogout                 bool              `json:"frontchannelLogout"`
	Protocol                           string            `json:"protocol,omitempty"`
	Attributes                         map[string]string `json:"attributes,omitempty"`
	AuthenticationFlowBindingOverrides map[string]string `json:"authenticationFlowBindingOverrides,omitempty"`
	FullScopeAllowed                   bool              `json:"fullScopeAllowed"`
	NodeReRegistrationTimeout          int               `json:"nodeReRegistrationTimeout"`
	DefaultClientScopes                []string          `json:"defaultClientScopes,omitempty"`
	OptionalClientScopes               []string          `json:"optionalClientScopes,omitempty"`
	ScopeMappings                      RoleRefs          `json:"scopeMappings,omitempty"`
}

// ClientScope is a live client scope.
type ClientScope struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Protocol      string            `json:"protocol,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	ScopeMappings RoleRefs          `json:"scopeMappings,omitempty"`
}

// ProtocolMapper is a live protocol mapper of a client or client scope.
type ProtocolMapper struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Protocol       string            `json:"protocol,omitempty"`
	ProtocolMapper string            `json:"protocolMapper,omitempty"`
	Config         map[string]string `json:"config,omitempty"`
}

// Role is a live realm or client role. ContainerID is the realm id or the
// internal id of the owning client.
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	ClientRole  bool                `json:"clientRole"`
	ContainerID string              `json:"containerId"`
	Attributes  map[string][]string `json:"attributes,omitempty"`
	Composites  RoleRefs            `json:"composites,omitempty"`
}

// RoleRef names a role by its natural key. ClientID is empty for realm roles.
type RoleRef struct {
	ClientID string `json:"clientId,omitempty"`
	Name     string `json:"name"`
}

func (r RoleRef) String() string {
	if r.ClientID == "" {
		return r.Name
	}
	return r.ClientID + "/" + r.Name
}

// RoleRefs is a set of role references kept in insertion order.
type RoleRefs []RoleRef

func (rs RoleRefs) String() string {
	if rs == nil {
		return "null"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Contains reports whether ref is in the set.
func (rs RoleRefs) Contains(ref RoleRef) bool {
	for _, r := range rs {
		if r == ref {
			return true
		}
	}
	return false
}

// AuthenticationFlow is a live authentication flow.
type AuthenticationFlow struct {
	ID          string `json:"id"`
	Alias       string `json:"alias"`
	Description string `json:"description,omitempty"`
	ProviderID  string `json:"providerId,omitempty"`
	TopLevel    bool   `json:"topLevel"`
	BuiltIn     bool   `json:"builtIn"`
}

// AuthenticationExecution is one step of a flow. AuthenticatorConfig holds a
// config id, FlowID the id of a sub flow.
type AuthenticationExecution struct {
	ID                  string      `json:"id"`
	ParentFlow          string      `json:"parentFlow"`
	Authenticator       string      `json:"authenticator,omitempty"`
	AuthenticatorConfig string      `json:"authenticatorConfig,omitempty"`
	AuthenticatorFlow   bool        `json:"authenticatorFlow"`
	FlowID              string      `json:"flowId,omitempty"`
	Requirement         Requirement `json:"requirement,omitempty"`
	Priority            int         `json:"priority"`
	UserSetupAllowed    bool        `json:"userSetupAllowed"`
}

// AuthenticatorConfig is a live authenticator config.
type AuthenticatorConfig struct {
	ID     string            `json:"id"`
	Alias  string            `json:"alias"`
	Config map[string]string `json:"config,omitempty"`
}

// Component is a live component. ParentID is the realm id for top level
// components.
type Component struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ProviderID   string              `json:"providerId,omitempty"`
	ProviderType string              `json:"providerType"`
	ParentID     string              `json:"parentId"`
	SubType      string              `json:"subType,omitempty"`
	Config       map[string][]string `json:"config,omitempty"`
}

// RequiredAction is a live required action provider.
type RequiredAction struct {
	ID            string            `json:"id"`
	Alias         string            `json:"alias"`
	Name          string            `json:"name,omitempty"`
	ProviderID    string            `json:"providerId,omitempty"`
	Enabled       bool              `json:"enabled"`
	DefaultAction bool              `json:"defaultAction"`
	Priority      int               `json:"priority"`
	Config        map[string]string `json:"config,omitempty"`
}

// IdentityProvider is a live identity provider. Broker login flows hold flow
// ids.
type IdentityProvider struct {
	Alias                    string            `json:"alias"`
	InternalID               string            `json:"internalId"`
	DisplayName              string            `json:"displayName,omitempty"`
	ProviderID               string            `json:"providerId,omitempty"`
	Enabled                  bool              `json:"enabled"`
	TrustEmail               bool              `json:"trustEmail"`
	StoreToken               bool              `json:"storeToken"`
	AddReadTokenRoleOnCreate bool              `json:"addReadTokenRoleOnCreate"`
	AuthenticateByDefault    bool              `json:"authenticateByDefault"`
	LinkOnly                 bool              `json:"linkOnly"`
	FirstBrokerLoginFlowID   string            `json:"firstBrokerLoginFlowId,omitempty"`
	PostBrokerLoginFlowID    string            `json:"postBrokerLoginFlowId,omitempty"`
	Config                   map[string]string `json:"config,omitempty"`
}

// IdentityProviderMapper is a live identity provider mapper.
type IdentityProviderMapper struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	IdentityProviderAlias  string            `json:"identityProviderAlias"`
	IdentityProviderMapper string            `json:"identityProviderMapper,omitempty"`
	Config                 map[string]string `json:"config,omitempty"`
}

// Group is a live top level group. Client roles are keyed by clientId.
type Group struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Attributes  map[string][]string `json:"attributes,omitempty"`
	RealmRoles  []string            `json:"realmRoles,omitempty"`
	ClientRoles map[string][]string `json:"clientRoles,omitempty"`
}
