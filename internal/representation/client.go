package representation

// Client mirrors the client export format.
type Client struct {
	ID                                 *string           `json:"id,omitempty"`
	ClientID                           *string           `json:"clientId,omitempty"`
	Name                               *string           `json:"name,omitempty"`
	Description                        *string           `json:"description,omitempty"`
	Enabled                            *bool             `json:"enabled,omitempty"`
	AlwaysDisplayInConsole             *bool             `json:"alwaysDisplayInConsole,omitempty"`
	RootURL                            *string           `json:"rootUrl,omitempty"`
	BaseURL                            *string           `json:"baseUrl,omitempty"`
	AdminURL                           *string           `json:"adminUrl,omitempty"`
	SurrogateAuthRequired              *bool             `json:"surrogateAuthRequired,omitempty"`
	ClientAuthenticatorType            *string           `json:"clientAuthenticatorType,omitempty"`
	Secret                             *string           `json:"secret,omitempty"`
	RedirectURIs                       []string          `json:"redirectUris,omitempty"`
	WebOrigins                         []string          `json:"webOrigins,omitempty"`
	NotBefore                          *int              `json:"notBefore,omitempty"`
	BearerOnly                         *bool             `json:"bearerOnly,omitempty"`
	ConsentRequired                    *bool             `json:"consentRequired,omitempty"`
	StandardFlowEnabled                *bool             `json:"standardFlowEnabled,omitempty"`
	ImplicitFlowEnabled                *bool             `json:"implicitFlowEnabled,omitempty"`
	DirectAccessGrantsEnabled          *bool             `json:"directAccessGrantsEnabled,omitempty"`
	ServiceAccountsEnabled             *bool             `json:"serviceAccountsEnabled,omitempty"`
	PublicClient                       *bool             `json:"publicClient,omitempty"`
	FrontchannelLogout                 *bool             `json:"frontchannelLogout,omitempty"`
	Protocol                           *string           `json:"protocol,omitempty"`
	Attributes                         map[string]string `json:"attributes,omitempty"`
	AuthenticationFlowBindingOverrides map[string]string `json:"authenticationFlowBindingOverrides,omitempty"`
	FullScopeAllowed                   *bool             `json:"fullScopeAllowed,omitempty"`
	NodeReRegistrationTimeout          *int              `json:"nodeReRegistrationTimeout,omitempty"`
	DefaultClientScopes                []string          `json:"defaultClientScopes,omitempty"`
	OptionalClientScopes               []string          `json:"optionalClientScopes,omitempty"`
	ProtocolMappers                    []*ProtocolMapper `json:"protocolMappers,omitempty"`
}

// ClientScope mirrors the client scope export format.
type ClientScope struct {
	ID              *string           `json:"id,omitempty"`
	Name            *string           `json:"name,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Protocol        *string           `json:"protocol,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	ProtocolMappers []*ProtocolMapper `json:"protocolMappers,omitempty"`
}

// ProtocolMapper belongs to either a client or a client scope.
type ProtocolMapper struct {
	ID             *string           `json:"id,omitempty"`
	Name           *string           `json:"name,omitempty"`
	Protocol       *string           `json:"protocol,omitempty"`
	ProtocolMapper *string           `json:"protocolMapper,omitempty"`
	Config         map[string]string `json:"config,omitempty"`
}

// Roles groups the realm roles and the client roles keyed by clientId.
type Roles struct {
	Realm  []*Role            `json:"realm,omitempty"`
	Client map[string][]*Role `json:"client,omitempty"`
}

// Role is a realm role or a client role.
type Role struct {
	ID          *string             `json:"id,omitempty"`
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Composite   *bool               `json:"composite,omitempty"`
	ClientRole  *bool               `json:"clientRole,omitempty"`
	ContainerID *string             `json:"containerId,omitempty"`
	Attributes  map[string][]string `json:"attributes,omitempty"`
	Composites  *RoleComposites     `json:"composites,omitempty"`
}

// RoleComposites lists composite members by name, client roles keyed by clientId.
type RoleComposites struct {
	Realm  []string            `json:"realm,omitempty"`
	Client map[string][]string `json:"client,omitempty"`
}
