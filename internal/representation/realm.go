package representation

// Realm mirrors the realm export format. Optional fields are pointers so an
// absent value can be told apart from a zero value.
type Realm struct {
	ID                          *string           `json:"id,omitempty"`
	Realm                       *string           `json:"realm,omitempty"`
	DisplayName                 *string           `json:"displayName,omitempty"`
	DisplayNameHTML             *string           `json:"displayNameHtml,omitempty"`
	Enabled                     *bool             `json:"enabled,omitempty"`
	SSLRequired                 *string           `json:"sslRequired,omitempty"`
	RegistrationAllowed         *bool             `json:"registrationAllowed,omitempty"`
	RegistrationEmailAsUsername *bool             `json:"registrationEmailAsUsername,omitempty"`
	RememberMe                  *bool             `json:"rememberMe,omitempty"`
	VerifyEmail                 *bool             `json:"verifyEmail,omitempty"`
	LoginWithEmailAllowed       *bool             `json:"loginWithEmailAllowed,omitempty"`
	DuplicateEmailsAllowed      *bool             `json:"duplicateEmailsAllowed,omitempty"`
	ResetPasswordAllowed        *bool             `json:"resetPasswordAllowed,omitempty"`
	EditUsernameAllowed         *bool             `json:"editUsernameAllowed,omitempty"`
	BruteForceProtected         *bool             `json:"bruteForceProtected,omitempty"`
	PermanentLockout            *bool             `json:"permanentLockout,omitempty"`
	MaxFailureWaitSeconds       *int              `json:"maxFailureWaitSeconds,omitempty"`
	FailureFactor               *int              `json:"failureFactor,omitempty"`
	AccessTokenLifespan         *int              `json:"accessTokenLifespan,omitempty"`
	SSOSessionIdleTimeout       *int              `json:"ssoSessionIdleTimeout,omitempty"`
	SSOSessionMaxLifespan       *int              `json:"ssoSessionMaxLifespan,omitempty"`
	PasswordPolicy              *string           `json:"passwordPolicy,omitempty"`
	LoginTheme                  *string           `json:"loginTheme,omitempty"`
	AccountTheme                *string           `json:"accountTheme,omitempty"`
	AdminTheme                  *string           `json:"adminTheme,omitempty"`
	EmailTheme                  *string           `json:"emailTheme,omitempty"`
	EventsEnabled               *bool             `json:"eventsEnabled,omitempty"`
	EventsListeners             []string          `json:"eventsListeners,omitempty"`
	EnabledEventTypes           []string          `json:"enabledEventTypes,omitempty"`
	InternationalizationEnabled *bool             `json:"internationalizationEnabled,omitempty"`
	SupportedLocales            []string          `json:"supportedLocales,omitempty"`
	DefaultLocale               *string           `json:"defaultLocale,omitempty"`
	Attributes                  map[string]string `json:"attributes,omitempty"`
	BrowserSecurityHeaders      map[string]string `json:"browserSecurityHeaders,omitempty"`

	// Flow bindings reference authentication flows by alias.
	BrowserFlow              *string `json:"browserFlow,omitempty"`
	RegistrationFlow         *string `json:"registrationFlow,omitempty"`
	DirectGrantFlow          *string `json:"directGrantFlow,omitempty"`
	ResetCredentialsFlow     *string `json:"resetCredentialsFlow,omitempty"`
	ClientAuthenticationFlow *string `json:"clientAuthenticationFlow,omitempty"`
	DockerAuthenticationFlow *string `json:"dockerAuthenticationFlow,omitempty"`
	FirstBrokerLoginFlow     *string `json:"firstBrokerLoginFlow,omitempty"`

	DefaultRole                 *Role    `json:"defaultRole,omitempty"`
	DefaultDefaultClientScopes  []string `json:"defaultDefaultClientScopes,omitempty"`
	DefaultOptionalClientScopes []string `json:"defaultOptionalClientScopes,omitempty"`

	Roles                   *Roles                     `json:"roles,omitempty"`
	Clients                 []*Client                  `json:"clients,omitempty"`
	ClientScopes            []*ClientScope             `json:"clientScopes,omitempty"`
	AuthenticationFlows     []*AuthenticationFlow      `json:"authenticationFlows,omitempty"`
	AuthenticatorConfig     []*AuthenticatorConfig     `json:"authenticatorConfig,omitempty"`
	Components              map[string][]*Component    `json:"components,omitempty"`
	RequiredActions         []*RequiredAction          `json:"requiredActions,omitempty"`
	IdentityProviders       []*IdentityProvider        `json:"identityProviders,omitempty"`
	IdentityProviderMappers []*IdentityProviderMapper  `json:"identityProviderMappers,omitempty"`
	Groups                  []*Group                   `json:"groups,omitempty"`
	ScopeMappings           []*ScopeMapping            `json:"scopeMappings,omitempty"`
	ClientScopeMappings     map[string][]*ScopeMapping `json:"clientScopeMappings,omitempty"`
}

// Name returns the realm name or an empty string.
func (r *Realm) Name() string {
	return Deref(r.Realm)
}

// ScopeMapping assigns roles to a client or a client scope. Exactly one of
// Client and ClientScope is set.
type ScopeMapping struct {
	Client      *string  `json:"client,omitempty"`
	ClientScope *string  `json:"clientScope,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
