package updater

import (
	"strings"

	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
)

type realmTracker = changes.Tracker[model.Realm]

// UpdateRealm copies the plain realm fields.
func UpdateRealm(t *realmTracker, d *representation.Realm) {
	set(t, "Name", func(r *model.Realm) *string { return &r.Name }, d.Realm)
	set(t, "DisplayName", func(r *model.Realm) *string { return &r.DisplayName }, d.DisplayName)
	set(t, "DisplayNameHtml", func(r *model.Realm) *string { return &r.DisplayNameHTML }, d.DisplayNameHTML)
	set(t, "Enabled", func(r *model.Realm) *bool { return &r.Enabled }, d.Enabled)
	set(t, "SslRequired", func(r *model.Realm) *model.SSLRequired { return &r.SSLRequired },
		convert(d.SSLRequired, func(s string) model.SSLRequired { return model.SSLRequired(strings.ToLower(s)) }))
	set(t, "RegistrationAllowed", func(r *model.Realm) *bool { return &r.RegistrationAllowed }, d.RegistrationAllowed)
	set(t, "RegistrationEmailAsUsername", func(r *model.Realm) *bool { return &r.RegistrationEmailAsUsername }, d.RegistrationEmailAsUsername)
	set(t, "RememberMe", func(r *model.Realm) *bool { return &r.RememberMe }, d.RememberMe)
	set(t, "VerifyEmail", func(r *model.Realm) *bool { return &r.VerifyEmail }, d.VerifyEmail)
	set(t, "LoginWithEmailAllowed", func(r *model.Realm) *bool { return &r.LoginWithEmailAllowed }, d.LoginWithEmailAllowed)
	set(t, "DuplicateEmailsAllowed", func(r *model.Realm) *bool { return &r.DuplicateEmailsAllowed }, d.DuplicateEmailsAllowed)
	set(t, "ResetPasswordAllowed", func(r *model.Realm) *bool { return &r.ResetPasswordAllowed }, d.ResetPasswordAllowed)
	set(t, "EditUsernameAllowed", func(r *model.Realm) *bool { return &r.EditUsernameAllowed }, d.EditUsernameAllowed)
	set(t, "BruteForceProtected", func(r *model.Realm) *bool { return &r.BruteForceProtected }, d.BruteForceProtected)
	set(t, "PermanentLockout", func(r *model.Realm) *bool { return &r.PermanentLockout }, d.PermanentLockout)
	set(t, "MaxFailureWaitSeconds", func(r *model.Realm) *int { return &r.MaxFailureWaitSeconds }, d.MaxFailureWaitSeconds)
	set(t, "FailureFactor", func(r *model.Realm) *int { return &r.FailureFactor }, d.FailureFactor)
	set(t, "AccessTokenLifespan", func(r *model.Realm) *int { return &r.AccessTokenLifespan }, d.AccessTokenLifespan)
	set(t, "SsoSessionIdleTimeout", func(r *model.Realm) *int { return &r.SSOSessionIdleTimeout }, d.SSOSessionIdleTimeout)
	set(t, "SsoSessionMaxLifespan", func(r *model.Realm) *int { return &r.SSOSessionMaxLifespan }, d.SSOSessionMaxLifespan)
	set(t, "PasswordPolicy", func(r *model.Realm) *string { return &r.PasswordPolicy }, d.PasswordPolicy)
	set(t, "LoginTheme", func(r *model.Realm) *string { return &r.LoginTheme }, d.LoginTheme)
	set(t, "AccountTheme", func(r *model.Realm) *string { return &r.AccountTheme }, d.AccountTheme)
	set(t, "AdminTheme", func(r *model.Realm) *string { return &r.AdminTheme }, d.AdminTheme)
	set(t, "EmailTheme", func(r *model.Realm) *string { return &r.EmailTheme }, d.EmailTheme)
	set(t, "EventsEnabled", func(r *model.Realm) *bool { return &r.EventsEnabled }, d.EventsEnabled)
	set(t, "EventsListeners", func(r *model.Realm) *[]string { return &r.EventsListeners }, list(d.EventsListeners))
	set(t, "EnabledEventTypes", func(r *model.Realm) *[]string { return &r.EnabledEventTypes }, list(d.EnabledEventTypes))
	set(t, "InternationalizationEnabled", func(r *model.Realm) *bool { return &r.InternationalizationEnabled }, d.InternationalizationEnabled)
	set(t, "SupportedLocales", func(r *model.Realm) *[]string { return &r.SupportedLocales }, list(d.SupportedLocales))
	set(t, "DefaultLocale", func(r *model.Realm) *string { return &r.DefaultLocale }, d.DefaultLocale)
	set(t, "Attributes", func(r *model.Realm) *map[string]string { return &r.Attributes }, dict(d.Attributes))
	set(t, "BrowserSecurityHeaders", func(r *model.Realm) *map[string]string { return &r.BrowserSecurityHeaders }, dict(d.BrowserSecurityHeaders))
}

// flowBinding pairs a realm flow binding with its declared alias.
type flowBinding struct {
	name  string
	ref   func(*model.Realm) *string
	alias func(*representation.Realm) *string
}

var flowBindings = []flowBinding{
	{"BrowserFlow", func(r *model.Realm) *string { return &r.BrowserFlow }, func(d *representation.Realm) *string { return d.BrowserFlow }},
	{"RegistrationFlow", func(r *model.Realm) *string { return &r.RegistrationFlow }, func(d *representation.Realm) *string { return d.RegistrationFlow }},
	{"DirectGrantFlow", func(r *model.Realm) *string { return &r.DirectGrantFlow }, func(d *representation.Realm) *string { return d.DirectGrantFlow }},
	{"ResetCredentialsFlow", func(r *model.Realm) *string { return &r.ResetCredentialsFlow }, func(d *representation.Realm) *string { return d.ResetCredentialsFlow }},
	{"ClientAuthenticationFlow", func(r *model.Realm) *string { return &r.ClientAuthenticationFlow }, func(d *representation.Realm) *string { return d.ClientAuthenticationFlow }},
	{"DockerAuthenticationFlow", func(r *model.Realm) *string { return &r.DockerAuthenticationFlow }, func(d *representation.Realm) *string { return d.DockerAuthenticationFlow }},
	{"FirstBrokerLoginFlow", func(r *model.Realm) *string { return &r.FirstBrokerLoginFlow }, func(d *representation.Realm) *string { return d.FirstBrokerLoginFlow }},
}

// LinkRealm applies the realm attributes that reference resources formed
// as realm children: the default role, the default client scopes and the
// flow bindings. It runs after the children.
func LinkRealm(t *realmTracker, d *representation.Realm, r Resolver, key string) error {
	if d.DefaultRole != nil {
		id, err := defaultRoleID(d.DefaultRole, r, key)
		if err != nil {
			return err
		}
		if id != "" {
			set(t, "DefaultRole", func(m *model.Realm) *string { return &m.DefaultRoleID }, &id)
		}
	}

	for _, name := range d.DefaultDefaultClientScopes {
		if !r.HasClientScope(name) {
			return unresolved(key, "client scope", name)
		}
	}
	for _, name := range d.DefaultOptionalClientScopes {
		if !r.HasClientScope(name) {
			return unresolved(key, "client scope", name)
		}
	}
	set(t, "DefaultDefaultClientScopes", func(m *model.Realm) *[]string { return &m.DefaultClientScopes }, list(d.DefaultDefaultClientScopes))
	set(t, "DefaultOptionalClientScopes", func(m *model.Realm) *[]string { return &m.OptionalClientScopes }, list(d.DefaultOptionalClientScopes))

	for _, b := range flowBindings {
		alias := b.alias(d)
		if alias == nil {
			continue
		}
		id, ok := r.FlowID(*alias)
		if !ok {
			return unresolved(key, "authentication flow", *alias)
		}
		set(t, b.name, b.ref, &id)
	}
	return nil
}

func defaultRoleID(role *representation.Role, r Resolver, key string) (string, error) {
	if role.Name != nil {
		id, ok := r.RealmRoleID(*role.Name)
		if !ok {
			return "", unresolved(key, "realm role", *role.Name)
		}
		return id, nil
	}
	return representation.Deref(role.ID), nil
}
