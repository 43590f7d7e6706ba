package updater

import (
	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
)

// UpdateAuthenticationFlow copies the flow fields.
func UpdateAuthenticationFlow(t *changes.Tracker[model.AuthenticationFlow], d *representation.AuthenticationFlow) {
	set(t, "Alias", func(f *model.AuthenticationFlow) *string { return &f.Alias }, d.Alias)
	set(t, "Description", func(f *model.AuthenticationFlow) *string { return &f.Description }, d.Description)
	set(t, "ProviderId", func(f *model.AuthenticationFlow) *string { return &f.ProviderID }, d.ProviderID)
	set(t, "TopLevel", func(f *model.AuthenticationFlow) *bool { return &f.TopLevel }, d.TopLevel)
	set(t, "BuiltIn", func(f *model.AuthenticationFlow) *bool { return &f.BuiltIn }, d.BuiltIn)
}

// ExecutionConfigID resolves the authenticator config alias of an execution.
// An absent alias resolves to the empty id.
func ExecutionConfigID(d *representation.AuthenticationExecution, r Resolver, key string) (string, error) {
	if d.AuthenticatorConfig == nil {
		return "", nil
	}
	id, ok := r.AuthenticatorConfigID(*d.AuthenticatorConfig)
	if !ok {
		return "", unresolved(key, "authenticator config", *d.AuthenticatorConfig)
	}
	return id, nil
}

// UpdateAuthenticationExecution copies the execution fields and resolves
// its config and sub flow references.
func UpdateAuthenticationExecution(t *changes.Tracker[model.AuthenticationExecution], d *representation.AuthenticationExecution, r Resolver, key string) error {
	configID, err := ExecutionConfigID(d, r, key)
	if err != nil {
		return err
	}
	var flowID *string
	if d.FlowAlias != nil {
		id, ok := r.FlowID(*d.FlowAlias)
		if !ok {
			return unresolved(key, "authentication flow", *d.FlowAlias)
		}
		flowID = &id
	}

	set(t, "Authenticator", func(e *model.AuthenticationExecution) *string { return &e.Authenticator }, d.Authenticator)
	set(t, "AuthenticatorFlow", func(e *model.AuthenticationExecution) *bool { return &e.AuthenticatorFlow }, d.AuthenticatorFlow)
	set(t, "Requirement", func(e *model.AuthenticationExecution) *model.Requirement { return &e.Requirement },
		convert(d.Requirement, func(s string) model.Requirement { return model.Requirement(s) }))
	set(t, "Priority", func(e *model.AuthenticationExecution) *int { return &e.Priority }, d.Priority)
	set(t, "UserSetupAllowed", func(e *model.AuthenticationExecution) *bool { return &e.UserSetupAllowed }, d.UserSetupAllowed)
	if d.AuthenticatorConfig != nil {
		set(t, "AuthenticatorConfig", func(e *model.AuthenticationExecution) *string { return &e.AuthenticatorConfig }, &configID)
	}
	set(t, "FlowId", func(e *model.AuthenticationExecution) *string { return &e.FlowID }, flowID)
	return nil
}

// UpdateAuthenticatorConfig copies the config fields.
func UpdateAuthenticatorConfig(t *changes.Tracker[model.AuthenticatorConfig], d *representation.AuthenticatorConfig) {
	set(t, "Alias", func(c *model.AuthenticatorConfig) *string { return &c.Alias }, d.Alias)
	set(t, "Config", func(c *model.AuthenticatorConfig) *map[string]string { return &c.Config }, dict(d.Config))
}

// UpdateRequiredAction copies the required action fields.
func UpdateRequiredAction(t *changes.Tracker[model.RequiredAction], d *representation.RequiredAction) {
	set(t, "Name", func(a *model.RequiredAction) *string { return &a.Name }, d.Name)
	set(t, "ProviderId", func(a *model.RequiredAction) *string { return &a.ProviderID }, d.ProviderID)
	set(t, "Enabled", func(a *model.RequiredAction) *bool { return &a.Enabled }, d.Enabled)
	set(t, "DefaultAction", func(a *model.RequiredAction) *bool { return &a.DefaultAction }, d.DefaultAction)
	set(t, "Priority", func(a *model.RequiredAction) *int { return &a.Priority }, d.Priority)
	set(t, "Config", func(a *model.RequiredAction) *map[string]string { return &a.Config }, dict(d.Config))
}

// UpdateComponent copies the component fields. Provider type and parent are
// fixed at creation.
func UpdateComponent(t *changes.Tracker[model.Component], d *representation.Component) {
	set(t, "Name", func(c *model.Component) *string { return &c.Name }, d.Name)
	set(t, "ProviderId", func(c *model.Component) *string { return &c.ProviderID }, d.ProviderID)
	set(t, "SubType", func(c *model.Component) *string { return &c.SubType }, d.SubType)
	set(t, "Config", func(c *model.Component) *map[string][]string { return &c.Config }, dict(d.Config))
}

// UpdateIdentityProvider copies the identity provider fields. A blank broker
// login flow alias clears the binding.
func UpdateIdentityProvider(t *changes.Tracker[model.IdentityProvider], d *representation.IdentityProvider, r Resolver, key string) error {
	firstBroker, err := brokerFlowID(d.FirstBrokerLoginFlowAlias, r, key)
	if err != nil {
		return err
	}
	postBroker, err := brokerFlowID(d.PostBrokerLoginFlowAlias, r, key)
	if err != nil {
		return err
	}

	set(t, "DisplayName", func(p *model.IdentityProvider) *string { return &p.DisplayName }, d.DisplayName)
	set(t, "ProviderId", func(p *model.IdentityProvider) *string { return &p.ProviderID }, d.ProviderID)
	set(t, "Enabled", func(p *model.IdentityProvider) *bool { return &p.Enabled }, d.Enabled)
	set(t, "TrustEmail", func(p *model.IdentityProvider) *bool { return &p.TrustEmail }, d.TrustEmail)
	set(t, "StoreToken", func(p *model.IdentityProvider) *bool { return &p.StoreToken }, d.StoreToken)
	set(t, "AddReadTokenRoleOnCreate", func(p *model.IdentityProvider) *bool { return &p.AddReadTokenRoleOnCreate }, d.AddReadTokenRoleOnCreate)
	set(t, "AuthenticateByDefault", func(p *model.IdentityProvider) *bool { return &p.AuthenticateByDefault }, d.AuthenticateByDefault)
	set(t, "LinkOnly", func(p *model.IdentityProvider) *bool { return &p.LinkOnly }, d.LinkOnly)
	set(t, "FirstBrokerLoginFlowId", func(p *model.IdentityProvider) *string { return &p.FirstBrokerLoginFlowID }, firstBroker)
	set(t, "PostBrokerLoginFlowId", func(p *model.IdentityProvider) *string { return &p.PostBrokerLoginFlowID }, postBroker)
	set(t, "Config", func(p *model.IdentityProvider) *map[string]string { return &p.Config }, dict(d.Config))
	return nil
}

func brokerFlowID(alias *string, r Resolver, key string) (*string, error) {
	if alias == nil {
		return nil, nil
	}
	if *alias == "" {
		empty := ""
		return &empty, nil
	}
	id, ok := r.FlowID(*alias)
	if !ok {
		return nil, unresolved(key, "authentication flow", *alias)
	}
	return &id, nil
}

// UpdateIdentityProviderMapper copies the mapper fields. The identity
// provider alias must resolve.
func UpdateIdentityProviderMapper(t *changes.Tracker[model.IdentityProviderMapper], d *representation.IdentityProviderMapper, r Resolver, key string) error {
	if d.IdentityProviderAlias != nil && !r.HasIdentityProvider(*d.IdentityProviderAlias) {
		return unresolved(key, "identity provider", *d.IdentityProviderAlias)
	}
	set(t, "Name", func(m *model.IdentityProviderMapper) *string { return &m.Name }, d.Name)
	set(t, "IdentityProviderAlias", func(m *model.IdentityProviderMapper) *string { return &m.IdentityProviderAlias }, d.IdentityProviderAlias)
	set(t, "IdentityProviderMapper", func(m *model.IdentityProviderMapper) *string { return &m.IdentityProviderMapper }, d.IdentityProviderMapper)
	set(t, "Config", func(m *model.IdentityProviderMapper) *map[string]string { return &m.Config }, dict(d.Config))
	return nil
}
