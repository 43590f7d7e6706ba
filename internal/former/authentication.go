package former

import (
	"strconv"

	"github.com/google/uuid"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

// flowKind matches flows by id, or by alias when no id is declared.
type flowKind struct {
	baseKind[model.AuthenticationFlow, representation.AuthenticationFlow]
}

func (flowKind) describe(_ *Context, d *representation.AuthenticationFlow) string {
	return "authentication flow " + quote(representation.Deref(d.Alias))
}

func (flowKind) lookup(c *Context, d *representation.AuthenticationFlow) (*model.AuthenticationFlow, error) {
	if id := representation.Deref(d.ID); id != "" {
		return c.resources.AuthenticationFlowByID(id), nil
	}
	return c.resources.AuthenticationFlowByAlias(representation.Deref(d.Alias)), nil
}

func (flowKind) create(_ *Context, d *representation.AuthenticationFlow) *model.AuthenticationFlow {
	return &model.AuthenticationFlow{ID: newID(d.ID)}
}

func (flowKind) update(_ *Context, t *changes.Tracker[model.AuthenticationFlow], d *representation.AuthenticationFlow) error {
	updater.UpdateAuthenticationFlow(t, d)
	return nil
}

func (flowKind) register(c *Context, m *model.AuthenticationFlow) {
	c.resources.AddAuthenticationFlow(m)
}

func (flowKind) persist(c *Context, m *model.AuthenticationFlow) {
	c.resources.UpdateAuthenticationFlow(m)
}

func (flowKind) list(c *Context) []*model.AuthenticationFlow {
	return c.resources.AuthenticationFlows()
}

func (flowKind) declaredKeys(_ *Context, d *representation.AuthenticationFlow) []string {
	if id := representation.Deref(d.ID); id != "" {
		return keyed("id", id)
	}
	return keyed("alias", representation.Deref(d.Alias))
}

func (flowKind) liveKeys(m *model.AuthenticationFlow) []string {
	return keyed("id", m.ID, "alias", m.Alias)
}

func (flowKind) describeLive(_ *Context, m *model.AuthenticationFlow) string {
	return "authentication flow " + quote(m.Alias)
}

func (flowKind) remove(c *Context, m *model.AuthenticationFlow) bool {
	return c.resources.RemoveAuthenticationFlow(m.ID)
}

// flowsFormer forms all flows of a realm first and their executions
// afterwards, so an execution can reference any declared flow as sub flow.
type flowsFormer struct {
	flows *collectionFormer[model.AuthenticationFlow, representation.AuthenticationFlow]
}

func (f *flowsFormer) Form(c *Context, defs []*definition.Definition[representation.AuthenticationFlow], mode definition.SyncMode) error {
	if err := f.flows.Form(c, defs, mode); err != nil {
		return err
	}

	leave := c.withSyncMode(mode)
	defer leave()
	for _, def := range defs {
		if def == nil || def.Value == nil || def.Policy().IsIgnore() {
			continue
		}
		var live *model.AuthenticationFlow
		if !c.Phantom() {
			live, _ = f.flows.ops.lookup(c, def.Value)
		}
		leaveFlow := c.withFlow(live, representation.Deref(def.Value.Alias))
		err := formCollection(c, def.Value.AuthenticationExecutions)
		leaveFlow()
		if err != nil {
			return err
		}
	}
	return nil
}

// executionKind matches executions of the current flow by their tuple of
// authenticator, priority, requirement, authenticatorFlow and config id.
type executionKind struct {
	baseKind[model.AuthenticationExecution, representation.AuthenticationExecution]
}

func (executionKind) describe(c *Context, d *representation.AuthenticationExecution) string {
	name := representation.Deref(d.Authenticator)
	if name == "" {
		name = representation.Deref(d.FlowAlias)
	}
	return "execution " + quote(name) + " of flow " + quote(c.flowLabel)
}

func (k executionKind) lookup(c *Context, d *representation.AuthenticationExecution) (*model.AuthenticationExecution, error) {
	configID, err := updater.ExecutionConfigID(d, c, k.describe(c, d))
	if err != nil {
		return nil, err
	}
	want := executionKey(representation.Deref(d.Authenticator), representation.Deref(d.Priority),
		model.Requirement(representation.Deref(d.Requirement)), representation.Deref(d.AuthenticatorFlow), configID)
	for _, e := range c.resources.AuthenticationExecutions(c.flow.ID) {
		if k.key(e) == want {
			return e, nil
		}
	}
	return nil, nil
}

func (executionKind) create(c *Context, _ *representation.AuthenticationExecution) *model.AuthenticationExecution {
	return &model.AuthenticationExecution{ID: uuid.NewString(), ParentFlow: c.flow.ID}
}

func (k executionKind) update(c *Context, t *changes.Tracker[model.AuthenticationExecution], d *representation.AuthenticationExecution) error {
	return updater.UpdateAuthenticationExecution(t, d, c, k.describe(c, d))
}

func (executionKind) register(c *Context, m *model.AuthenticationExecution) {
	c.resources.AddAuthenticationExecution(m)
}

func (executionKind) persist(c *Context, m *model.AuthenticationExecution) {
	c.resources.UpdateAuthenticationExecution(m)
}

func (executionKind) list(c *Context) []*model.AuthenticationExecution {
	return c.resources.AuthenticationExecutions(c.flow.ID)
}

// declaredKeys resolves the config alias without failing: an alias that
// does not resolve was already reported by the item, or belongs to an
// IGNORE node that can only match an execution without config.
func (executionKind) declaredKeys(c *Context, d *representation.AuthenticationExecution) []string {
	configID := ""
	if alias := d.AuthenticatorConfig; alias != nil {
		configID, _ = c.AuthenticatorConfigID(*alias)
	}
	return []string{executionKey(representation.Deref(d.Authenticator), representation.Deref(d.Priority),
		model.Requirement(representation.Deref(d.Requirement)), representation.Deref(d.AuthenticatorFlow), configID)}
}

func (k executionKind) liveKeys(m *model.AuthenticationExecution) []string {
	return []string{k.key(m)}
}

func (executionKind) key(m *model.AuthenticationExecution) string {
	return executionKey(m.Authenticator, m.Priority, m.Requirement, m.AuthenticatorFlow, m.AuthenticatorConfig)
}

func (executionKind) describeLive(c *Context, m *model.AuthenticationExecution) string {
	name := m.Authenticator
	if name == "" {
		if sub := c.resources.AuthenticationFlowByID(m.FlowID); sub != nil {
			name = sub.Alias
		}
	}
	return "execution " + quote(name) + " of flow " + quote(c.flowLabel)
}

func (executionKind) remove(c *Context, m *model.AuthenticationExecution) bool {
	return c.resources.RemoveAuthenticationExecution(m.ID)
}

func executionKey(authenticator string, priority int, requirement model.Requirement, authenticatorFlow bool, configID string) string {
	return "tuple:" + authenticator + "|" + strconv.Itoa(priority) + "|" + string(requirement) + "|" +
		strconv.FormatBool(authenticatorFlow) + "|" + configID
}

// authenticatorConfigKind matches configs by id, or by alias when no id is
// declared.
type authenticatorConfigKind struct {
	baseKind[model.AuthenticatorConfig, representation.AuthenticatorConfig]
}

func (authenticatorConfigKind) describe(_ *Context, d *representation.AuthenticatorConfig) string {
	return "authenticator config " + quote(representation.Deref(d.Alias))
}

func (authenticatorConfigKind) lookup(c *Context, d *representation.AuthenticatorConfig) (*model.AuthenticatorConfig, error) {
	if id := representation.Deref(d.ID); id != "" {
		return c.resources.AuthenticatorConfigByID(id), nil
	}
	return c.resources.AuthenticatorConfigByAlias(representation.Deref(d.Alias)), nil
}

func (authenticatorConfigKind) create(_ *Context, d *representation.AuthenticatorConfig) *model.AuthenticatorConfig {
	return &model.AuthenticatorConfig{ID: newID(d.ID)}
}

func (authenticatorConfigKind) update(_ *Context, t *changes.Tracker[model.AuthenticatorConfig], d *representation.AuthenticatorConfig) error {
	updater.UpdateAuthenticatorConfig(t, d)
	return nil
}

func (authenticatorConfigKind) register(c *Context, m *model.AuthenticatorConfig) {
	c.resources.AddAuthenticatorConfig(m)
}

func (authenticatorConfigKind) persist(c *Context, m *model.AuthenticatorConfig) {
	c.resources.UpdateAuthenticatorConfig(m)
}

func (authenticatorConfigKind) list(c *Context) []*model.AuthenticatorConfig {
	return c.resources.AuthenticatorConfigs()
}

func (authenticatorConfigKind) declaredKeys(_ *Context, d *representation.AuthenticatorConfig) []string {
	if id := representation.Deref(d.ID); id != "" {
		return keyed("id", id)
	}
	return keyed("alias", representation.Deref(d.Alias))
}

func (authenticatorConfigKind) liveKeys(m *model.AuthenticatorConfig) []string {
	return keyed("id", m.ID, "alias", m.Alias)
}

func (authenticatorConfigKind) describeLive(_ *Context, m *model.AuthenticatorConfig) string {
	return "authenticator config " + quote(m.Alias)
}

func (authenticatorConfigKind) remove(c *Context, m *model.AuthenticatorConfig) bool {
	return c.resources.RemoveAuthenticatorConfig(m.ID)
}

type requiredActionKind struct {
	baseKind[model.RequiredAction, representation.RequiredAction]
}

func (requiredActionKind) describe(_ *Context, d *representation.RequiredAction) string {
	return "required action " + quote(representation.Deref(d.Alias))
}

func (requiredActionKind) lookup(c *Context, d *representation.RequiredAction) (*model.RequiredAction, error) {
	return c.resources.RequiredActionByAlias(representation.Deref(d.Alias)), nil
}

func (requiredActionKind) create(_ *Context, d *representation.RequiredAction) *model.RequiredAction {
	return &model.RequiredAction{ID: uuid.NewString(), Alias: representation.Deref(d.Alias)}
}

func (requiredActionKind) update(_ *Context, t *changes.Tracker[model.RequiredAction], d *representation.RequiredAction) error {
	updater.UpdateRequiredAction(t, d)
	return nil
}

func (requiredActionKind) register(c *Context, m *model.RequiredAction) {
	c.resources.AddRequiredAction(m)
}

func (requiredActionKind) persist(c *Context, m *model.RequiredAction) {
	c.resources.UpdateRequiredAction(m)
}

func (requiredActionKind) list(c *Context) []*model.RequiredAction {
	return c.resources.RequiredActions()
}

func (requiredActionKind) declaredKeys(_ *Context, d *representation.RequiredAction) []string {
	return keyed("alias", representation.Deref(d.Alias))
}

func (requiredActionKind) liveKeys(m *model.RequiredAction) []string {
	return keyed("alias", m.Alias)
}

func (requiredActionKind) describeLive(_ *Context, m *model.RequiredAction) string {
	return "required action " + quote(m.Alias)
}

func (requiredActionKind) remove(c *Context, m *model.RequiredAction) bool {
	return c.resources.RemoveRequiredAction(m.Alias)
}
