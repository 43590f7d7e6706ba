package former

import (
	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
)

// Context carries the position of one reconciliation run in the tree. Every
// slot is set on the way down and restored on the way back up, so values
// never leak into sibling subtrees. A Context belongs to exactly one run.
//
// A slot holding nil while its label is set means the resource does not
// exist yet and the run is a preview: the subtree is "phantom", lookups and
// deletions below it are skipped, and every change is reported against a
// null baseline.
type Context struct {
	session    model.Session
	mode       changes.Mode
	overlay    *definition.Overlay
	formers    *Formers
	report     *Report
	adminRealm string

	syncMode definition.SyncMode
	phantom  int
	// created holds the resources created by this run.
	created map[any]bool

	realm           *model.Realm
	resources       model.RealmResources
	realmDefinition *definition.Definition[representation.Realm]

	client      *model.Client
	clientLabel string

	clientScope      *model.ClientScope
	clientScopeLabel string

	flow      *model.AuthenticationFlow
	flowLabel string

	// parentID is the id of the current component container: the realm for
	// top level components, otherwise the parent component.
	parentID     string
	providerType string
}

// Committing reports whether writes reach the live state.
func (c *Context) Committing() bool {
	return c.mode == changes.Commit
}

// Mode returns the run mode.
func (c *Context) Mode() changes.Mode {
	return c.mode
}

// Phantom reports whether an ancestor of the current node does not exist.
func (c *Context) Phantom() bool {
	return c.phantom > 0
}

// SyncMode returns the sync mode of the collection being formed.
func (c *Context) SyncMode() definition.SyncMode {
	if c.syncMode == "" {
		return definition.SyncModeFull
	}
	return c.syncMode
}

// Realm returns the current realm, nil outside a realm or in a phantom realm.
func (c *Context) Realm() *model.Realm {
	return c.realm
}

// RealmDefinition returns the declaration of the current realm.
func (c *Context) RealmDefinition() *definition.Definition[representation.Realm] {
	return c.realmDefinition
}

// Resources returns the accessor for the current realm's resources.
func (c *Context) Resources() model.RealmResources {
	return c.resources
}

// Client returns the current client.
func (c *Context) Client() *model.Client {
	return c.client
}

// ClientScope returns the current client scope.
func (c *Context) ClientScope() *model.ClientScope {
	return c.clientScope
}

// Flow returns the current authentication flow.
func (c *Context) Flow() *model.AuthenticationFlow {
	return c.flow
}

func (c *Context) markCreated(m any) {
	if c.created == nil {
		c.created = make(map[any]bool)
	}
	c.created[m] = true
}

func (c *Context) wasCreated(m any) bool {
	return c.created[m]
}

func (c *Context) enterPhantom(absent bool) func() {
	if !absent {
		return func() {}
	}
	c.phantom++
	return func() { c.phantom-- }
}

func (c *Context) withSyncMode(mode definition.SyncMode) func() {
	prev := c.syncMode
	c.syncMode = mode
	return func() { c.syncMode = prev }
}

func (c *Context) withRealm(realm *model.Realm, def *definition.Definition[representation.Realm]) func() {
	prevRealm, prevResources, prevDef, prevParent := c.realm, c.resources, c.realmDefinition, c.parentID
	c.realm = realm
	c.realmDefinition = def
	c.resources = nil
	c.parentID = representation.Deref(def.Value.ID)
	if realm != nil {
		c.resources = c.session.Realms().Resources(realm.ID)
		c.parentID = realm.ID
	}
	leave := c.enterPhantom(realm == nil)
	return func() {
		leave()
		c.realm, c.resources, c.realmDefinition, c.parentID = prevRealm, prevResources, prevDef, prevParent
	}
}

func (c *Context) withClient(client *model.Client, label string) func() {
	prev, prevLabel := c.client, c.clientLabel
	c.client, c.clientLabel = client, label
	leave := c.enterPhantom(client == nil)
	return func() {
		leave()
		c.client, c.clientLabel = prev, prevLabel
	}
}

func (c *Context) withClientScope(scope *model.ClientScope, label string) func() {
	prev, prevLabel := c.clientScope, c.clientScopeLabel
	c.clientScope, c.clientScopeLabel = scope, label
	leave := c.enterPhantom(scope == nil)
	return func() {
		leave()
		c.clientScope, c.clientScopeLabel = prev, prevLabel
	}
}

func (c *Context) withFlow(flow *model.AuthenticationFlow, label string) func() {
	prev, prevLabel := c.flow, c.flowLabel
	c.flow, c.flowLabel = flow, label
	leave := c.enterPhantom(flow == nil)
	return func() {
		leave()
		c.flow, c.flowLabel = prev, prevLabel
	}
}

func (c *Context) withComponent(component *model.Component, declaredID string) func() {
	prev := c.parentID
	c.parentID = declaredID
	if component != nil {
		c.parentID = component.ID
	}
	leave := c.enterPhantom(component == nil)
	return func() {
		leave()
		c.parentID = prev
	}
}

func (c *Context) withProviderType(providerType string) func() {
	prev := c.providerType
	c.providerType = providerType
	return func() { c.providerType = prev }
}

// roleContainer returns the realm or the current client as role container.
func (c *Context) roleContainer() model.RoleContainer {
	if c.clientLabel != "" {
		return c.resources.ClientRoles(c.client.ID)
	}
	return c.resources.RealmRoles()
}

// mapperContainer returns the current client or client scope as protocol
// mapper container.
func (c *Context) mapperContainer() model.ProtocolMapperContainer {
	if c.clientLabel != "" {
		return c.resources.ClientProtocolMappers(c.client.ID)
	}
	return c.resources.ClientScopeProtocolMappers(c.clientScope.ID)
}

// containerLabel describes the current role or mapper container.
func (c *Context) containerLabel() string {
	switch {
	case c.clientLabel != "":
		return " of client " + quote(c.clientLabel)
	case c.clientScopeLabel != "":
		return " of client scope " + quote(c.clientScopeLabel)
	default:
		return ""
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
