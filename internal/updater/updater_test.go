package updater

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realmform/internal/changes"
	"realmform/internal/model"
	"realmform/internal/representation"
)

type fakeResolver struct {
	flows   map[string]string
	configs map[string]string
	scopes  map[string]bool
	clients map[string]bool
	idps    map[string]bool
	roles   map[model.RoleRef]string
}

func (f fakeResolver) FlowID(alias string) (string, bool) {
	id, ok := f.flows[alias]
	return id, ok
}

func (f fakeResolver) AuthenticatorConfigID(alias string) (string, bool) {
	id, ok := f.configs[alias]
	return id, ok
}

func (f fakeResolver) HasClientScope(name string) bool       { return f.scopes[name] }
func (f fakeResolver) HasClient(clientID string) bool        { return f.clients[clientID] }
func (f fakeResolver) HasIdentityProvider(alias string) bool { return f.idps[alias] }

func (f fakeResolver) HasRole(ref model.RoleRef) bool {
	_, ok := f.roles[ref]
	return ok
}

func (f fakeResolver) RealmRoleID(name string) (string, bool) {
	id, ok := f.roles[model.RoleRef{Name: name}]
	return id, ok
}

func newResolver() fakeResolver {
	return fakeResolver{
		flows:   map[string]string{"browser": "flow-1", "first broker login": "flow-2"},
		configs: map[string]string{"otp-config": "cfg-1"},
		scopes:  map[string]bool{"email": true, "profile": true},
		clients: map[string]bool{"app": true},
		idps:    map[string]bool{"google": true},
		roles: map[model.RoleRef]string{
			{Name: "user"}:                  "role-1",
			{Name: "admin"}:                 "role-2",
			{ClientID: "app", Name: "view"}: "role-3",
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpdateClient_CopiesPresentFieldsOnly(t *testing.T) {
	client := &model.Client{ID: "c1", ClientID: "app", Name: "App", RootURL: "https://keep"}
	tr := changes.Track(client, changes.Commit)

	err := UpdateClient(tr, &representation.Client{
		ClientID:            ptr("app"),
		Name:                ptr("Application"),
		PublicClient:        ptr(true),
		RedirectURIs:        []string{"https://app/*"},
		DefaultClientScopes: []string{"email"},
	}, newResolver(), "client app")
	require.NoError(t, err)

	assert.Equal(t, "Application", client.Name)
	assert.Equal(t, "https://keep", client.RootURL)
	assert.True(t, client.PublicClient)
	assert.Equal(t, []string{"email"}, client.DefaultClientScopes)
	assert.Equal(t, "Name: App >>> Application\n RedirectUris: null >>> [https://app/*]\n PublicClient: false >>> true\n DefaultClientScopes: null >>> [email]", tr.String())
}

func TestUpdateClient_UnknownClientScope(t *testing.T) {
	client := &model.Client{ID: "c1", ClientID: "app"}
	tr := changes.Track(client, changes.Commit)

	err := UpdateClient(tr, &representation.Client{OptionalClientScopes: []string{"missing"}}, newResolver(), "client app")

	var unresolvedErr *UnresolvedReferenceError
	require.True(t, errors.As(err, &unresolvedErr))
	assert.Equal(t, "client scope", unresolvedErr.Kind)
	assert.Equal(t, "missing", unresolvedErr.Reference)
	assert.Equal(t, `client app references unknown client scope "missing"`, err.Error())
	assert.False(t, tr.Changed())
}

func TestLinkRealm(t *testing.T) {
	realm := &model.Realm{ID: "r1", Name: "test", BrowserFlow: "flow-1"}
	tr := changes.Track(realm, changes.Commit)

	err := LinkRealm(tr, &representation.Realm{
		BrowserFlow:                ptr("browser"),
		FirstBrokerLoginFlow:       ptr("first broker login"),
		DefaultRole:                &representation.Role{Name: ptr("user")},
		DefaultDefaultClientScopes: []string{"profile"},
	}, newResolver(), "realm test")
	require.NoError(t, err)

	assert.Equal(t, "role-1", realm.DefaultRoleID)
	assert.Equal(t, "flow-2", realm.FirstBrokerLoginFlow)
	assert.Equal(t, []string{"profile"}, realm.DefaultClientScopes)
	// The browser flow binding was already correct.
	for _, c := range tr.Changes() {
		assert.NotEqual(t, "BrowserFlow", c.Attribute)
	}
}

func TestLinkRealm_UnknownFlow(t *testing.T) {
	tr := changes.Track(&model.Realm{}, changes.Commit)
	err := LinkRealm(tr, &representation.Realm{DirectGrantFlow: ptr("nope")}, newResolver(), "realm test")

	var unresolvedErr *UnresolvedReferenceError
	assert.ErrorAs(t, err, &unresolvedErr)
}

func TestUpdateAuthenticationExecution(t *testing.T) {
	execution := &model.AuthenticationExecution{ID: "e1", ParentFlow: "flow-1"}
	tr := changes.TrackNew(execution, changes.Commit)

	err := UpdateAuthenticationExecution(tr, &representation.AuthenticationExecution{
		Authenticator:       ptr("auth-otp-form"),
		AuthenticatorConfig: ptr("otp-config"),
		Requirement:         ptr("REQUIRED"),
		Priority:            ptr(20),
	}, newResolver(), "execution auth-otp-form")
	require.NoError(t, err)

	assert.Equal(t, "cfg-1", execution.AuthenticatorConfig)
	assert.Equal(t, model.RequirementRequired, execution.Requirement)
	assert.Equal(t, 20, execution.Priority)
}

func TestUpdateAuthenticationExecution_UnknownConfig(t *testing.T) {
	tr := changes.TrackNew(&model.AuthenticationExecution{}, changes.Commit)
	err := UpdateAuthenticationExecution(tr, &representation.AuthenticationExecution{
		AuthenticatorConfig: ptr("missing"),
	}, newResolver(), "execution x")

	var unresolvedErr *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolvedErr)
	assert.Equal(t, "authenticator config", unresolvedErr.Kind)
}

func TestUpdateIdentityProvider_BrokerFlows(t *testing.T) {
	idp := &model.IdentityProvider{Alias: "google", PostBrokerLoginFlowID: "flow-1"}
	tr := changes.Track(idp, changes.Commit)

	err := UpdateIdentityProvider(tr, &representation.IdentityProvider{
		FirstBrokerLoginFlowAlias: ptr("first broker login"),
		PostBrokerLoginFlowAlias:  ptr(""),
	}, newResolver(), "identity provider google")
	require.NoError(t, err)

	assert.Equal(t, "flow-2", idp.FirstBrokerLoginFlowID)
	assert.Equal(t, "", idp.PostBrokerLoginFlowID)

	err = UpdateIdentityProvider(tr, &representation.IdentityProvider{
		FirstBrokerLoginFlowAlias: ptr("unknown"),
	}, newResolver(), "identity provider google")
	assert.Error(t, err)
}

func TestUpdateGroup_ValidatesRoles(t *testing.T) {
	group := &model.Group{ID: "g1"}
	tr := changes.Track(group, changes.Commit)

	err := UpdateGroup(tr, &representation.Group{
		Name:        ptr("admins"),
		RealmRoles:  []string{"admin"},
		ClientRoles: map[string][]string{"app": {"view"}},
	}, newResolver(), "group g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, group.RealmRoles)

	err = UpdateGroup(tr, &representation.Group{ClientRoles: map[string][]string{"app": {"edit"}}}, newResolver(), "group g1")
	var unresolvedErr *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolvedErr)
	assert.Equal(t, "app/edit", unresolvedErr.Reference)
}

func TestUpdateRoleRefs(t *testing.T) {
	composites := func(r *model.Role) *model.RoleRefs { return &r.Composites }
	declared := CompositeRefs(&representation.RoleComposites{
		Realm:  []string{"user"},
		Client: map[string][]string{"app": {"view"}},
	})

	t.Run("replace", func(t *testing.T) {
		role := &model.Role{Composites: model.RoleRefs{{Name: "admin"}}}
		tr := changes.Track(role, changes.Commit)
		require.NoError(t, UpdateRoleRefs(tr, "Composites", composites, declared, true, newResolver(), "role x"))
		assert.Equal(t, model.RoleRefs{{Name: "user"}, {ClientID: "app", Name: "view"}}, role.Composites)
		assert.Equal(t, "Composites: [admin] >>> [user, app/view]", tr.String())
	})

	t.Run("union", func(t *testing.T) {
		role := &model.Role{Composites: model.RoleRefs{{Name: "admin"}, {Name: "user"}}}
		tr := changes.Track(role, changes.Commit)
		require.NoError(t, UpdateRoleRefs(tr, "Composites", composites, declared, false, newResolver(), "role x"))
		assert.Equal(t, model.RoleRefs{{Name: "admin"}, {Name: "user"}, {ClientID: "app", Name: "view"}}, role.Composites)
	})

	t.Run("already satisfied", func(t *testing.T) {
		role := &model.Role{Composites: declared}
		tr := changes.Track(role, changes.Commit)
		require.NoError(t, UpdateRoleRefs(tr, "Composites", composites, declared, true, newResolver(), "role x"))
		assert.False(t, tr.Changed())
	})

	t.Run("unknown role", func(t *testing.T) {
		tr := changes.Track(&model.Role{}, changes.Commit)
		err := UpdateRoleRefs(tr, "Composites", composites, model.RoleRefs{{Name: "ghost"}}, true, newResolver(), "role x")
		assert.Error(t, err)
	})
}
