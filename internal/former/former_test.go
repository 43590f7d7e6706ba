package former

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/model/memory"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

const fullRealm = `
realm: test
enabled: true
sslRequired: external
browserFlow: custom browser
defaultRole:
  name: user
defaultDefaultClientScopes: [profile]
requiredActions:
  - alias: CONFIGURE_TOTP
    name: Configure OTP
    enabled: true
components:
  org.keycloak.keys.KeyProvider:
    - id: key-1
      name: rsa-generated
      providerId: rsa-generated
      config:
        priority: ["100"]
authenticatorConfig:
  - id: cfg-1
    alias: otp-config
    config:
      otpType: totp
authenticationFlows:
  - id: flow-1
    alias: custom browser
    providerId: basic-flow
    topLevel: true
    authenticationExecutions:
      - authenticator: auth-cookie
        requirement: ALTERNATIVE
        priority: 10
      - authenticator: auth-otp-form
        authenticatorConfig: otp-config
        requirement: REQUIRED
        priority: 20
roles:
  realm:
    - id: role-user
      name: user
    - id: role-admin
      name: admin
      composites:
        realm: [user]
        client:
          app: [view]
  client:
    app:
      - id: role-view
        name: view
clientScopes:
  - id: scope-profile
    name: profile
    protocol: openid-connect
    protocolMappers:
      - name: full name
        protocolMapper: oidc-full-name-mapper
clients:
  - id: client-app
    clientId: app
    enabled: true
    redirectUris: ["https://app/*"]
    defaultClientScopes: [profile]
    protocolMappers:
      - name: audience
        protocolMapper: oidc-audience-mapper
identityProviders:
  - alias: google
    providerId: google
    enabled: true
    firstBrokerLoginFlowAlias: custom browser
identityProviderMappers:
  - name: email
    identityProviderAlias: google
    identityProviderMapper: hardcoded-attribute-idp-mapper
groups:
  - name: admins
    realmRoles: [admin]
    clientRoles:
      app: [view]
scopeMappings:
  - client: app
    roles: [user]
clientScopeMappings:
  app:
    - clientScope: profile
      roles: [view]
`

func decode(t *testing.T, docs ...string) *definition.Document {
	t.Helper()
	data := make([][]byte, len(docs))
	for i, d := range docs {
		data[i] = []byte(d)
	}
	doc, err := definition.Decode("master", data...)
	require.NoError(t, err)
	return doc
}

func run(t *testing.T, store *memory.Store, mode changes.Mode, docs ...string) *Report {
	t.Helper()
	report, err := NewFormers().Run(store, decode(t, docs...), Options{Mode: mode, AdminRealm: "master"})
	require.NoError(t, err)
	return report
}

// lines renders a report so runs can be compared.
func lines(r *Report) []string {
	var out []string
	for _, e := range r.Entries {
		out = append(out, fmt.Sprintf("%s %s %s %s", e.Realm, e.Kind, e.Resource, e.Outcome))
		for _, c := range e.Changes {
			out = append(out, "  "+c.String())
		}
	}
	return out
}

func TestRun_FormsCompleteRealm(t *testing.T) {
	store := memory.NewStoreWithRealms("master")
	report := run(t, store, changes.Commit, fullRealm)

	snap := store.Snapshot("test")
	require.NotNil(t, snap)
	realm := snap.Realm
	assert.True(t, realm.Enabled)
	assert.Equal(t, model.SSLRequiredExternal, realm.SSLRequired)
	assert.Equal(t, "flow-1", realm.BrowserFlow)
	assert.Equal(t, "role-user", realm.DefaultRoleID)
	assert.Equal(t, []string{"profile"}, realm.DefaultClientScopes)

	res := store.Realms().Resources(realm.ID)
	require.Len(t, res.RequiredActions(), 1)
	assert.Equal(t, "Configure OTP", res.RequiredActions()[0].Name)

	key := res.ComponentByID("key-1")
	require.NotNil(t, key)
	assert.Equal(t, realm.ID, key.ParentID)
	assert.Equal(t, "org.keycloak.keys.KeyProvider", key.ProviderType)

	executions := res.AuthenticationExecutions("flow-1")
	require.Len(t, executions, 2)
	assert.Equal(t, "cfg-1", executions[1].AuthenticatorConfig)
	assert.Equal(t, model.RequirementRequired, executions[1].Requirement)

	admin := res.RealmRoles().Role("admin")
	require.NotNil(t, admin)
	assert.Equal(t, model.RoleRefs{{Name: "user"}, {ClientID: "app", Name: "view"}}, admin.Composites)

	client := res.ClientByClientID("app")
	require.NotNil(t, client)
	assert.Equal(t, []string{"profile"}, client.DefaultClientScopes)
	assert.Equal(t, model.RoleRefs{{Name: "user"}}, client.ScopeMappings)
	assert.NotNil(t, res.ClientRoles(client.ID).Role("view"))
	assert.NotNil(t, res.ClientProtocolMappers(client.ID).ProtocolMapper("audience"))

	scope := res.ClientScopeByName("profile")
	require.NotNil(t, scope)
	assert.Equal(t, model.RoleRefs{{ClientID: "app", Name: "view"}}, scope.ScopeMappings)
	assert.NotNil(t, res.ClientScopeProtocolMappers(scope.ID).ProtocolMapper("full name"))

	idp := res.IdentityProviderByAlias("google")
	require.NotNil(t, idp)
	assert.Equal(t, "flow-1", idp.FirstBrokerLoginFlowID)
	require.Len(t, res.IdentityProviderMappers(), 1)

	require.Len(t, res.Groups(), 1)
	assert.Equal(t, []string{"admin"}, res.Groups()[0].RealmRoles)

	assert.True(t, report.Changed())
	assert.Zero(t, report.Count(OutcomeDeleted))
	entry, ok := report.Find("test", definition.KindRealm, `realm "test"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeCreated, entry.Outcome)
	assert.Equal(t, "master", store.Realms().List()[0].Name)
}

func TestRun_Idempotent(t *testing.T) {
	store := memory.NewStoreWithRealms("master")
	run(t, store, changes.Commit, fullRealm)
	before, err := store.Export()
	require.NoError(t, err)

	report := run(t, store, changes.Commit, fullRealm)

	after, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, report.Changed(), "second run changed: %v", lines(report))
	assert.Zero(t, report.Count(OutcomeRefused))
}

func TestRun_PreviewMatchesCommitWithoutWriting(t *testing.T) {
	previewStore := memory.NewStoreWithRealms("master")
	before, err := previewStore.Export()
	require.NoError(t, err)

	preview := run(t, previewStore, changes.Preview, fullRealm)

	after, err := previewStore.Export()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	commit := run(t, memory.NewStoreWithRealms("master"), changes.Commit, fullRealm)
	assert.Equal(t, lines(commit), lines(preview))
	assert.Equal(t, changes.Preview, preview.Mode)
}

func TestRun_PreviewOfExistingRealmReportsDeletions(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.AddClient("c1", "stale")

	report := run(t, store, changes.Preview, `{"realm": "test", "clients": []}`)

	assert.NotNil(t, res.ClientByClientID("stale"))
	entry, ok := report.Find("test", definition.KindClient, `client "stale"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeDeleted, entry.Outcome)
}

func TestRun_FullModeDeletesUndeclared(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test", "other")
	res := store.Realms().Resources("test")
	res.AddClient("c1", "keep")
	res.AddClient("c2", "stale")
	res.RealmRoles().AddRole("r1", "old")

	report := run(t, store, changes.Commit, `
realm: test
clients:
  - clientId: keep
`)

	assert.NotNil(t, res.ClientByClientID("keep"))
	assert.Nil(t, res.ClientByClientID("stale"))
	assert.Nil(t, res.RealmRoles().Role("old"))
	// Realms are swept too, except the admin realm.
	assert.Nil(t, store.Realms().Get("other"))
	assert.NotNil(t, store.Realms().Get("master"))
	assert.Equal(t, 3, report.Count(OutcomeDeleted))
}

func TestRun_IgnoreModeIsAdditive(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test", "other")
	res := store.Realms().Resources("test")
	res.AddClient("c2", "stale")
	res.RealmRoles().AddRole("r1", "old")

	report, err := NewFormers().Run(store, decode(t, `
realm: test
clients:
  - clientId: fresh
`), Options{Mode: changes.Commit, SyncMode: definition.SyncModeIgnore, AdminRealm: "master"})
	require.NoError(t, err)

	assert.NotNil(t, res.ClientByClientID("fresh"))
	assert.NotNil(t, res.ClientByClientID("stale"))
	assert.NotNil(t, res.RealmRoles().Role("old"))
	assert.NotNil(t, store.Realms().Get("other"))
	assert.Zero(t, report.Count(OutcomeDeleted))
}

func TestRun_IgnoredNodeIsSkippedAndProtected(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	legacy := res.AddClient("c1", "legacy")
	legacy.Description = "live"

	report := run(t, store, changes.Commit, `
realm: test
clients:
  - clientId: legacy
    description: declared
    syncMode: IGNORE
`)

	require.NotNil(t, res.ClientByClientID("legacy"))
	assert.Equal(t, "live", legacy.Description)
	entry, ok := report.Find("test", definition.KindClient, `client "legacy"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeSkipped, entry.Outcome)
}

func TestRun_AbsentFieldsArePreserved(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	client := res.AddClient("c1", "app")
	client.RootURL = "https://live"
	client.Enabled = true

	report := run(t, store, changes.Commit, `{"realm": "test", "clients": [{"clientId": "app", "name": "App"}]}`)

	assert.Equal(t, "https://live", client.RootURL)
	assert.True(t, client.Enabled)
	assert.Equal(t, "App", client.Name)
	entry, ok := report.Find("test", definition.KindClient, `client "app"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeUpdated, entry.Outcome)
	assert.Equal(t, []string{"Name:  >>> App"}, changeLines(entry))
}

func changeLines(e Entry) []string {
	out := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		out[i] = c.String()
	}
	return out
}

func TestRun_NewClientScopeUsedByClient(t *testing.T) {
	doc := `
realm: test
clientScopes:
  - id: 03d2af9e-4b2c-4a65-9a4e-1b6f3c2d8e01
    name: email
    description: OpenID Connect built-in scope email
clients:
  - clientId: app
    defaultClientScopes: [email]
`
	wantChanges := []string{
		"Name: null >>> email",
		"Description: null >>> OpenID Connect built-in scope email",
	}

	commitStore := memory.NewStoreWithRealms("master", "test")
	commit := run(t, commitStore, changes.Commit, doc)
	res := commitStore.Realms().Resources("test")
	scope := res.ClientScopeByName("email")
	require.NotNil(t, scope)
	assert.Equal(t, "03d2af9e-4b2c-4a65-9a4e-1b6f3c2d8e01", scope.ID)
	assert.Equal(t, "OpenID Connect built-in scope email", scope.Description)
	assert.Equal(t, []string{"email"}, res.ClientByClientID("app").DefaultClientScopes)

	entry, ok := commit.Find("test", definition.KindClientScope, `client scope "email"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeCreated, entry.Outcome)
	assert.Subset(t, changeLines(entry), wantChanges)

	previewStore := memory.NewStoreWithRealms("master", "test")
	preview := run(t, previewStore, changes.Preview, doc)
	assert.Nil(t, previewStore.Realms().Resources("test").ClientScopeByName("email"))
	entry, ok = preview.Find("test", definition.KindClientScope, `client scope "email"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeCreated, entry.Outcome)
	assert.Subset(t, changeLines(entry), wantChanges)
	assert.Equal(t, lines(commit), lines(preview))
}

func TestRun_RemovedClientScopeReleasedByClientIsIdempotent(t *testing.T) {
	v1 := `
realm: test
clientScopes:
  - name: email
  - name: profile
clients:
  - clientId: app
    defaultClientScopes: [email, profile]
`
	v2 := `
realm: test
clientScopes:
  - name: profile
clients:
  - clientId: app
    defaultClientScopes: [profile]
`
	store := memory.NewStoreWithRealms("master", "test")
	run(t, store, changes.Commit, v1)

	preview := run(t, store, changes.Preview, v2)
	require.NotNil(t, store.Realms().Resources("test").ClientScopeByName("email"))

	first := run(t, store, changes.Commit, v2)
	res := store.Realms().Resources("test")
	assert.Nil(t, res.ClientScopeByName("email"))
	assert.Equal(t, []string{"profile"}, res.ClientByClientID("app").DefaultClientScopes)
	assert.Zero(t, first.Count(OutcomeRefused))
	entry, ok := first.Find("test", definition.KindClientScope, `client scope "email"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeDeleted, entry.Outcome)
	assert.Equal(t, lines(preview), lines(first))

	second := run(t, store, changes.Commit, v2)
	assert.False(t, second.Changed())
}

func TestRun_DuplicateNaturalKeyUpdatesFirst(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	report := run(t, store, changes.Commit, `
realm: test
clients:
  - clientId: app
    name: first
  - clientId: app
    name: second
`)

	res := store.Realms().Resources("test")
	require.Len(t, res.Clients(), 1)
	assert.Equal(t, "second", res.Clients()[0].Name)
	assert.Equal(t, 1, report.Count(OutcomeCreated))
	assert.Equal(t, 1, report.Count(OutcomeUpdated))
}

func TestRun_UnresolvedReferenceIsFatal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind string
	}{
		{
			name: "client scope",
			doc:  `{"realm": "test", "clients": [{"clientId": "app", "optionalClientScopes": ["missing"]}]}`,
			kind: "client scope",
		},
		{
			name: "authenticator config",
			doc: `{"realm": "test", "authenticationFlows": [{"alias": "f", "authenticationExecutions": [
				{"authenticator": "otp", "authenticatorConfig": "missing"}]}]}`,
			kind: "authenticator config",
		},
		{
			name: "flow binding",
			doc:  `{"realm": "test", "browserFlow": "missing"}`,
			kind: "authentication flow",
		},
		{
			name: "scope mapping target",
			doc:  `{"realm": "test", "scopeMappings": [{"client": "missing", "roles": []}]}`,
			kind: "client",
		},
		{
			name: "composite",
			doc:  `{"realm": "test", "roles": {"realm": [{"name": "a", "composites": {"realm": ["missing"]}}]}}`,
			kind: "realm role",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []changes.Mode{changes.Commit, changes.Preview} {
				store := memory.NewStoreWithRealms("master", "test")
				_, err := NewFormers().Run(store, decode(t, tt.doc), Options{Mode: mode, AdminRealm: "master"})

				var unresolvedErr *updater.UnresolvedReferenceError
				require.ErrorAs(t, err, &unresolvedErr, "mode %s", mode)
				assert.Equal(t, tt.kind, unresolvedErr.Kind)
				assert.Equal(t, "missing", unresolvedErr.Reference)
			}
		})
	}
}

func TestRun_RefusedDeletionContinues(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.AddClientScope("s1", "legacy")
	client := res.AddClient("c1", "app")
	client.DefaultClientScopes = []string{"legacy"}

	report := run(t, store, changes.Commit, `
realm: test
clientScopes: []
clients:
  - clientId: app
    name: App
`)

	assert.NotNil(t, res.ClientScopeByName("legacy"))
	assert.Equal(t, "App", client.Name)
	entry, ok := report.Find("test", definition.KindClientScope, `client scope "legacy"`)
	require.True(t, ok)
	assert.Equal(t, OutcomeRefused, entry.Outcome)
}

func TestRun_IgnoredExecutionSkipsConfigResolution(t *testing.T) {
	doc := `
realm: test
authenticationFlows:
  - id: f1
    alias: f
    authenticationExecutions:
      - authenticator: otp
        authenticatorConfig: legacy-config
        syncMode: IGNORE
`
	for _, mode := range []changes.Mode{changes.Commit, changes.Preview} {
		t.Run(mode.String(), func(t *testing.T) {
			store := memory.NewStoreWithRealms("master", "test")
			res := store.Realms().Resources("test")
			res.AddAuthenticationFlow(&model.AuthenticationFlow{ID: "f1", Alias: "f"})

			report, err := NewFormers().Run(store, decode(t, doc), Options{Mode: mode, AdminRealm: "master"})
			require.NoError(t, err)
			entry, ok := report.Find("test", definition.KindAuthenticationExecution, `execution "otp" of flow "f"`)
			require.True(t, ok)
			assert.Equal(t, OutcomeSkipped, entry.Outcome)
			assert.Empty(t, res.AuthenticationExecutions("f1"))
		})
	}
}

func TestRun_NewRealmListensToJBossLogging(t *testing.T) {
	t.Run("seeded", func(t *testing.T) {
		store := memory.NewStoreWithRealms("master")
		run(t, store, changes.Commit, `{"realm": "test"}`)
		realm := store.Realms().Get("test")
		require.NotNil(t, realm)
		assert.Equal(t, []string{"jboss-logging"}, realm.EventsListeners)
		assert.False(t, run(t, store, changes.Commit, `{"realm": "test"}`).Changed())
	})

	t.Run("declared", func(t *testing.T) {
		store := memory.NewStoreWithRealms("master")
		doc := `{"realm": "test", "eventsListeners": ["email"]}`
		run(t, store, changes.Commit, doc)
		assert.Equal(t, []string{"email"}, store.Realms().Get("test").EventsListeners)
		assert.False(t, run(t, store, changes.Commit, doc).Changed())
	})
}

func TestRun_ExecutionTupleChangeReplacesExecution(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.AddAuthenticationFlow(&model.AuthenticationFlow{ID: "f1", Alias: "browser"})
	res.AddAuthenticationExecution(&model.AuthenticationExecution{
		ID: "e1", ParentFlow: "f1", Authenticator: "auth-cookie", Requirement: model.RequirementAlternative, Priority: 10,
	})

	run(t, store, changes.Commit, `
realm: test
authenticationFlows:
  - id: f1
    alias: browser
    authenticationExecutions:
      - authenticator: auth-cookie
        requirement: ALTERNATIVE
        priority: 10
      - authenticator: auth-spnego
        requirement: DISABLED
        priority: 20
`)
	executions := res.AuthenticationExecutions("f1")
	require.Len(t, executions, 2)
	assert.Equal(t, "e1", executions[0].ID)

	run(t, store, changes.Commit, `
realm: test
authenticationFlows:
  - id: f1
    alias: browser
    authenticationExecutions:
      - authenticator: auth-cookie
        requirement: REQUIRED
        priority: 10
`)
	executions = res.AuthenticationExecutions("f1")
	require.Len(t, executions, 1)
	assert.NotEqual(t, "e1", executions[0].ID)
	assert.Equal(t, model.RequirementRequired, executions[0].Requirement)
}

func TestRun_Components(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.AddComponent(&model.Component{ID: "old", Name: "legacy", ProviderType: "org.keycloak.storage.UserStorageProvider", ParentID: "test"})
	res.AddComponent(&model.Component{ID: "old-child", Name: "mapper", ProviderType: "org.keycloak.storage.ldap.mappers.LDAPStorageMapper", ParentID: "old"})

	run(t, store, changes.Commit, `
realm: test
components:
  org.keycloak.keys.KeyProvider:
    - name: hmac
      providerId: hmac-generated
      subComponents:
        org.keycloak.keys.SubProvider:
          - name: nested
`)

	assert.Nil(t, res.ComponentByID("old"))
	assert.Nil(t, res.ComponentByID("old-child"))

	components := res.Components()
	require.Len(t, components, 2)
	hmac, nested := components[0], components[1]
	assert.Equal(t, "hmac", hmac.Name)
	assert.Equal(t, "test", hmac.ParentID)
	assert.Equal(t, "nested", nested.Name)
	assert.Equal(t, hmac.ID, nested.ParentID)
	assert.Equal(t, "org.keycloak.keys.SubProvider", nested.ProviderType)
}

func TestRun_CompositesUnionUnderIgnore(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.RealmRoles().AddRole("r1", "user")
	res.RealmRoles().AddRole("r2", "auditor")
	admin := res.RealmRoles().AddRole("r3", "admin")
	admin.Composites = model.RoleRefs{{Name: "auditor"}}

	doc := decode(t, `
realm: test
roles:
  realm:
    - name: user
    - name: auditor
    - name: admin
      composites:
        realm: [user]
`)
	_, err := NewFormers().Run(store, doc, Options{Mode: changes.Commit, SyncMode: definition.SyncModeIgnore, AdminRealm: "master"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleRefs{{Name: "auditor"}, {Name: "user"}}, admin.Composites)

	_, err = NewFormers().Run(store, doc, Options{Mode: changes.Commit, AdminRealm: "master"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleRefs{{Name: "user"}}, admin.Composites)
}

func TestRun_DefaultRoleIsNeverDeleted(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	role := res.RealmRoles().AddRole("r1", "default-roles-test")
	store.Realms().Get("test").DefaultRoleID = role.ID

	report := run(t, store, changes.Commit, `{"realm": "test", "roles": {"realm": []}}`)

	assert.NotNil(t, res.RealmRoles().Role("default-roles-test"))
	assert.Zero(t, report.Count(OutcomeRefused))
	assert.Zero(t, report.Count(OutcomeDeleted))
}

func TestRun_RemovedIdentityProviderTakesMappers(t *testing.T) {
	store := memory.NewStoreWithRealms("master", "test")
	res := store.Realms().Resources("test")
	res.AddIdentityProvider(&model.IdentityProvider{Alias: "github", InternalID: "i1"})
	res.AddIdentityProviderMapper(&model.IdentityProviderMapper{ID: "m1", Name: "email", IdentityProviderAlias: "github"})

	run(t, store, changes.Commit, `{"realm": "test", "identityProviders": []}`)

	assert.Empty(t, res.IdentityProviders())
	assert.Empty(t, res.IdentityProviderMappers())
}

func TestFormers_Registry(t *testing.T) {
	f := NewFormers()

	_, err := ItemFor[representation.Client](f)
	require.NoError(t, err)
	_, err = CollectionFor[representation.AuthenticationFlow](f)
	require.NoError(t, err)

	_, err = CollectionFor[representation.Roles](f)
	var missing *MissingFormerError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, definition.KindRoles, missing.Kind)
	assert.True(t, missing.Collection)
}
