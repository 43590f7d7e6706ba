package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realmform/internal/model"
)

func TestStore_RealmLifecycle(t *testing.T) {
	s := NewStoreWithRealms("master")
	realms := s.Realms()

	created := realms.Create("id-1", "test")
	assert.Same(t, created, realms.Get("test"))
	assert.Same(t, created, realms.GetByID("id-1"))
	assert.Len(t, realms.List(), 2)

	assert.True(t, realms.Remove("id-1"))
	assert.False(t, realms.Remove("id-1"))
	assert.Nil(t, realms.Get("test"))
	assert.Nil(t, realms.Resources("id-1"))
}

func TestStore_ExportIsDeepCopy(t *testing.T) {
	s := NewStoreWithRealms("test")
	res := s.Realms().Resources("test")
	client := res.AddClient("c1", "app")
	client.RedirectURIs = []string{"https://a"}

	exported, err := s.Export()
	require.NoError(t, err)
	client.RedirectURIs[0] = "https://b"

	assert.Equal(t, "https://a", exported[0].Clients[0].Client.RedirectURIs[0])
}

func TestResources_RemoveClientScopeRefusedWhileAssigned(t *testing.T) {
	s := NewStoreWithRealms("test")
	res := s.Realms().Resources("test")
	scope := res.AddClientScope("s1", "email")
	client := res.AddClient("c1", "app")
	client.DefaultClientScopes = []string{"email"}

	assert.False(t, res.RemoveClientScope(scope.ID))
	assert.NotNil(t, res.ClientScopeByName("email"))

	client.DefaultClientScopes = nil
	assert.True(t, res.RemoveClientScope(scope.ID))
	assert.Nil(t, res.ClientScopeByName("email"))
}

func TestResources_RemoveFlowRefusedWhileBound(t *testing.T) {
	s := NewStoreWithRealms("test")
	realm := s.Realms().Get("test")
	res := s.Realms().Resources("test")

	res.AddAuthenticationFlow(&model.AuthenticationFlow{ID: "f1", Alias: "browser"})
	res.AddAuthenticationExecution(&model.AuthenticationExecution{ID: "e1", ParentFlow: "f1"})
	realm.BrowserFlow = "f1"

	assert.False(t, res.RemoveAuthenticationFlow("f1"))

	realm.BrowserFlow = ""
	assert.True(t, res.RemoveAuthenticationFlow("f1"))
	assert.Empty(t, res.AuthenticationExecutions("f1"))
}

func TestResources_RemoveComponentCascades(t *testing.T) {
	s := NewStoreWithRealms("test")
	res := s.Realms().Resources("test")
	res.AddComponent(&model.Component{ID: "ldap", ParentID: "test", ProviderType: "storage"})
	res.AddComponent(&model.Component{ID: "mapper", ParentID: "ldap", ProviderType: "mapper"})
	res.AddComponent(&model.Component{ID: "keys", ParentID: "test", ProviderType: "keys"})

	assert.True(t, res.RemoveComponent("ldap"))
	assert.Nil(t, res.ComponentByID("mapper"))
	assert.NotNil(t, res.ComponentByID("keys"))
}

func TestResources_RoleContainers(t *testing.T) {
	s := NewStoreWithRealms("test")
	realm := s.Realms().Get("test")
	res := s.Realms().Resources("test")

	role := res.RealmRoles().AddRole("r1", "default-roles-test")
	assert.Equal(t, "test", role.ContainerID)
	assert.False(t, role.ClientRole)
	realm.DefaultRoleID = role.ID
	assert.False(t, res.RealmRoles().RemoveRole("r1"))

	client := res.AddClient("c1", "app")
	clientRole := res.ClientRoles(client.ID).AddRole("r2", "viewer")
	assert.True(t, clientRole.ClientRole)
	assert.Same(t, clientRole, res.ClientRoles(client.ID).Role("viewer"))
	assert.True(t, res.ClientRoles(client.ID).RemoveRole("r2"))
	assert.Nil(t, res.ClientRoles("missing"))
}

func TestBackend_CommitAndRollback(t *testing.T) {
	b := NewBackend(NewStoreWithRealms("master"))
	ctx := context.Background()

	uow, err := b.Begin(ctx)
	require.NoError(t, err)
	uow.Session().Realms().Create("t1", "test")
	require.NoError(t, uow.Rollback())
	assert.Nil(t, b.Store().Realms().Get("test"))

	uow, err = b.Begin(ctx)
	require.NoError(t, err)
	uow.Session().Realms().Create("t1", "test")
	require.NoError(t, uow.Commit())
	assert.NotNil(t, b.Store().Realms().Get("test"))

	assert.ErrorIs(t, uow.Commit(), ErrTransactionDone)
	assert.NoError(t, uow.Rollback())
}

func TestBackend_BeginHonoursCancelledContext(t *testing.T) {
	b := NewBackend(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
