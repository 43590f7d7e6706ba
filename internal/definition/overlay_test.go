package definition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realmform/internal/representation"
)

const castDocument = `{
  "realm": "test",
  "clients": [
    {"clientId": "app", "syncMode": "IGNORE", "protocolMappers": [{"name": "email"}]},
    {"clientId": "api"}
  ],
  "components": {
    "org.keycloak.storage.UserStorageProvider": [
      {"id": "ldap", "name": "ldap", "subComponents": {"mapper": [{"id": "m1", "name": "email", "syncMode": "ignore"}]}}
    ]
  }
}`

func TestCast_Nil(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)

	node, err := doc.Overlay().Cast(nil)
	assert.NoError(t, err)
	assert.Nil(t, node)

	var client *representation.Client
	node, err = doc.Overlay().Cast(client)
	assert.NoError(t, err)
	assert.Nil(t, node)
}

func TestCast_DecodedRepresentation(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)

	realm := doc.Realms[0].Value
	node, err := doc.Overlay().Cast(realm.Clients[0])
	require.NoError(t, err)
	assert.Equal(t, KindClient, node.Kind())
	assert.Equal(t, SyncModeIgnore, node.Policy())

	client, ok := node.(*Definition[representation.Client])
	require.True(t, ok)
	assert.Same(t, realm.Clients[0], client.Value)
}

func TestCast_DefinitionPassesThrough(t *testing.T) {
	def := Wrap(&representation.Group{Name: representation.Ptr("admins")}, "")
	node, err := (*Overlay)(nil).Cast(def)
	require.NoError(t, err)
	assert.Same(t, def, node)
	assert.Equal(t, SyncModeFull, node.Policy())
}

func TestCast_Unsupported(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)

	tests := []struct {
		name string
		obj  any
	}{
		{"foreign type", "a string"},
		{"hand constructed representation", &representation.Client{ClientID: representation.Ptr("x")}},
		{"representation by value", representation.Client{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := doc.Overlay().Cast(tt.obj)
			var unsupported *UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Errorf("expected UnsupportedTypeError, got %v", err)
			}
		})
	}
}

func TestAsList(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)
	o := doc.Overlay()

	defs, err := AsList[representation.Client](o, nil)
	assert.NoError(t, err)
	assert.Nil(t, defs)

	defs, err = AsList(o, []*representation.Client{})
	assert.NoError(t, err)
	assert.NotNil(t, defs)
	assert.Empty(t, defs)

	clients := doc.Realms[0].Value.Clients
	defs, err = AsList(o, clients)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, SyncModeIgnore, defs[0].Policy())
	assert.Equal(t, SyncModeFull, defs[1].Policy())
}

func TestAsList_ValidatesFirstElementOnly(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)
	o := doc.Overlay()

	stray := &representation.Client{ClientID: representation.Ptr("stray")}

	// A stray element after a decoded one is accepted with FULL.
	defs, err := AsList(o, []*representation.Client{nil, doc.Realms[0].Value.Clients[0], stray})
	require.NoError(t, err)
	assert.Nil(t, defs[0])
	assert.Equal(t, SyncModeFull, defs[2].Policy())

	// A stray first element is rejected.
	_, err = AsList(o, []*representation.Client{stray, doc.Realms[0].Value.Clients[0]})
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestAsMap(t *testing.T) {
	doc, err := Decode("master", []byte(castDocument))
	require.NoError(t, err)
	o := doc.Overlay()

	components, err := AsMap(o, doc.Realms[0].Value.Components)
	require.NoError(t, err)
	ldap := components["org.keycloak.storage.UserStorageProvider"]
	require.Len(t, ldap, 1)

	subs, err := AsMap(o, ldap[0].Value.SubComponents)
	require.NoError(t, err)
	assert.Equal(t, SyncModeIgnore, subs["mapper"][0].Policy())

	stray := map[string][]*representation.Component{
		"a": {},
		"b": {{ID: representation.Ptr("x")}},
	}
	_, err = AsMap(o, stray)
	assert.Error(t, err)

	empty, err := AsMap[representation.Component](o, nil)
	assert.NoError(t, err)
	assert.Nil(t, empty)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRealm, KindOf[representation.Realm]())
	assert.Equal(t, KindAuthenticationExecution, KindOf[representation.AuthenticationExecution]())
	assert.Equal(t, KindRoles, KindOf[representation.Roles]())
}
