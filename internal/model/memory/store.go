package memory

import (
	"encoding/json"
	"fmt"

	"realmform/internal/model"
)

// RealmSnapshot is the complete state of one realm.
type RealmSnapshot struct {
	Realm                    *model.Realm                     `json:"realm"`
	Roles                    []*model.Role                    `json:"roles,omitempty"`
	Clients                  []*ClientSnapshot                `json:"clients,omitempty"`
	ClientScopes             []*ClientScopeSnapshot           `json:"clientScopes,omitempty"`
	AuthenticationFlows      []*model.AuthenticationFlow      `json:"authenticationFlows,omitempty"`
	AuthenticationExecutions []*model.AuthenticationExecution `json:"authenticationExecutions,omitempty"`
	AuthenticatorConfigs     []*model.AuthenticatorConfig     `json:"authenticatorConfigs,omitempty"`
	Components               []*model.Component               `json:"components,omitempty"`
	RequiredActions          []*model.RequiredAction          `json:"requiredActions,omitempty"`
	IdentityProviders        []*model.IdentityProvider        `json:"identityProviders,omitempty"`
	IdentityProviderMappers  []*model.IdentityProviderMapper  `json:"identityProviderMappers,omitempty"`
	Groups                   []*model.Group                   `json:"groups,omitempty"`
}

// ClientSnapshot is a client with the roles and mappers it owns.
type ClientSnapshot struct {
	Client          *model.Client           `json:"client"`
	Roles           []*model.Role           `json:"roles,omitempty"`
	ProtocolMappers []*model.ProtocolMapper `json:"protocolMappers,omitempty"`
}

// ClientScopeSnapshot is a client scope with its mappers.
type ClientScopeSnapshot struct {
	ClientScope     *model.ClientScope      `json:"clientScope"`
	ProtocolMappers []*model.ProtocolMapper `json:"protocolMappers,omitempty"`
}

// Store is an in-memory identity server. It is not safe for concurrent use;
// Backend serializes access between units of work.
type Store struct {
	realms []*RealmSnapshot
}

// NewStore returns a store holding the given realms.
func NewStore(realms ...*RealmSnapshot) *Store {
	return &Store{realms: realms}
}

// NewStoreWithRealms returns a store with one empty realm per name. Realm ids
// equal their names.
func NewStoreWithRealms(names ...string) *Store {
	s := &Store{}
	for _, name := range names {
		s.Realms().Create(name, name)
	}
	return s
}

// Export returns a deep copy of every realm.
func (s *Store) Export() ([]*RealmSnapshot, error) {
	data, err := json.Marshal(s.realms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode realm snapshots: %w", err)
	}
	var out []*RealmSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode realm snapshots: %w", err)
	}
	return out, nil
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() (*Store, error) {
	realms, err := s.Export()
	if err != nil {
		return nil, err
	}
	return &Store{realms: realms}, nil
}

// Snapshot returns the live snapshot of a realm by name, or nil.
func (s *Store) Snapshot(name string) *RealmSnapshot {
	for _, r := range s.realms {
		if r.Realm.Name == name {
			return r
		}
	}
	return nil
}

// Realms implements model.Session.
func (s *Store) Realms() model.RealmProvider {
	return realmProvider{store: s}
}

type realmProvider struct {
	store *Store
}

func (p realmProvider) Get(name string) *model.Realm {
	if snap := p.store.Snapshot(name); snap != nil {
		return snap.Realm
	}
	return nil
}

func (p realmProvider) GetByID(id string) *model.Realm {
	if snap := p.store.byID(id); snap != nil {
		return snap.Realm
	}
	return nil
}

func (p realmProvider) List() []*model.Realm {
	out := make([]*model.Realm, len(p.store.realms))
	for i, r := range p.store.realms {
		out[i] = r.Realm
	}
	return out
}

func (p realmProvider) Create(id, name string) *model.Realm {
	snap := &RealmSnapshot{Realm: &model.Realm{ID: id, Name: name}}
	p.store.realms = append(p.store.realms, snap)
	return snap.Realm
}

func (p realmProvider) Update(*model.Realm) {}

func (p realmProvider) Remove(id string) bool {
	var removed bool
	p.store.realms, removed = remove(p.store.realms, func(r *RealmSnapshot) bool { return r.Realm.ID == id })
	return removed
}

func (p realmProvider) Resources(realmID string) model.RealmResources {
	snap := p.store.byID(realmID)
	if snap == nil {
		return nil
	}
	return &resources{snap: snap}
}

func (s *Store) byID(id string) *RealmSnapshot {
	for _, r := range s.realms {
		if r.Realm.ID == id {
			return r
		}
	}
	return nil
}

func find[T any](items []*T, match func(*T) bool) *T {
	for _, item := range items {
		if match(item) {
			return item
		}
	}
	return nil
}

func remove[T any](items []*T, match func(*T) bool) ([]*T, bool) {
	for i, item := range items {
		if match(item) {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

func removeAll[T any](items []*T, match func(*T) bool) []*T {
	out := items[:0:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}

func copyOf[T any](items []*T) []*T {
	return append([]*T(nil), items...)
}
