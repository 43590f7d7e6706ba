package definition

import (
	"realmform/internal/representation"
)

// Kind names one reconcilable resource kind.
type Kind string

const (
	KindRealm                   Kind = "realm"
	KindClient                  Kind = "client"
	KindClientScope             Kind = "client-scope"
	KindProtocolMapper          Kind = "protocol-mapper"
	KindRole                    Kind = "role"
	KindRoles                   Kind = "roles"
	KindAuthenticationFlow      Kind = "authentication-flow"
	KindAuthenticationExecution Kind = "authentication-execution"
	KindAuthenticatorConfig     Kind = "authenticator-config"
	KindComponent               Kind = "component"
	KindRequiredAction          Kind = "required-action"
	KindIdentityProvider        Kind = "identity-provider"
	KindIdentityProviderMapper  Kind = "identity-provider-mapper"
	KindGroup                   Kind = "group"
)

// Representation is the closed set of representation types that have a
// definition counterpart.
type Representation interface {
	representation.Realm |
		representation.Client |
		representation.ClientScope |
		representation.ProtocolMapper |
		representation.Role |
		representation.Roles |
		representation.AuthenticationFlow |
		representation.AuthenticationExecution |
		representation.AuthenticatorConfig |
		representation.Component |
		representation.RequiredAction |
		representation.IdentityProvider |
		representation.IdentityProviderMapper |
		representation.Group
}

// Node is implemented by every Definition.
type Node interface {
	Kind() Kind
	Policy() SyncMode
}

// Definition is a representation value plus its reconciliation policy.
type Definition[R Representation] struct {
	Value    *R
	SyncMode SyncMode
}

// Wrap builds a definition for a representation. It is meant for code that
// constructs definitions directly rather than decoding a document.
func Wrap[R Representation](value *R, mode SyncMode) *Definition[R] {
	if mode == "" {
		mode = SyncModeFull
	}
	return &Definition[R]{Value: value, SyncMode: mode}
}

// Kind returns the resource kind of the wrapped representation.
func (d *Definition[R]) Kind() Kind {
	return KindOf[R]()
}

// Policy returns the sync mode, FULL when unset.
func (d *Definition[R]) Policy() SyncMode {
	if d.SyncMode == "" {
		return SyncModeFull
	}
	return d.SyncMode
}

// KindOf returns the kind registered for R.
func KindOf[R Representation]() Kind {
	var zero R
	switch any(zero).(type) {
	case representation.Realm:
		return KindRealm
	case representation.Client:
		return KindClient
	case representation.ClientScope:
		return KindClientScope
	case representation.ProtocolMapper:
		return KindProtocolMapper
	case representation.Role:
		return KindRole
	case representation.Roles:
		return KindRoles
	case representation.AuthenticationFlow:
		return KindAuthenticationFlow
	case representation.AuthenticationExecution:
		return KindAuthenticationExecution
	case representation.AuthenticatorConfig:
		return KindAuthenticatorConfig
	case representation.Component:
		return KindComponent
	case representation.RequiredAction:
		return KindRequiredAction
	case representation.IdentityProvider:
		return KindIdentityProvider
	case representation.IdentityProviderMapper:
		return KindIdentityProviderMapper
	case representation.Group:
		return KindGroup
	}
	panic("unreachable: representation union not covered")
}
