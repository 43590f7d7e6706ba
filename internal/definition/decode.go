package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"realmform/internal/representation"
)

// Document is the decoded desired state of one run.
type Document struct {
	Realms  []*Definition[representation.Realm]
	overlay *Overlay
}

// Overlay returns the overlay of every node decoded into the document.
func (d *Document) Overlay() *Overlay {
	return d.overlay
}

// Realm returns the declared realm with the given name.
func (d *Document) Realm(name string) *Definition[representation.Realm] {
	for _, r := range d.Realms {
		if r.Value.Name() == name {
			return r
		}
	}
	return nil
}

var sslRequiredValues = map[string]bool{"all": true, "external": true, "none": true}

// Decode parses one or more JSON or YAML documents. Each document holds a
// realm object or an array of realm objects. Realms keep their input order
// except that adminRealm, when declared, is moved to the front.
func Decode(adminRealm string, docs ...[]byte) (*Document, error) {
	doc := &Document{overlay: newOverlay()}
	x := &indexer{overlay: doc.overlay}
	seen := make(map[string]bool)

	for n, data := range docs {
		realms, raws, err := decodeRealms(data)
		if err != nil {
			return nil, &DecodeError{Path: fmt.Sprintf("document[%d]", n), Message: "malformed document", Err: err}
		}
		for i, rep := range realms {
			if rep == nil {
				continue
			}
			name := rep.Name()
			if name == "" {
				return nil, &DecodeError{Path: fmt.Sprintf("document[%d][%d]", n, i), Message: "realm name is required"}
			}
			if seen[name] {
				return nil, &DecodeError{Path: realmPath(name), Message: "realm declared more than once"}
			}
			seen[name] = true

			var raw map[string]any
			if i < len(raws) {
				raw = object(raws[i])
			}
			if err := x.realm(rep, raw); err != nil {
				return nil, err
			}
			def, err := As(doc.overlay, rep)
			if err != nil {
				return nil, err
			}
			doc.Realms = append(doc.Realms, def)
		}
	}

	sort.SliceStable(doc.Realms, func(i, j int) bool {
		return doc.Realms[i].Value.Name() == adminRealm && doc.Realms[j].Value.Name() != adminRealm
	})
	return doc, nil
}

func decodeRealms(data []byte) ([]*representation.Realm, []any, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, nil, err
	}
	js = bytes.TrimSpace(js)
	if len(js) == 0 || bytes.Equal(js, []byte("null")) {
		return nil, nil, nil
	}

	if js[0] == '[' {
		var realms []*representation.Realm
		if err := json.Unmarshal(js, &realms); err != nil {
			return nil, nil, err
		}
		var raws []any
		if err := json.Unmarshal(js, &raws); err != nil {
			return nil, nil, err
		}
		return realms, raws, nil
	}

	var realm representation.Realm
	if err := json.Unmarshal(js, &realm); err != nil {
		return nil, nil, err
	}
	var raw any
	if err := json.Unmarshal(js, &raw); err != nil {
		return nil, nil, err
	}
	return []*representation.Realm{&realm}, []any{raw}, nil
}

func realmPath(name string) string {
	return "realm[" + name + "]"
}

// indexer walks the typed tree and the generic tree side by side, reading
// the syncMode field of every reconcilable node.
type indexer struct {
	overlay *Overlay
}

func register[R Representation](x *indexer, path string, rep *R, raw map[string]any) error {
	mode := SyncModeFull
	if v, ok := raw["syncMode"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return &DecodeError{Path: path, Message: fmt.Sprintf("syncMode must be a string, got %T", v)}
		}
		parsed, err := ParseSyncMode(s)
		if err != nil {
			return &DecodeError{Path: path, Message: "invalid syncMode", Err: err}
		}
		mode = parsed
	}
	x.overlay.add(rep, mode)
	return nil
}

func eachItem[R any](path string, reps []*R, raw any, fn func(string, *R, map[string]any) error) error {
	raws, _ := raw.([]any)
	for i, rep := range reps {
		if rep == nil {
			continue
		}
		var r map[string]any
		if i < len(raws) {
			r = object(raws[i])
		}
		if err := fn(fmt.Sprintf("%s[%d]", path, i), rep, r); err != nil {
			return err
		}
	}
	return nil
}

func leaves[R Representation](x *indexer, path string, reps []*R, raw any) error {
	return eachItem(path, reps, raw, func(p string, rep *R, r map[string]any) error {
		return register(x, p, rep, r)
	})
}

func (x *indexer) realm(rep *representation.Realm, raw map[string]any) error {
	path := realmPath(rep.Name())
	if err := register(x, path, rep, raw); err != nil {
		return err
	}
	if rep.SSLRequired != nil && !sslRequiredValues[strings.ToLower(*rep.SSLRequired)] {
		return &DecodeError{Path: path, Message: fmt.Sprintf("sslRequired must be one of all, external, none; got %q", *rep.SSLRequired)}
	}

	if rep.Roles != nil {
		rolesRaw := object(raw["roles"])
		if err := register(x, path+".roles", rep.Roles, rolesRaw); err != nil {
			return err
		}
		if err := leaves(x, path+".roles.realm", rep.Roles.Realm, rolesRaw["realm"]); err != nil {
			return err
		}
		clientRaw := object(rolesRaw["client"])
		for _, clientID := range sortedKeys(rep.Roles.Client) {
			if err := leaves(x, path+".roles.client["+clientID+"]", rep.Roles.Client[clientID], clientRaw[clientID]); err != nil {
				return err
			}
		}
	}

	err := eachItem(path+".clients", rep.Clients, raw["clients"], func(p string, c *representation.Client, r map[string]any) error {
		if err := register(x, p, c, r); err != nil {
			return err
		}
		return leaves(x, p+".protocolMappers", c.ProtocolMappers, r["protocolMappers"])
	})
	if err != nil {
		return err
	}

	err = eachItem(path+".clientScopes", rep.ClientScopes, raw["clientScopes"], func(p string, s *representation.ClientScope, r map[string]any) error {
		if err := register(x, p, s, r); err != nil {
			return err
		}
		return leaves(x, p+".protocolMappers", s.ProtocolMappers, r["protocolMappers"])
	})
	if err != nil {
		return err
	}

	err = eachItem(path+".authenticationFlows", rep.AuthenticationFlows, raw["authenticationFlows"], func(p string, f *representation.AuthenticationFlow, r map[string]any) error {
		if err := register(x, p, f, r); err != nil {
			return err
		}
		return leaves(x, p+".authenticationExecutions", f.AuthenticationExecutions, r["authenticationExecutions"])
	})
	if err != nil {
		return err
	}

	if err := leaves(x, path+".authenticatorConfig", rep.AuthenticatorConfig, raw["authenticatorConfig"]); err != nil {
		return err
	}
	if err := x.components(path+".components", rep.Components, object(raw["components"])); err != nil {
		return err
	}
	if err := leaves(x, path+".requiredActions", rep.RequiredActions, raw["requiredActions"]); err != nil {
		return err
	}
	if err := leaves(x, path+".identityProviders", rep.IdentityProviders, raw["identityProviders"]); err != nil {
		return err
	}
	if err := leaves(x, path+".identityProviderMappers", rep.IdentityProviderMappers, raw["identityProviderMappers"]); err != nil {
		return err
	}
	return leaves(x, path+".groups", rep.Groups, raw["groups"])
}

func (x *indexer) components(path string, byType map[string][]*representation.Component, raw map[string]any) error {
	for _, providerType := range sortedKeys(byType) {
		p := path + "[" + providerType + "]"
		err := eachItem(p, byType[providerType], raw[providerType], func(cp string, c *representation.Component, r map[string]any) error {
			if err := register(x, cp, c, r); err != nil {
				return err
			}
			return x.components(cp+".subComponents", c.SubComponents, object(r["subComponents"]))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func object(raw any) map[string]any {
	m, _ := raw.(map[string]any)
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
