package former

import (
	"sort"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/internal/updater"
)

// formComponents forms a provider type keyed component map below the
// current parent. Under FULL, live provider types the map does not name are
// swept as well.
func formComponents(c *Context, byType map[string][]*representation.Component) error {
	defs, err := definition.AsMap(c.overlay, byType)
	if err != nil {
		return err
	}
	collection, err := CollectionFor[representation.Component](c.formers)
	if err != nil {
		return err
	}

	mode := c.SyncMode()
	declaredTypes := make([]string, 0, len(defs))
	for providerType := range defs {
		declaredTypes = append(declaredTypes, providerType)
	}
	sort.Strings(declaredTypes)

	for _, providerType := range declaredTypes {
		leave := c.withProviderType(providerType)
		err := collection.Form(c, defs[providerType], mode)
		leave()
		if err != nil {
			return err
		}
	}

	if !mode.IsFull() || c.Phantom() {
		return nil
	}
	for _, providerType := range c.liveProviderTypes() {
		if _, ok := defs[providerType]; ok {
			continue
		}
		leave := c.withProviderType(providerType)
		err := collection.Form(c, nil, mode)
		leave()
		if err != nil {
			return err
		}
	}
	return nil
}

// liveProviderTypes lists the provider types used below the current parent.
func (c *Context) liveProviderTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, component := range c.resources.Components() {
		if component.ParentID == c.parentID && !seen[component.ProviderType] {
			seen[component.ProviderType] = true
			types = append(types, component.ProviderType)
		}
	}
	sort.Strings(types)
	return types
}

// componentKind matches components by id, or by name within the current
// parent and provider type when no id is declared.
type componentKind struct {
	baseKind[model.Component, representation.Component]
}

func (componentKind) describe(c *Context, d *representation.Component) string {
	return "component " + quote(representation.Deref(d.Name)) + " (" + c.providerType + ")"
}

func (componentKind) lookup(c *Context, d *representation.Component) (*model.Component, error) {
	if id := representation.Deref(d.ID); id != "" {
		return c.resources.ComponentByID(id), nil
	}
	name := representation.Deref(d.Name)
	for _, component := range c.scopedComponents() {
		if component.Name == name {
			return component, nil
		}
	}
	return nil, nil
}

func (componentKind) create(c *Context, d *representation.Component) *model.Component {
	return &model.Component{ID: newID(d.ID), ProviderType: c.providerType, ParentID: c.parentID}
}

func (componentKind) update(_ *Context, t *changes.Tracker[model.Component], d *representation.Component) error {
	updater.UpdateComponent(t, d)
	return nil
}

func (componentKind) register(c *Context, m *model.Component) {
	c.resources.AddComponent(m)
}

// children forms the sub components with this component as parent.
func (componentKind) children(c *Context, m *model.Component, def *definition.Definition[representation.Component], _ *changes.Tracker[model.Component]) error {
	leave := c.withComponent(m, representation.Deref(def.Value.ID))
	defer leave()
	return formComponents(c, def.Value.SubComponents)
}

func (componentKind) persist(c *Context, m *model.Component) {
	c.resources.UpdateComponent(m)
}

func (componentKind) list(c *Context) []*model.Component {
	return c.scopedComponents()
}

func (componentKind) declaredKeys(_ *Context, d *representation.Component) []string {
	if id := representation.Deref(d.ID); id != "" {
		return keyed("id", id)
	}
	return keyed("name", representation.Deref(d.Name))
}

func (componentKind) liveKeys(m *model.Component) []string {
	return keyed("id", m.ID, "name", m.Name)
}

func (componentKind) describeLive(_ *Context, m *model.Component) string {
	return "component " + quote(m.Name) + " (" + m.ProviderType + ")"
}

func (componentKind) remove(c *Context, m *model.Component) bool {
	return c.resources.RemoveComponent(m.ID)
}

func (c *Context) scopedComponents() []*model.Component {
	var out []*model.Component
	for _, component := range c.resources.Components() {
		if component.ParentID == c.parentID && component.ProviderType == c.providerType {
			out = append(out, component)
		}
	}
	return out
}
