package former

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/representation"
	"realmform/pkg/logging"
)

// ItemFormer reconciles one declared node and its subtree.
type ItemFormer[R definition.Representation] interface {
	Form(c *Context, def *definition.Definition[R]) error
}

// CollectionFormer reconciles a declared list of nodes. Under FULL it also
// removes live resources of the current scope that no declared node names.
type CollectionFormer[R definition.Representation] interface {
	Form(c *Context, defs []*definition.Definition[R], mode definition.SyncMode) error
}

// kindOps holds everything that differs between resource kinds. The
// templates below supply the control flow.
type kindOps[M any, R definition.Representation] interface {
	// describe names a declared node for logs and the report.
	describe(c *Context, d *R) string
	// lookup finds the live counterpart by natural key, nil when absent.
	lookup(c *Context, d *R) (*M, error)
	// create returns a new resource. Kinds created through a factory return
	// it registered; detached kinds return it unregistered.
	create(c *Context, d *R) *M
	update(c *Context, t *changes.Tracker[M], d *R) error
	// register adds a detached resource once its fields are populated.
	register(c *Context, m *M)
	// children forms the subtree. m is nil in a phantom subtree.
	children(c *Context, m *M, def *definition.Definition[R], t *changes.Tracker[M]) error
	persist(c *Context, m *M)

	list(c *Context) []*M
	declaredKeys(c *Context, d *R) []string
	liveKeys(m *M) []string
	describeLive(c *Context, m *M) string
	remove(c *Context, m *M) bool
	protected(c *Context, m *M) bool
}

// baseKind supplies the optional hooks.
type baseKind[M any, R definition.Representation] struct{}

func (baseKind[M, R]) register(*Context, *M) {}

func (baseKind[M, R]) children(*Context, *M, *definition.Definition[R], *changes.Tracker[M]) error {
	return nil
}

func (baseKind[M, R]) protected(*Context, *M) bool { return false }

type itemFormer[M any, R definition.Representation] struct {
	subsystem string
	ops       kindOps[M, R]
}

func (f *itemFormer[M, R]) Form(c *Context, def *definition.Definition[R]) error {
	if def == nil || def.Value == nil {
		return nil
	}
	d := def.Value
	kind := definition.KindOf[R]()
	name := f.ops.describe(c, d)
	realm := c.realmName()
	if rd, ok := any(d).(*representation.Realm); ok {
		realm = rd.Name()
	}

	// An ignored node is never looked up, so its references need not resolve.
	if def.Policy().IsIgnore() {
		logging.Info(f.subsystem, "%s sync mode IGNORE, skipping it", name)
		c.report.add(realm, kind, name, OutcomeSkipped, nil)
		return nil
	}

	var live *M
	if !c.Phantom() {
		var err error
		if live, err = f.ops.lookup(c, d); err != nil {
			return err
		}
	}

	created := live == nil
	var tracker *changes.Tracker[M]
	if created {
		logging.Info(f.subsystem, "%s does not exist, will be created and formed", name)
		if c.Committing() {
			live = f.ops.create(c, d)
			c.markCreated(live)
		}
		tracker = changes.TrackNew(live, c.mode)
	} else {
		logging.Info(f.subsystem, "%s exists and will be formed", name)
		tracker = changes.Track(live, c.mode)
	}

	if err := f.ops.update(c, tracker, d); err != nil {
		return err
	}
	if created && live != nil {
		f.ops.register(c, live)
	}
	if err := f.ops.children(c, live, def, tracker); err != nil {
		return err
	}

	outcome := OutcomeUnchanged
	switch {
	case created:
		outcome = OutcomeCreated
	case tracker.Changed():
		outcome = OutcomeUpdated
	}
	if tracker.Changed() {
		logging.Info(f.subsystem, "%s updated with the following changes:\n %s", name, tracker)
		if c.Committing() && live != nil {
			f.ops.persist(c, live)
		}
	} else {
		logging.Info(f.subsystem, "%s without changes", name)
	}
	c.report.add(realm, kind, name, outcome, tracker.Changes())
	return nil
}

type collectionFormer[M any, R definition.Representation] struct {
	subsystem string
	ops       kindOps[M, R]
	item      ItemFormer[R]
}

func (f *collectionFormer[M, R]) Form(c *Context, defs []*definition.Definition[R], mode definition.SyncMode) error {
	if err := f.formDeclared(c, defs, mode); err != nil {
		return err
	}
	f.sweep(c, defs, mode)
	return nil
}

// formDeclared forms each declared node in input order.
func (f *collectionFormer[M, R]) formDeclared(c *Context, defs []*definition.Definition[R], mode definition.SyncMode) error {
	leave := c.withSyncMode(mode)
	defer leave()

	for _, def := range defs {
		if err := f.item.Form(c, def); err != nil {
			return err
		}
	}
	return nil
}

// sweep removes, under FULL, the live resources of the current scope that no
// declared node names.
func (f *collectionFormer[M, R]) sweep(c *Context, defs []*definition.Definition[R], mode definition.SyncMode) {
	if !mode.IsFull() || c.Phantom() {
		return
	}

	// IGNORE nodes count as declared: they protect their live counterpart.
	declared := sets.New[string]()
	for _, def := range defs {
		if def != nil && def.Value != nil {
			declared.Insert(f.ops.declaredKeys(c, def.Value)...)
		}
	}
	for _, m := range f.ops.list(c) {
		if declared.HasAny(f.ops.liveKeys(m)...) || f.ops.protected(c, m) {
			continue
		}
		c.delete(f.subsystem, definition.KindOf[R](), f.ops.describeLive(c, m), func() bool {
			return f.ops.remove(c, m)
		})
	}
}

// delete removes one undeclared resource, or reports that it would be
// removed. A refused removal is logged and the run continues.
func (c *Context) delete(subsystem string, kind definition.Kind, resource string, remove func() bool) {
	realm := c.realmName()
	if !c.Committing() {
		logging.Info(subsystem, "%s will be removed", resource)
		c.report.add(realm, kind, resource, OutcomeDeleted, nil)
		return
	}
	if !remove() {
		logging.Warn(subsystem, "%s was not removed", resource)
		c.report.add(realm, kind, resource, OutcomeRefused, nil)
		return
	}
	logging.Info(subsystem, "%s removed", resource)
	c.report.add(realm, kind, resource, OutcomeDeleted, nil)
}

func (c *Context) realmName() string {
	if c.realmDefinition == nil {
		return ""
	}
	return c.realmDefinition.Value.Name()
}

// keyed builds namespaced identity keys, skipping empty values.
func keyed(pairs ...string) []string {
	keys := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			keys = append(keys, pairs[i]+":"+pairs[i+1])
		}
	}
	return keys
}
