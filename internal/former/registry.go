package former

import (
	"fmt"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/model"
	"realmform/internal/representation"
	"realmform/pkg/logging"
)

// MissingFormerError is returned when no former is registered for a kind.
type MissingFormerError struct {
	Kind       definition.Kind
	Collection bool
}

func (e *MissingFormerError) Error() string {
	what := "item"
	if e.Collection {
		what = "collection"
	}
	return fmt.Sprintf("no %s former registered for kind %s", what, e.Kind)
}

// Formers maps each definition kind to its item and collection former.
// Formers resolve the formers of their children through the registry at
// call time, so registration order does not matter.
type Formers struct {
	items       map[definition.Kind]any
	collections map[definition.Kind]any
}

// NewFormers returns a registry covering every supported kind.
func NewFormers() *Formers {
	f := &Formers{
		items:       make(map[definition.Kind]any),
		collections: make(map[definition.Kind]any),
	}
	register(f, "RealmFormer", realmKind{})
	register(f, "ClientFormer", clientKind{})
	register(f, "ClientScopeFormer", clientScopeKind{})
	register(f, "ProtocolMapperFormer", protocolMapperKind{})
	register(f, "RoleFormer", roleKind{})
	register(f, "ExecutionFormer", executionKind{})
	register(f, "AuthenticatorConfigFormer", authenticatorConfigKind{})
	register(f, "ComponentFormer", componentKind{})
	register(f, "RequiredActionFormer", requiredActionKind{})
	register(f, "IdentityProviderFormer", identityProviderKind{})
	register(f, "IdentityProviderMapperFormer", identityProviderMapperKind{})
	register(f, "GroupFormer", groupKind{})

	flows := register(f, "AuthenticationFlowFormer", flowKind{})
	f.collections[definition.KindAuthenticationFlow] = &flowsFormer{flows: flows}

	f.items[definition.KindRoles] = &compositesFormer{subsystem: "RoleCompositesFormer"}
	return f
}

func register[M any, R definition.Representation](f *Formers, subsystem string, ops kindOps[M, R]) *collectionFormer[M, R] {
	kind := definition.KindOf[R]()
	item := &itemFormer[M, R]{subsystem: subsystem, ops: ops}
	collection := &collectionFormer[M, R]{subsystem: subsystem, ops: ops, item: item}
	f.items[kind] = item
	f.collections[kind] = collection
	return collection
}

// ItemFor returns the item former registered for R.
func ItemFor[R definition.Representation](f *Formers) (ItemFormer[R], error) {
	kind := definition.KindOf[R]()
	former, ok := f.items[kind].(ItemFormer[R])
	if !ok {
		return nil, &MissingFormerError{Kind: kind}
	}
	return former, nil
}

// CollectionFor returns the collection former registered for R.
func CollectionFor[R definition.Representation](f *Formers) (CollectionFormer[R], error) {
	kind := definition.KindOf[R]()
	former, ok := f.collections[kind].(CollectionFormer[R])
	if !ok {
		return nil, &MissingFormerError{Kind: kind, Collection: true}
	}
	return former, nil
}

// Options configures one run.
type Options struct {
	Mode changes.Mode
	// SyncMode applies to the root realm collection. IGNORE makes the whole
	// run additive.
	SyncMode   definition.SyncMode
	AdminRealm string
}

// Run forms every realm of doc against session. The report is returned even
// when the run fails so callers can show how far it got.
func (f *Formers) Run(session model.Session, doc *definition.Document, opts Options) (*Report, error) {
	mode := opts.SyncMode
	if mode == "" {
		mode = definition.SyncModeFull
	}
	report := &Report{Mode: opts.Mode}
	c := &Context{
		session:    session,
		mode:       opts.Mode,
		overlay:    doc.Overlay(),
		formers:    f,
		report:     report,
		adminRealm: opts.AdminRealm,
	}

	realms, err := CollectionFor[representation.Realm](f)
	if err != nil {
		return report, err
	}
	logging.Info("Former", "Forming %d realm(s) in %s mode", len(doc.Realms), opts.Mode)
	if err := realms.Form(c, doc.Realms, mode); err != nil {
		return report, err
	}
	return report, nil
}

// formItem forms one declared child through the registry.
func formItem[R definition.Representation](c *Context, rep *R) error {
	def, err := definition.As(c.overlay, rep)
	if err != nil || def == nil {
		return err
	}
	item, err := ItemFor[R](c.formers)
	if err != nil {
		return err
	}
	return item.Form(c, def)
}

// formCollection forms a declared child list through the registry using the
// sync mode of the enclosing collection.
func formCollection[R definition.Representation](c *Context, reps []*R) error {
	defs, err := definition.AsList(c.overlay, reps)
	if err != nil {
		return err
	}
	return formDefinitions(c, defs)
}

func formDefinitions[R definition.Representation](c *Context, defs []*definition.Definition[R]) error {
	collection, err := CollectionFor[R](c.formers)
	if err != nil {
		return err
	}
	return collection.Form(c, defs, c.SyncMode())
}

// deferredSweep is implemented by collection formers whose deletion sweep can
// run apart from forming the declared nodes.
type deferredSweep[R definition.Representation] interface {
	formDeclared(c *Context, defs []*definition.Definition[R], mode definition.SyncMode) error
	sweep(c *Context, defs []*definition.Definition[R], mode definition.SyncMode)
}

// formCollectionDeferred forms a declared child list and returns its deletion
// sweep. The caller runs the sweep once the resources that reference the
// kind have dropped their references.
func formCollectionDeferred[R definition.Representation](c *Context, reps []*R) (func(), error) {
	defs, err := definition.AsList(c.overlay, reps)
	if err != nil {
		return nil, err
	}
	collection, err := CollectionFor[R](c.formers)
	if err != nil {
		return nil, err
	}
	mode := c.SyncMode()
	split, ok := collection.(deferredSweep[R])
	if !ok {
		return func() {}, collection.Form(c, defs, mode)
	}
	if err := split.formDeclared(c, defs, mode); err != nil {
		return nil, err
	}
	return func() { split.sweep(c, defs, mode) }, nil
}
