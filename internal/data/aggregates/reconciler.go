package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

// Collection is an update payload for a root's dependent collection. The zero
// value means "absent": the stored collection is left untouched. A present
// collection, even an empty one, replaces the stored one wholesale.
type Collection[C any] struct {
	items   []*C
	present bool
}

// Replace marks items as the complete new collection.
func Replace[C any](items []*C) Collection[C] {
	if items == nil {
		items = []*C{}
	}
	return Collection[C]{items: items, present: true}
}

func (c Collection[C]) Present() bool { return c.present }
func (c Collection[C]) Items() []*C   { return c.items }

// LinkStore persists association rows between a root and shared references.
type LinkStore interface {
	Link(dbc dbctx.Context, rootKey uuid.UUID, refKeys []uuid.UUID) error
	UnlinkRoot(dbc dbctx.Context, rootKey uuid.UUID) (int64, error)
	RefKeysByRoots(dbc dbctx.Context, rootKeys []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

// Binding tells a Reconciler how a root type relates to its collection.
type Binding[R, C any] struct {
	Name string
	Kind domainagg.CollectionKind

	Roots       store.EntityStore[R]
	RootKey     func(*R) uuid.UUID
	SetChildren func(*R, []*C)

	// Owned: Children rows carry OwnerColumn pointing at the root.
	Children    store.EntityStore[C]
	OwnerColumn string
	OwnerOf     func(*C) uuid.UUID
	Adopt       func(root *R, child *C)

	// Shared: Children is the reference store, payload items carry only a natural key.
	Resolver   *Resolver[C]
	Links      LinkStore
	NaturalKey func(*C) string
	RefKey     func(*C) uuid.UUID
}

func (b Binding[R, C]) validate() error {
	if !b.Kind.Valid() {
		return fmt.Errorf("binding %s: unknown collection kind %q", b.Name, b.Kind)
	}
	if b.Roots == nil || b.RootKey == nil || b.SetChildren == nil || b.Children == nil {
		return fmt.Errorf("binding %s: Roots, RootKey, SetChildren and Children are required", b.Name)
	}
	switch b.Kind {
	case domainagg.CollectionOwned:
		if b.OwnerColumn == "" || b.OwnerOf == nil || b.Adopt == nil {
			return fmt.Errorf("binding %s: owned collections need OwnerColumn, OwnerOf and Adopt", b.Name)
		}
		if _, ok := b.Children.Column(b.OwnerColumn); !ok {
			return fmt.Errorf("binding %s: %s has no column %q", b.Name, b.Children.Table(), b.OwnerColumn)
		}
	case domainagg.CollectionShared:
		if b.Resolver == nil || b.Links == nil || b.NaturalKey == nil || b.RefKey == nil {
			return fmt.Errorf("binding %s: shared collections need Resolver, Links, NaturalKey and RefKey", b.Name)
		}
	}
	return nil
}

// Reconciler writes a root together with its collection in one unit of work.
type Reconciler[R, C any] struct {
	b    Binding[R, C]
	deps BaseDeps
}

func NewReconciler[R, C any](b Binding[R, C], deps BaseDeps) (*Reconciler[R, C], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &Reconciler[R, C]{b: b, deps: deps.withDefaults()}, nil
}

func (r *Reconciler[R, C]) op(name string) string { return r.b.Name + "." + name }

// Create inserts root, then its collection, and returns root with the collection populated.
func (r *Reconciler[R, C]) Create(ctx context.Context, root *R, children []*C) (*R, error) {
	op := r.op("create")
	if root == nil {
		return nil, InvalidArgumentError(op, "nil root")
	}
	var out *R
	err := executeWrite(ctx, r.deps, op, func(dbc dbctx.Context) error {
		created, err := r.b.Roots.InsertOne(dbc, root)
		if err != nil {
			return err
		}
		items, err := r.attach(dbc, created, children)
		if err != nil {
			return err
		}
		r.b.SetChildren(created, items)
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies scalar values and, when children is present, replaces the collection.
func (r *Reconciler[R, C]) Update(ctx context.Context, key uuid.UUID, values map[string]any, children Collection[C]) (*R, error) {
	op := r.op("update")
	var out *R
	err := executeWrite(ctx, r.deps, op, func(dbc dbctx.Context) error {
		if _, err := r.b.Roots.FindByKey(dbc, key); err != nil {
			return err
		}
		if len(values) > 0 {
			if _, err := r.b.Roots.UpdateByKey(dbc, key, values); err != nil {
				return err
			}
		}
		root, err := r.b.Roots.FindByKey(dbc, key)
		if err != nil {
			return err
		}
		if children.Present() {
			if err := r.detach(dbc, key); err != nil {
				return err
			}
			if _, err := r.attach(dbc, root, children.Items()); err != nil {
				return err
			}
		}
		if err := r.load(dbc, []*R{root}); err != nil {
			return err
		}
		out = root
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes root and its owned children or links, returning the root as it was.
// Shared references survive.
func (r *Reconciler[R, C]) Delete(ctx context.Context, key uuid.UUID) (*R, error) {
	op := r.op("delete")
	var out *R
	err := executeWrite(ctx, r.deps, op, func(dbc dbctx.Context) error {
		root, err := r.b.Roots.FindByKey(dbc, key)
		if err != nil {
			return err
		}
		if err := r.load(dbc, []*R{root}); err != nil {
			return err
		}
		if err := r.detach(dbc, key); err != nil {
			return err
		}
		if _, err := r.b.Roots.DeleteWhere(dbc, store.Filter{r.b.Roots.KeyColumn(): key}, false); err != nil {
			return err
		}
		out = root
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reconciler[R, C]) Get(ctx context.Context, key uuid.UUID) (*R, error) {
	var out *R
	err := executeRead(ctx, r.deps, r.op("get"), func(dbc dbctx.Context) error {
		root, err := r.b.Roots.FindByKey(dbc, key)
		if err != nil {
			return err
		}
		if err := r.load(dbc, []*R{root}); err != nil {
			return err
		}
		out = root
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reconciler[R, C]) List(ctx context.Context, filter store.Filter) ([]*R, error) {
	var out []*R
	err := executeRead(ctx, r.deps, r.op("list"), func(dbc dbctx.Context) error {
		roots, err := r.b.Roots.FindAll(dbc, filter)
		if err != nil {
			return err
		}
		if err := r.load(dbc, roots); err != nil {
			return err
		}
		out = roots
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// attach persists children for root. Owned items are adopted (owner set, fresh
// key); shared items are resolved by natural key and linked.
func (r *Reconciler[R, C]) attach(dbc dbctx.Context, root *R, children []*C) ([]*C, error) {
	if len(children) == 0 {
		return []*C{}, nil
	}
	switch r.b.Kind {
	case domainagg.CollectionOwned:
		for i, child := range children {
			if child == nil {
				return nil, InvalidArgumentError(r.op("attach"), fmt.Sprintf("nil child at index %d", i))
			}
			r.b.Adopt(root, child)
		}
		return r.b.Children.InsertMany(dbc, children)
	default:
		keys := make([]string, 0, len(children))
		for i, child := range children {
			if child == nil {
				return nil, InvalidArgumentError(r.op("attach"), fmt.Sprintf("nil reference at index %d", i))
			}
			keys = append(keys, r.b.NaturalKey(child))
		}
		refs, err := r.b.Resolver.Resolve(dbc, keys)
		if err != nil {
			return nil, err
		}
		refKeys := make([]uuid.UUID, 0, len(refs))
		for _, ref := range refs {
			refKeys = append(refKeys, r.b.RefKey(ref))
		}
		if err := r.b.Links.Link(dbc, r.b.RootKey(root), refKeys); err != nil {
			return nil, err
		}
		return refs, nil
	}
}

// detach removes owned children or association links; never reference rows.
func (r *Reconciler[R, C]) detach(dbc dbctx.Context, key uuid.UUID) error {
	if r.b.Kind == domainagg.CollectionOwned {
		_, err := r.b.Children.DeleteWhere(dbc, store.Filter{r.b.OwnerColumn: key}, false)
		return err
	}
	_, err := r.b.Links.UnlinkRoot(dbc, key)
	return err
}

// load populates the collection of every root with two queries regardless of len(roots).
func (r *Reconciler[R, C]) load(dbc dbctx.Context, roots []*R) error {
	if len(roots) == 0 {
		return nil
	}
	keys := make([]uuid.UUID, 0, len(roots))
	for _, root := range roots {
		keys = append(keys, r.b.RootKey(root))
	}

	byRoot := make(map[uuid.UUID][]*C, len(roots))
	switch r.b.Kind {
	case domainagg.CollectionOwned:
		children, err := r.b.Children.FindAll(dbc, store.Filter{r.b.OwnerColumn: keys})
		if err != nil {
			return err
		}
		for _, child := range children {
			owner := r.b.OwnerOf(child)
			byRoot[owner] = append(byRoot[owner], child)
		}
	default:
		links, err := r.b.Links.RefKeysByRoots(dbc, keys)
		if err != nil {
			return err
		}
		refIDs := make([]uuid.UUID, 0)
		seen := map[uuid.UUID]struct{}{}
		for _, ids := range links {
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				refIDs = append(refIDs, id)
			}
		}
		refs := map[uuid.UUID]*C{}
		if len(refIDs) > 0 {
			rows, err := r.b.Children.FindAll(dbc, store.Filter{r.b.Children.KeyColumn(): refIDs})
			if err != nil {
				return err
			}
			for _, row := range rows {
				refs[r.b.RefKey(row)] = row
			}
		}
		for rootKey, ids := range links {
			for _, id := range ids {
				if ref, ok := refs[id]; ok {
					byRoot[rootKey] = append(byRoot[rootKey], ref)
				}
			}
		}
	}

	for _, root := range roots {
		items := byRoot[r.b.RootKey(root)]
		if items == nil {
			items = []*C{}
		}
		r.b.SetChildren(root, items)
	}
	return nil
}
