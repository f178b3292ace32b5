package aggregates

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yungbote/registrar-backend/internal/data/store"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

const DefaultResolveAttempts = 3

// ReferenceStore is the slice of a store the resolver needs.
type ReferenceStore[T any] interface {
	Table() string
	FindAll(dbc dbctx.Context, filter store.Filter) ([]*T, error)
	InsertMany(dbc dbctx.Context, rows []*T) ([]*T, error)
}

type ResolverConfig[T any] struct {
	Store ReferenceStore[T]
	// KeyColumn holds the natural key and must be unique in the database.
	KeyColumn   string
	KeyOf       func(*T) string
	New         func(key string) *T
	MaxAttempts int
	Hooks       Hooks
	Log         *logger.Logger
}

// Resolver finds or creates reference rows by natural key. It holds no
// mutable state; the unique index on KeyColumn arbitrates concurrent creators.
type Resolver[T any] struct {
	cfg ResolverConfig[T]
	log *logger.Logger
}

func NewResolver[T any](cfg ResolverConfig[T]) (*Resolver[T], error) {
	switch {
	case cfg.Store == nil:
		return nil, fmt.Errorf("resolver: nil store")
	case strings.TrimSpace(cfg.KeyColumn) == "":
		return nil, fmt.Errorf("resolver: empty key column")
	case cfg.KeyOf == nil || cfg.New == nil:
		return nil, fmt.Errorf("resolver: KeyOf and New are required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultResolveAttempts
	}
	if cfg.Hooks == nil {
		cfg.Hooks = noopHooks{}
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Resolver[T]{cfg: cfg, log: cfg.Log.With("resolver", cfg.Store.Table())}, nil
}

// Resolve returns one reference per distinct candidate, in first-occurrence
// order, creating whichever do not exist yet. It must run inside the caller's
// unit of work; inserts go through a savepoint so a lost race never poisons it.
func (r *Resolver[T]) Resolve(dbc dbctx.Context, candidates []string) ([]*T, error) {
	op := r.cfg.Store.Table() + ".Resolve"
	keys, err := dedupeKeys(op, candidates)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*T{}, nil
	}

	found := make(map[string]*T, len(keys))
	if err := r.collect(dbc, keys, found); err != nil {
		return nil, err
	}

	missing := missingKeys(keys, found)
	for attempt := 1; len(missing) > 0; attempt++ {
		// Concurrent writers take unique-index locks in the same order.
		slices.Sort(missing)
		rows := make([]*T, 0, len(missing))
		for _, k := range missing {
			rows = append(rows, r.cfg.New(k))
		}
		created, insErr := r.cfg.Store.InsertMany(dbc, rows)
		if insErr == nil {
			for _, row := range created {
				found[r.cfg.KeyOf(row)] = row
			}
			r.cfg.Hooks.AddReferencesCreated(r.cfg.Store.Table(), len(created))
			break
		}
		if !domainagg.IsCode(insErr, domainagg.CodeConstraintViolation) {
			return nil, insErr
		}

		r.cfg.Hooks.IncReferenceRace(r.cfg.Store.Table())
		r.log.Debug("reference insert lost a race, re-reading", "attempt", attempt, "keys", len(missing))
		before := len(found)
		if err := r.collect(dbc, missing, found); err != nil {
			return nil, err
		}
		missing = missingKeys(missing, found)
		// No new rows means the violation did not come from a competing insert.
		if len(missing) > 0 && (len(found) == before || attempt >= r.cfg.MaxAttempts) {
			return nil, insErr
		}
	}

	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		out = append(out, found[k])
	}
	return out, nil
}

func (r *Resolver[T]) collect(dbc dbctx.Context, keys []string, into map[string]*T) error {
	rows, err := r.cfg.Store.FindAll(dbc, store.Filter{r.cfg.KeyColumn: keys})
	if err != nil {
		return err
	}
	for _, row := range rows {
		into[r.cfg.KeyOf(row)] = row
	}
	return nil
}

func dedupeKeys(op string, candidates []string) ([]string, error) {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for i, c := range candidates {
		k := strings.TrimSpace(c)
		if k == "" {
			return nil, InvalidArgumentError(op, fmt.Sprintf("blank natural key at index %d", i))
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out, nil
}

func missingKeys[T any](keys []string, found map[string]*T) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := found[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
