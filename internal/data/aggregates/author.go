package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
)

type AuthorAggregateDeps struct {
	BaseDeps
	Authors store.EntityStore[types.Author]
	Books   store.EntityStore[types.Book]
}

type authorAggregate struct {
	rec *Reconciler[types.Author, types.Book]
}

func NewAuthorAggregate(deps AuthorAggregateDeps) (domainagg.AuthorAggregate, error) {
	rec, err := NewReconciler(Binding[types.Author, types.Book]{
		Name:        "author",
		Kind:        domainagg.AuthorAggregateContract.Collection,
		Roots:       deps.Authors,
		RootKey:     func(a *types.Author) uuid.UUID { return a.ID },
		SetChildren: func(a *types.Author, books []*types.Book) { a.Books = books },
		Children:    deps.Books,
		OwnerColumn: "author_id",
		OwnerOf:     func(b *types.Book) uuid.UUID { return b.AuthorID },
		Adopt: func(a *types.Author, b *types.Book) {
			b.ID = uuid.Nil
			b.AuthorID = a.ID
		},
	}, deps.BaseDeps)
	if err != nil {
		return nil, err
	}
	return &authorAggregate{rec: rec}, nil
}

func (a *authorAggregate) Contract() domainagg.Contract {
	return domainagg.AuthorAggregateContract
}

func (a *authorAggregate) Create(ctx context.Context, in domainagg.CreateAuthorInput) (*types.Author, error) {
	if err := validateInput("author.create", in); err != nil {
		return nil, err
	}
	return a.rec.Create(ctx, &types.Author{Name: strings.TrimSpace(in.Name)}, booksFromInput(in.Books))
}

func (a *authorAggregate) Update(ctx context.Context, id uuid.UUID, in domainagg.UpdateAuthorInput) (*types.Author, error) {
	if err := validateInput("author.update", in); err != nil {
		return nil, err
	}
	values := map[string]any{}
	if in.Name != nil {
		values["name"] = strings.TrimSpace(*in.Name)
	}
	var books Collection[types.Book]
	if in.Books != nil {
		books = Replace(booksFromInput(*in.Books))
	}
	return a.rec.Update(ctx, id, values, books)
}

func (a *authorAggregate) Delete(ctx context.Context, id uuid.UUID) (*types.Author, error) {
	return a.rec.Delete(ctx, id)
}

func (a *authorAggregate) Get(ctx context.Context, id uuid.UUID) (*types.Author, error) {
	return a.rec.Get(ctx, id)
}

func (a *authorAggregate) List(ctx context.Context, filter map[string]any) ([]*types.Author, error) {
	return a.rec.List(ctx, store.Filter(filter))
}

func booksFromInput(in []domainagg.BookInput) []*types.Book {
	out := make([]*types.Book, 0, len(in))
	for _, b := range in {
		out = append(out, &types.Book{Title: strings.TrimSpace(b.Title)})
	}
	return out
}
