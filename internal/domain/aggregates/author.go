package aggregates

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/registrar-backend/internal/domain"
)

var AuthorAggregateContract = Contract{
	Name:       "Registrar.AuthorAggregate",
	Collection: CollectionOwned,
	Notes:      "Owns author + books; books are rebuilt from the payload on every update that carries them.",
}

// AuthorAggregate owns author + book consistency.
type AuthorAggregate interface {
	Aggregate

	Create(ctx context.Context, in CreateAuthorInput) (*types.Author, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAuthorInput) (*types.Author, error)
	Delete(ctx context.Context, id uuid.UUID) (*types.Author, error)

	Get(ctx context.Context, id uuid.UUID) (*types.Author, error)
	List(ctx context.Context, filter map[string]any) ([]*types.Author, error)
}

type BookInput struct {
	Title string `json:"title" validate:"required,min=3,max=100"`
}

type CreateAuthorInput struct {
	Name  string      `json:"name" validate:"required,min=3,max=50"`
	Books []BookInput `json:"books" validate:"dive"`
}

// UpdateAuthorInput: a nil Books pointer keeps the current books, an empty slice removes them all.
type UpdateAuthorInput struct {
	Name  *string      `json:"name,omitempty" validate:"omitnil,min=3,max=50"`
	Books *[]BookInput `json:"books,omitempty" validate:"omitnil,dive"`
}
