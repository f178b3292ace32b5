package aggregates

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/registrar-backend/internal/domain"
)

var UserAggregateContract = Contract{
	Name:       "Registrar.UserAggregate",
	Collection: CollectionOwned,
	Notes:      "Owns the user row and its single profile; profile is replaced wholesale on update.",
}

// UserAggregate owns user + profile consistency.
//
// Failures are *aggregates.Error with codes:
// CodeInvalidArgument, CodeNotFound, CodeConstraintViolation, CodeTransactionAborted, CodeInternal.
type UserAggregate interface {
	Aggregate

	Create(ctx context.Context, in CreateUserInput) (*types.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*types.User, error)
	// Delete removes the user and its profile and returns the user as it was.
	Delete(ctx context.Context, id uuid.UUID) (*types.User, error)

	Get(ctx context.Context, id uuid.UUID) (*types.User, error)
	List(ctx context.Context, filter map[string]any) ([]*types.User, error)
}

type ProfileInput struct {
	FirstName   string  `json:"first_name" validate:"required,min=3,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=3,max=50"`
	PhoneNumber string  `json:"phone_number" validate:"required,phone"`
	Bio         *string `json:"bio,omitempty"`
}

type CreateUserInput struct {
	Username string        `json:"username" validate:"required,min=3,max=20"`
	Email    string        `json:"email" validate:"required,email"`
	Profile  *ProfileInput `json:"profile,omitempty"`
}

// UpdateUserInput leaves nil fields untouched. A non-nil Profile replaces the
// existing one; RemoveProfile drops it.
type UpdateUserInput struct {
	Username      *string       `json:"username,omitempty" validate:"omitnil,min=3,max=20"`
	Email         *string       `json:"email,omitempty" validate:"omitnil,email"`
	Profile       *ProfileInput `json:"profile,omitempty"`
	RemoveProfile bool          `json:"remove_profile,omitempty"`
}
