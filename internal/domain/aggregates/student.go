package aggregates

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/registrar-backend/internal/domain"
)

var StudentAggregateContract = Contract{
	Name:       "Registrar.StudentAggregate",
	Collection: CollectionShared,
	Notes:      "Owns student rows and their course links; courses are find-or-create references and are never deleted here.",
}

// StudentAggregate owns student enrollment links.
type StudentAggregate interface {
	Aggregate

	Create(ctx context.Context, in CreateStudentInput) (*types.Student, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateStudentInput) (*types.Student, error)
	Delete(ctx context.Context, id uuid.UUID) (*types.Student, error)

	Get(ctx context.Context, id uuid.UUID) (*types.Student, error)
	List(ctx context.Context, filter map[string]any) ([]*types.Student, error)
}

type CreateStudentInput struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Courses []string `json:"courses" validate:"dive,required,max=100"`
}

// UpdateStudentInput: a nil Courses pointer keeps current enrollments.
type UpdateStudentInput struct {
	Name    *string   `json:"name,omitempty" validate:"omitnil,min=1,max=100"`
	Courses *[]string `json:"courses,omitempty" validate:"omitnil,dive,required,max=100"`
}
