package aggregates

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/registrar-backend/internal/domain"
)

var CourseCatalogContract = Contract{
	Name:       "Registrar.CourseCatalog",
	Collection: CollectionShared,
	Notes:      "Courses queried as roots in their own right; deleting a course drops its enrollment links.",
}

// CourseCatalog exposes courses directly, outside any student.
type CourseCatalog interface {
	Aggregate

	Create(ctx context.Context, in CreateCourseInput) (*types.Course, error)
	Rename(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*types.Course, error)
	Delete(ctx context.Context, id uuid.UUID) (*types.Course, error)

	Get(ctx context.Context, id uuid.UUID) (*types.Course, error)
	List(ctx context.Context, filter map[string]any) ([]*types.Course, error)
	// Students lists students enrolled in the course.
	Students(ctx context.Context, id uuid.UUID) ([]*types.Student, error)
}

type CreateCourseInput struct {
	Title string `json:"title" validate:"required,max=100"`
}

type UpdateCourseInput struct {
	Title *string `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
}
