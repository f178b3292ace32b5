package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

type CourseCatalogDeps struct {
	BaseDeps
	Courses  store.EntityStore[types.Course]
	Links    EnrollmentLinks
	Students domainagg.StudentAggregate
}

type courseCatalog struct {
	deps CourseCatalogDeps
}

func NewCourseCatalog(deps CourseCatalogDeps) (domainagg.CourseCatalog, error) {
	if deps.Courses == nil || deps.Links == nil || deps.Students == nil {
		return nil, InvalidArgumentError("course.new", "Courses, Links and Students are required")
	}
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	return &courseCatalog{deps: deps}, nil
}

func (c *courseCatalog) Contract() domainagg.Contract {
	return domainagg.CourseCatalogContract
}

func (c *courseCatalog) Create(ctx context.Context, in domainagg.CreateCourseInput) (*types.Course, error) {
	const op = "course.create"
	if err := validateInput(op, in); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, InvalidArgumentError(op, "Title is required")
	}
	var out *types.Course
	err := executeWrite(ctx, c.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		created, err := c.deps.Courses.InsertOne(dbc, &types.Course{Title: title})
		out = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseCatalog) Rename(ctx context.Context, id uuid.UUID, in domainagg.UpdateCourseInput) (*types.Course, error) {
	const op = "course.rename"
	if err := validateInput(op, in); err != nil {
		return nil, err
	}
	var out *types.Course
	err := executeWrite(ctx, c.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		if _, err := c.deps.Courses.FindByKey(dbc, id); err != nil {
			return err
		}
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return InvalidArgumentError(op, "Title is required")
			}
			if _, err := c.deps.Courses.UpdateByKey(dbc, id, map[string]any{"title": title}); err != nil {
				return err
			}
		}
		course, err := c.deps.Courses.FindByKey(dbc, id)
		out = course
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the course and every enrollment in it; students survive.
func (c *courseCatalog) Delete(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	var out *types.Course
	err := executeWrite(ctx, c.deps.BaseDeps, "course.delete", func(dbc dbctx.Context) error {
		course, err := c.deps.Courses.FindByKey(dbc, id)
		if err != nil {
			return err
		}
		if _, err := c.deps.Links.UnlinkCourse(dbc, id); err != nil {
			return err
		}
		if _, err := c.deps.Courses.DeleteWhere(dbc, store.Filter{"id": id}, false); err != nil {
			return err
		}
		out = course
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseCatalog) Get(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	var out *types.Course
	err := executeRead(ctx, c.deps.BaseDeps, "course.get", func(dbc dbctx.Context) error {
		course, err := c.deps.Courses.FindByKey(dbc, id)
		out = course
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseCatalog) List(ctx context.Context, filter map[string]any) ([]*types.Course, error) {
	var out []*types.Course
	err := executeRead(ctx, c.deps.BaseDeps, "course.list", func(dbc dbctx.Context) error {
		courses, err := c.deps.Courses.FindAll(dbc, store.Filter(filter))
		out = courses
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Students lists the students enrolled in the course. The link read and the
// student read share one unit of work; under postgres read committed a student
// deleted between the two statements is simply absent from the result.
func (c *courseCatalog) Students(ctx context.Context, id uuid.UUID) ([]*types.Student, error) {
	const op = "course.students"
	return WithTransaction(ctx, c.deps.Runner, func(dbc dbctx.Context) ([]*types.Student, error) {
		var ids []uuid.UUID
		err := executeRead(dbc.Context(), c.deps.BaseDeps, op, func(dbc dbctx.Context) error {
			if _, err := c.deps.Courses.FindByKey(dbc, id); err != nil {
				return err
			}
			found, err := c.deps.Links.StudentIDsByCourse(dbc, id)
			ids = found
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []*types.Student{}, nil
		}
		return c.deps.Students.List(dbc.Context(), map[string]any{"id": ids})
	})
}
