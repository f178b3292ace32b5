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

// EnrollmentLinks is the student_course surface the enrollment aggregates use.
type EnrollmentLinks interface {
	LinkCourses(dbc dbctx.Context, studentID uuid.UUID, courseIDs []uuid.UUID) error
	UnlinkStudent(dbc dbctx.Context, studentID uuid.UUID) (int64, error)
	UnlinkCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	CourseIDsByStudents(dbc dbctx.Context, studentIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	StudentIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error)
}

type studentLinks struct {
	links EnrollmentLinks
}

func (s studentLinks) Link(dbc dbctx.Context, rootKey uuid.UUID, refKeys []uuid.UUID) error {
	return s.links.LinkCourses(dbc, rootKey, refKeys)
}

func (s studentLinks) UnlinkRoot(dbc dbctx.Context, rootKey uuid.UUID) (int64, error) {
	return s.links.UnlinkStudent(dbc, rootKey)
}

func (s studentLinks) RefKeysByRoots(dbc dbctx.Context, rootKeys []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return s.links.CourseIDsByStudents(dbc, rootKeys)
}

type StudentAggregateDeps struct {
	BaseDeps
	Students store.EntityStore[types.Student]
	Courses  store.EntityStore[types.Course]
	Links    EnrollmentLinks
	// ResolveAttempts bounds course find-or-create retries; zero means the default.
	ResolveAttempts int
}

type studentAggregate struct {
	rec *Reconciler[types.Student, types.Course]
}

// NewCourseResolver builds the find-or-create resolver keyed by course title.
func NewCourseResolver(courses ReferenceStore[types.Course], deps BaseDeps, attempts int) (*Resolver[types.Course], error) {
	deps = deps.withDefaults()
	return NewResolver(ResolverConfig[types.Course]{
		Store:       courses,
		KeyColumn:   "title",
		KeyOf:       func(c *types.Course) string { return c.Title },
		New:         func(title string) *types.Course { return &types.Course{Title: title} },
		MaxAttempts: attempts,
		Hooks:       deps.Hooks,
		Log:         deps.Log,
	})
}

func NewStudentAggregate(deps StudentAggregateDeps) (domainagg.StudentAggregate, error) {
	if deps.Links == nil {
		return nil, InvalidArgumentError("student.new", "nil enrollment links")
	}
	resolver, err := NewCourseResolver(deps.Courses, deps.BaseDeps, deps.ResolveAttempts)
	if err != nil {
		return nil, err
	}
	rec, err := NewReconciler(Binding[types.Student, types.Course]{
		Name:        "student",
		Kind:        domainagg.StudentAggregateContract.Collection,
		Roots:       deps.Students,
		RootKey:     func(s *types.Student) uuid.UUID { return s.ID },
		SetChildren: func(s *types.Student, courses []*types.Course) { s.Courses = courses },
		Children:    deps.Courses,
		Resolver:    resolver,
		Links:       studentLinks{links: deps.Links},
		NaturalKey:  func(c *types.Course) string { return c.Title },
		RefKey:      func(c *types.Course) uuid.UUID { return c.ID },
	}, deps.BaseDeps)
	if err != nil {
		return nil, err
	}
	return &studentAggregate{rec: rec}, nil
}

func (a *studentAggregate) Contract() domainagg.Contract {
	return domainagg.StudentAggregateContract
}

func (a *studentAggregate) Create(ctx context.Context, in domainagg.CreateStudentInput) (*types.Student, error) {
	if err := validateInput("student.create", in); err != nil {
		return nil, err
	}
	return a.rec.Create(ctx, &types.Student{Name: strings.TrimSpace(in.Name)}, courseRefs(in.Courses))
}

func (a *studentAggregate) Update(ctx context.Context, id uuid.UUID, in domainagg.UpdateStudentInput) (*types.Student, error) {
	if err := validateInput("student.update", in); err != nil {
		return nil, err
	}
	values := map[string]any{}
	if in.Name != nil {
		values["name"] = strings.TrimSpace(*in.Name)
	}
	var courses Collection[types.Course]
	if in.Courses != nil {
		courses = Replace(courseRefs(*in.Courses))
	}
	return a.rec.Update(ctx, id, values, courses)
}

func (a *studentAggregate) Delete(ctx context.Context, id uuid.UUID) (*types.Student, error) {
	return a.rec.Delete(ctx, id)
}

func (a *studentAggregate) Get(ctx context.Context, id uuid.UUID) (*types.Student, error) {
	return a.rec.Get(ctx, id)
}

func (a *studentAggregate) List(ctx context.Context, filter map[string]any) ([]*types.Student, error) {
	return a.rec.List(ctx, store.Filter(filter))
}

func courseRefs(titles []string) []*types.Course {
	out := make([]*types.Course, 0, len(titles))
	for _, t := range titles {
		out = append(out, &types.Course{Title: t})
	}
	return out
}
