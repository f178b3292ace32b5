package enrollment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/repos/testutil"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

func TestCourseRepoTitleIsUnique(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCourseRepo(db, testutil.Logger(t))
	math := testutil.SeedCourse(t, ctx, tx, "Math")
	testutil.SeedCourse(t, ctx, tx, "Art")

	got, err := repo.FindAll(dbc, store.Filter{"title": []string{"Math", "History"}})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != math.ID {
		t.Fatalf("FindAll: unexpected result: %+v", got)
	}

	_, err = repo.InsertOne(dbc, &types.Course{Title: "Art"})
	if !domainagg.IsCode(err, domainagg.CodeConstraintViolation) {
		t.Fatalf("InsertOne (duplicate title): expected constraint_violation, got %v", err)
	}
}

func TestStudentCourseRepoLinks(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	links := NewStudentCourseRepo(db, testutil.Logger(t))

	math := testutil.SeedCourse(t, ctx, tx, "Math")
	art := testutil.SeedCourse(t, ctx, tx, "Art")
	alice := testutil.SeedStudent(t, ctx, tx, "Alice")
	bob := testutil.SeedStudent(t, ctx, tx, "Bob", math)

	if err := links.LinkCourses(dbc, alice.ID, []uuid.UUID{math.ID, art.ID, math.ID}); err != nil {
		t.Fatalf("LinkCourses: %v", err)
	}
	if err := links.LinkCourses(dbc, alice.ID, []uuid.UUID{math.ID}); err != nil {
		t.Fatalf("LinkCourses (again): %v", err)
	}

	byStudent, err := links.CourseIDsByStudents(dbc, []uuid.UUID{alice.ID, bob.ID, uuid.New()})
	if err != nil {
		t.Fatalf("CourseIDsByStudents: %v", err)
	}
	if len(byStudent[alice.ID]) != 2 || len(byStudent[bob.ID]) != 1 {
		t.Fatalf("CourseIDsByStudents: unexpected result: %+v", byStudent)
	}
	if len(byStudent) != 3 {
		t.Fatalf("CourseIDsByStudents: expected an entry per requested student, got %d", len(byStudent))
	}

	enrolled, err := links.StudentIDsByCourse(dbc, math.ID)
	if err != nil || len(enrolled) != 2 {
		t.Fatalf("StudentIDsByCourse: got=%v err=%v", enrolled, err)
	}

	if err := links.LinkCourses(dbc, alice.ID, []uuid.UUID{uuid.New()}); !domainagg.IsCode(err, domainagg.CodeConstraintViolation) {
		t.Fatalf("LinkCourses (unknown course): expected constraint_violation, got %v", err)
	}
}

func TestStudentDeleteCascadesOnlyAssociations(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	links := NewStudentCourseRepo(db, testutil.Logger(t))
	students := NewStudentRepo(db, testutil.Logger(t))
	courses := NewCourseRepo(db, testutil.Logger(t))

	math := testutil.SeedCourse(t, ctx, tx, "Math")
	alice := testutil.SeedStudent(t, ctx, tx, "Alice", math)

	n, err := students.DeleteWhere(dbc, store.Filter{"id": alice.ID}, false)
	if err != nil || n != 1 {
		t.Fatalf("DeleteWhere: n=%d err=%v", n, err)
	}

	enrolled, err := links.StudentIDsByCourse(dbc, math.ID)
	if err != nil {
		t.Fatalf("StudentIDsByCourse: %v", err)
	}
	if len(enrolled) != 0 {
		t.Fatalf("expected association rows to cascade, got %v", enrolled)
	}
	if ok, err := courses.Exists(dbc, store.Filter{"id": math.ID}); err != nil || !ok {
		t.Fatalf("course should survive student delete: ok=%v err=%v", ok, err)
	}
}
