package enrollment

import (
	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentCourseRepo manages rows of the student_course association table.
// It never touches students or courses themselves.
type StudentCourseRepo interface {
	LinkCourses(dbc dbctx.Context, studentID uuid.UUID, courseIDs []uuid.UUID) error
	UnlinkStudent(dbc dbctx.Context, studentID uuid.UUID) (int64, error)
	UnlinkCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	CourseIDsByStudents(dbc dbctx.Context, studentIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	StudentIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error)
}

type studentCourseRepo struct {
	*store.Store[types.StudentCourse]
	log *logger.Logger
}

func NewStudentCourseRepo(db *gorm.DB, baseLog *logger.Logger) StudentCourseRepo {
	repoLog := baseLog.With("repo", "StudentCourseRepo")
	return &studentCourseRepo{Store: store.MustNew[types.StudentCourse](db, repoLog), log: repoLog}
}

// LinkCourses inserts one association row per distinct course id. Existing
// pairs are left alone so the call is idempotent.
func (r *studentCourseRepo) LinkCourses(dbc dbctx.Context, studentID uuid.UUID, courseIDs []uuid.UUID) error {
	if len(courseIDs) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(courseIDs))
	rows := make([]*types.StudentCourse, 0, len(courseIDs))
	for _, id := range courseIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, &types.StudentCourse{StudentID: studentID, CourseID: id})
	}
	err := dbc.DB(r.DB()).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return r.Translate("LinkCourses", err)
	}
	return nil
}

func (r *studentCourseRepo) UnlinkStudent(dbc dbctx.Context, studentID uuid.UUID) (int64, error) {
	return r.DeleteWhere(dbc, store.Filter{"student_id": studentID}, false)
}

func (r *studentCourseRepo) UnlinkCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	return r.DeleteWhere(dbc, store.Filter{"course_id": courseID}, false)
}

// CourseIDsByStudents returns an entry for every requested student, empty when it has no courses.
func (r *studentCourseRepo) CourseIDsByStudents(dbc dbctx.Context, studentIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}
	for _, id := range studentIDs {
		out[id] = []uuid.UUID{}
	}
	rows, err := r.FindAll(dbc, store.Filter{"student_id": studentIDs})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.StudentID] = append(out[row.StudentID], row.CourseID)
	}
	return out, nil
}

func (r *studentCourseRepo) StudentIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.FindAll(dbc, store.Filter{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.StudentID)
	}
	return out, nil
}
