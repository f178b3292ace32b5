package repos

import (
	"github.com/yungbote/registrar-backend/internal/data/repos/enrollment"
	"github.com/yungbote/registrar-backend/internal/data/repos/library"
	"github.com/yungbote/registrar-backend/internal/data/repos/user"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type ProfileRepo = user.ProfileRepo

type AuthorRepo = library.AuthorRepo
type BookRepo = library.BookRepo

type StudentRepo = enrollment.StudentRepo
type CourseRepo = enrollment.CourseRepo
type StudentCourseRepo = enrollment.StudentCourseRepo

// Repos is the full set of stores, all sharing one *gorm.DB.
type Repos struct {
	Users          UserRepo
	Profiles       ProfileRepo
	Authors        AuthorRepo
	Books          BookRepo
	Students       StudentRepo
	Courses        CourseRepo
	StudentCourses StudentCourseRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Users:          user.NewUserRepo(db, log),
		Profiles:       user.NewProfileRepo(db, log),
		Authors:        library.NewAuthorRepo(db, log),
		Books:          library.NewBookRepo(db, log),
		Students:       enrollment.NewStudentRepo(db, log),
		Courses:        enrollment.NewCourseRepo(db, log),
		StudentCourses: enrollment.NewStudentCourseRepo(db, log),
	}
}
