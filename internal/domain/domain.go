package domain

import (
	"github.com/yungbote/registrar-backend/internal/domain/enrollment"
	"github.com/yungbote/registrar-backend/internal/domain/library"
	"github.com/yungbote/registrar-backend/internal/domain/user"
)

type User = user.User
type Profile = user.Profile

type Author = library.Author
type Book = library.Book

type Student = enrollment.Student
type Course = enrollment.Course
type StudentCourse = enrollment.StudentCourse

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&User{},
		&Profile{},
		&Author{},
		&Book{},
		&Student{},
		&Course{},
		&StudentCourse{},
	}
}
