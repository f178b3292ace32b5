package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, email string) *types.User {
	tb.Helper()
	u := &types.User{ID: uuid.New(), Username: username, Email: email}
	if err := tx.WithContext(ctx).Omit("Profile").Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, firstName, phone string) *types.Profile {
	tb.Helper()
	p := &types.Profile{ID: uuid.New(), UserID: userID, FirstName: firstName, LastName: "Tester", PhoneNumber: phone}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedAuthor(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, titles ...string) *types.Author {
	tb.Helper()
	a := &types.Author{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Omit("Books").Create(a).Error; err != nil {
		tb.Fatalf("seed author: %v", err)
	}
	for _, title := range titles {
		b := &types.Book{ID: uuid.New(), AuthorID: a.ID, Title: title}
		if err := tx.WithContext(ctx).Create(b).Error; err != nil {
			tb.Fatalf("seed book: %v", err)
		}
		a.Books = append(a.Books, b)
	}
	return a
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Course {
	tb.Helper()
	c := &types.Course{ID: uuid.New(), Title: title}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, courses ...*types.Course) *types.Student {
	tb.Helper()
	s := &types.Student{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	for _, c := range courses {
		link := &types.StudentCourse{StudentID: s.ID, CourseID: c.ID}
		if err := tx.WithContext(ctx).Omit("Student", "Course").Create(link).Error; err != nil {
			tb.Fatalf("seed student_course: %v", err)
		}
		s.Courses = append(s.Courses, c)
	}
	return s
}

func PtrString(v string) *string { return &v }
