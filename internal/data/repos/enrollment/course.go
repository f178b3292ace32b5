package enrollment

import (
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo interface {
	store.EntityStore[types.Course]
}

type courseRepo struct {
	*store.Store[types.Course]
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{Store: store.MustNew[types.Course](db, baseLog.With("repo", "CourseRepo"))}
}
