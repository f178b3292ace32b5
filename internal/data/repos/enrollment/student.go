package enrollment

import (
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type StudentRepo interface {
	store.EntityStore[types.Student]
}

type studentRepo struct {
	*store.Store[types.Student]
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{Store: store.MustNew[types.Student](db, baseLog.With("repo", "StudentRepo"))}
}
