package user

import (
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo interface {
	store.EntityStore[types.User]
}

type userRepo struct {
	*store.Store[types.User]
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{Store: store.MustNew[types.User](db, baseLog.With("repo", "UserRepo"))}
}
