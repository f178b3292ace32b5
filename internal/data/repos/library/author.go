package library

import (
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AuthorRepo interface {
	store.EntityStore[types.Author]
}

type authorRepo struct {
	*store.Store[types.Author]
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	return &authorRepo{Store: store.MustNew[types.Author](db, baseLog.With("repo", "AuthorRepo"))}
}
