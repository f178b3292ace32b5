package library

import (
	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BookRepo interface {
	store.EntityStore[types.Book]
	GetByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) ([]*types.Book, error)
	DeleteByAuthorID(dbc dbctx.Context, authorID uuid.UUID) (int64, error)
}

type bookRepo struct {
	*store.Store[types.Book]
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{Store: store.MustNew[types.Book](db, baseLog.With("repo", "BookRepo"))}
}

// GetByAuthorIDs returns books ordered by title.
func (r *bookRepo) GetByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) ([]*types.Book, error) {
	out := []*types.Book{}
	if len(authorIDs) == 0 {
		return out, nil
	}
	err := dbc.DB(r.DB()).
		Where("author_id IN ?", authorIDs).
		Order("title ASC").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, r.Translate("GetByAuthorIDs", err)
	}
	return out, nil
}

func (r *bookRepo) DeleteByAuthorID(dbc dbctx.Context, authorID uuid.UUID) (int64, error) {
	return r.DeleteWhere(dbc, store.Filter{"author_id": authorID}, false)
}
