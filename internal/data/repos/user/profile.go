package user

import (
	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	store.EntityStore[types.Profile]
	GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Profile, error)
	DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type profileRepo struct {
	*store.Store[types.Profile]
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{Store: store.MustNew[types.Profile](db, repoLog), log: repoLog}
}

func (r *profileRepo) GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Profile, error) {
	if len(userIDs) == 0 {
		return []*types.Profile{}, nil
	}
	return r.FindAll(dbc, store.Filter{"user_id": userIDs})
}

func (r *profileRepo) DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	return r.DeleteWhere(dbc, store.Filter{"user_id": userID}, false)
}
