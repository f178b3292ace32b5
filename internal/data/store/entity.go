package store

import (
	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
)

// EntityStore is the per-entity persistence contract every repo embeds.
type EntityStore[T any] interface {
	Table() string
	KeyColumn() string
	Column(name string) (string, bool)

	FindByKey(dbc dbctx.Context, key uuid.UUID) (*T, error)
	FindOne(dbc dbctx.Context, filter Filter) (*T, error)
	FindAll(dbc dbctx.Context, filter Filter) ([]*T, error)
	Count(dbc dbctx.Context, filter Filter) (int64, error)
	Exists(dbc dbctx.Context, filter Filter) (bool, error)

	InsertOne(dbc dbctx.Context, row *T) (*T, error)
	InsertMany(dbc dbctx.Context, rows []*T) ([]*T, error)
	UpdateByKey(dbc dbctx.Context, key uuid.UUID, values map[string]any) (int64, error)
	DeleteWhere(dbc dbctx.Context, filter Filter, allowDeleteAll bool) (int64, error)
}

var _ EntityStore[struct{}] = (*Store[struct{}])(nil)
