package db

import (
	types "github.com/yungbote/registrar-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates or widens every table, including FK constraints with ON DELETE CASCADE.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}
