package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	FirstName   string    `gorm:"uniqueIndex;not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"size:50;not null;column:last_name" json:"last_name"`
	PhoneNumber string    `gorm:"uniqueIndex;not null;column:phone_number" json:"phone_number"`
	Bio         *string   `gorm:"type:text;column:bio" json:"bio,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
