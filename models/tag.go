package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a label scoped to its owner. (UserID, Name) is unique.
type Tag struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID      uuid.UUID `json:"-" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_user_name,priority:1"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_user_name,priority:2"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

func (t *Tag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
