package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxIdeaNameLength        = 100
	MaxIdeaDescriptionLength = 1000
)

// Idea is a user-owned work item. TagIDs keeps plain references, so deleting
// a tag leaves a dangling id behind rather than rewriting ideas.
type Idea struct {
	ID           uuid.UUID                      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID       uuid.UUID                      `json:"-" db:"user_id" gorm:"type:uuid;not null;index:idx_idea_user_status,priority:1"`
	IdeaName     string                         `json:"ideaName" db:"idea_name" gorm:"type:text;not null"`
	Description  string                         `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Status       Status                         `json:"status" db:"status" gorm:"type:text;not null;default:'idea';index:idx_idea_user_status,priority:2"`
	AssignedToID *uuid.UUID                     `json:"-" db:"assigned_to_id" gorm:"type:uuid;index"`
	TagIDs       datatypes.JSONSlice[uuid.UUID] `json:"-" db:"tag_ids" gorm:"column:tag_ids"`
	CreatedAt    time.Time                      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time                      `json:"updatedAt" db:"updated_at"`

	AssignedTo *User `json:"-" gorm:"foreignKey:AssignedToID;references:ID;constraint:OnDelete:SET NULL"`
}

func (i *Idea) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = StatusIdea
	}
	if i.TagIDs == nil {
		i.TagIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	return nil
}
