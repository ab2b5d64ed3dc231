package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ToDo references its list by id only; deleting the list leaves the
// to-do in place.
type ToDo struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Content     string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	TaskListID  uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (ToDo) TableName() string {
	return "todos"
}

func (t *ToDo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ToDoPatch carries the fields of an update. IsCompleted is always
// written; Content only when set.
type ToDoPatch struct {
	Content     *string
	IsCompleted bool
}
