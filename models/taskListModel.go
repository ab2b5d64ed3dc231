package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskList struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time

	Members []TaskListMember `gorm:"foreignKey:TaskListID;constraint:OnDelete:CASCADE"`
}

// TaskListMember is one entry of a list's member set. The composite
// primary key makes "add if absent" a single insert.
type TaskListMember struct {
	TaskListID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	JoinedAt   time.Time `gorm:"autoCreateTime"`
}

func (l *TaskList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// UserIDs returns member ids in join order.
func (l *TaskList) UserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l.Members))
	for _, m := range l.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func (l *TaskList) HasMember(userID uuid.UUID) bool {
	for _, m := range l.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
