package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID               uuid.UUID  `gorm:"primaryKey;type:uuid"`
	Title            string     `gorm:"size:200;not null"`
	Description      string     `gorm:"size:1000"`
	IsCompleted      bool       `gorm:"default:false;index"`
	CreatedAt        time.Time  `gorm:"index"`
	DueDate          *time.Time `gorm:"index"`
	Priority         *int
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"` // creator, immutable
	AssignedToUserID *uuid.UUID `gorm:"type:uuid;index"`

	// Relations (read-only, loaded with Preload)
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	AssignedToUser *User      `gorm:"foreignKey:AssignedToUserID;constraint:OnDelete:SET NULL"`
	Categories     []Category `gorm:"many2many:task_categories;joinForeignKey:TaskID;joinReferences:CategoryID"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsVisibleTo ผู้สร้างหรือผู้ได้รับมอบหมายเท่านั้นที่เห็น task
func (t *Task) IsVisibleTo(userID uuid.UUID) bool {
	return t.UserID == userID || (t.AssignedToUserID != nil && *t.AssignedToUserID == userID)
}

// IsCreator ลบ task ได้เฉพาะผู้สร้าง
func (t *Task) IsCreator(userID uuid.UUID) bool {
	return t.UserID == userID
}

// TaskCategory is the explicit join row between a task and a category.
type TaskCategory struct {
	TaskID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	CategoryID uuid.UUID `gorm:"primaryKey;type:uuid;index"`
}

func (TaskCategory) TableName() string {
	return "task_categories"
}
