package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskReminderModel is the GORM-specific struct for the 'task_reminders' table.
// Rows are removed together with their task through the foreign key.
type TaskReminderModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	TaskID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	FireAt          time.Time  `gorm:"type:timestamptz;not null;index:idx_task_reminders_due,priority:2"`
	Timezone        string     `gorm:"type:varchar(64);not null;default:'UTC'"`
	Channel         string     `gorm:"type:varchar(16);not null;default:'push'"`
	RepeatRule      string     `gorm:"type:varchar(16);not null;default:'none'"`
	RepeatEvery     int        `gorm:"not null;default:1;check:repeat_every >= 1"`
	Active          bool       `gorm:"not null;default:true;index:idx_task_reminders_due,priority:1"`
	LastTriggeredAt *time.Time `gorm:"type:timestamptz"`
	ExpiresAt       *time.Time `gorm:"type:timestamptz"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Task TaskModel `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (TaskReminderModel) TableName() string {
	return "task_reminders"
}
