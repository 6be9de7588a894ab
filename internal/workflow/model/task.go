package model

import (
	"github.com/escrowline/backend/internal/store"
)

// Task is one unit of work inside a stage.
type Task struct {
	BaseModel
	TaskType  TaskType          `gorm:"type:varchar(20);column:task_type;not null" json:"taskType"` // ACTION, CONTACT, UPLOAD
	Name      string            `gorm:"type:varchar(255);column:name;not null" json:"name"`         // Human-readable task name
	Status    Status            `gorm:"type:varchar(20);column:status;not null" json:"status"`      // NOT_STARTED, PENDING, FINISHED, OVERDUE
	Templates store.StringArray `gorm:"type:jsonb;column:templates;not null" json:"templates"`      // Titles of templates that exist in the template store
	FileURL   *string           `gorm:"type:text;column:file_url" json:"fileURL,omitempty"`         // Set when an UPLOAD task receives its document
}

func (t *Task) TableName() string {
	return "tasks"
}
