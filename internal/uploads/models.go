package uploads

import (
	"github.com/google/uuid"
)

// Document describes a stored file attached to an UPLOAD task
type Document struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	MimeType string    `json:"mimeType"`
	TaskID   uuid.UUID `json:"taskId"`
}
