package model

import (
	"strings"
	"time"
)

// Template is a named, reusable text body referenced by title from tasks.
// Placeholders are written as {{key}}.
type Template struct {
	Title     string    `gorm:"type:varchar(255);column:title;primaryKey" json:"templateTitle"`
	Content   string    `gorm:"type:text;column:content;not null" json:"templateContent"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (t *Template) TableName() string {
	return "templates"
}

// Render substitutes every {{key}} placeholder with values[key]. Placeholders
// without a value are left as they are.
func (t *Template) Render(values map[string]string) string {
	if len(values) == 0 {
		return t.Content
	}
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(t.Content)
}
