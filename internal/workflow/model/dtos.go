package model

import "github.com/google/uuid"

// Enum-valued fields arrive as *int so that a missing value can be told apart
// from the zero symbol; they are cast through the enum tables by the services.

// CreateStageDTO is the request body of POST /v1/stage/create.
type CreateStageDTO struct {
	CaseID    uuid.UUID `json:"caseId" binding:"required"`
	StageType *int      `json:"stageType" binding:"required"`
}

// UpdateStageDTO is the request body of POST /v1/stage/update.
// Fields left nil are not changed.
type UpdateStageDTO struct {
	StageID     uuid.UUID  `json:"stageId" binding:"required"`
	StageStatus *int       `json:"stageStatus,omitempty"`
	NewTaskID   *uuid.UUID `json:"newTaskId,omitempty"`
}

// StageIDDTO is the request body of stage operations that only need the stage id.
type StageIDDTO struct {
	StageID uuid.UUID `json:"stageId" binding:"required"`
}

// CreateTaskDTO is the request body of POST /v1/task/create.
type CreateTaskDTO struct {
	TaskType  *int     `json:"taskType" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Status    *int     `json:"status" binding:"required"`
	Templates []string `json:"templates"`
	FileURL   *string  `json:"fileURL,omitempty"`
}

// UpdateTaskDTO is the request body of POST /v1/task/update.
// Fields left nil are not changed.
type UpdateTaskDTO struct {
	TaskID    uuid.UUID `json:"taskId" binding:"required"`
	Name      *string   `json:"name,omitempty"`
	Status    *int      `json:"status,omitempty"`
	Templates *[]string `json:"templates,omitempty"`
	FileURL   *string   `json:"fileURL,omitempty"`
}

// TaskIDDTO is the request body of POST /v1/task/delete.
type TaskIDDTO struct {
	TaskID uuid.UUID `json:"taskId" binding:"required"`
}

// CreateTemplateDTO is the request body of POST /v1/template/create.
type CreateTemplateDTO struct {
	Title   string `json:"templateTitle" binding:"required"`
	Content string `json:"templateContent" binding:"required"`
}

// UpdateTemplateDTO is the request body of POST /v1/template/update.
type UpdateTemplateDTO struct {
	Title   string  `json:"templateTitle" binding:"required"`
	Content *string `json:"templateContent,omitempty"`
}

// TemplateTitleDTO is the request body of template read and delete.
type TemplateTitleDTO struct {
	Title string `json:"templateTitle" binding:"required"`
}

// RenderTemplateDTO is the request body of POST /v1/template/render.
type RenderTemplateDTO struct {
	Title  string            `json:"templateTitle" binding:"required"`
	Values map[string]string `json:"values"`
}

// RenderedTemplate is the response of a template render.
type RenderedTemplate struct {
	Title   string `json:"templateTitle"`
	Content string `json:"content"`
}
