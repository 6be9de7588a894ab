package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/enum"
	"github.com/escrowline/backend/internal/store"
	"github.com/escrowline/backend/internal/workflow/model"
)

// TemplateResolver keeps only the template titles that exist in the template store.
type TemplateResolver interface {
	FilterExistingTitles(ctx context.Context, titles []string) ([]string, error)
}

type TaskService struct {
	tasks     *store.Table[uuid.UUID, model.Task]
	templates TemplateResolver
}

func NewTaskService(db *gorm.DB, templates TemplateResolver) *TaskService {
	return &TaskService{
		tasks:     store.NewTable(db, "id", func(t *model.Task) uuid.UUID { return t.ID }),
		templates: templates,
	}
}

// CreateTask creates a standalone task from a client request. Template titles
// that do not exist are silently dropped.
func (s *TaskService) CreateTask(ctx context.Context, req *model.CreateTaskDTO) (*model.Task, error) {
	if req == nil {
		return nil, apperr.Validation("create request cannot be nil")
	}
	if req.TaskType == nil {
		return nil, apperr.Validation("taskType is required")
	}
	taskType, ok := enum.CastIntToEnum(model.TaskTypes, *req.TaskType)
	if !ok {
		return nil, apperr.Validation("invalid taskType %d", *req.TaskType)
	}
	if req.Status == nil {
		return nil, apperr.Validation("status is required")
	}
	status, ok := enum.CastIntToEnum(model.Statuses, *req.Status)
	if !ok {
		return nil, apperr.Validation("invalid status %d", *req.Status)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	templates, err := s.templates.FilterExistingTitles(ctx, req.Templates)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		TaskType:  taskType,
		Name:      req.Name,
		Status:    status,
		Templates: templates,
		FileURL:   req.FileURL,
	}
	if err := s.tasks.Put(ctx, task); err != nil {
		return nil, apperr.Internal(err, "failed to create task")
	}

	slog.InfoContext(ctx, "task created", "taskId", task.ID, "taskType", task.TaskType)
	return task, nil
}

// CreateFromBlueprint creates the task described by a stage blueprint.
func (s *TaskService) CreateFromBlueprint(ctx context.Context, bp model.TaskBlueprint) (*model.Task, error) {
	templates, err := s.templates.FilterExistingTitles(ctx, bp.Templates)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		TaskType:  bp.TaskType,
		Name:      bp.Name,
		Status:    bp.Status,
		Templates: templates,
	}
	if err := s.tasks.Put(ctx, task); err != nil {
		return nil, apperr.Internal(err, "failed to create task %q", bp.Name)
	}
	return task, nil
}

// GetTask retrieves a task by its ID.
func (s *TaskService) GetTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, apperr.Internal(err, "failed to retrieve task")
	}
	return task, nil
}

// GetTasks retrieves the tasks with the given IDs in the same order.
// IDs without a stored task are skipped.
func (s *TaskService) GetTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error) {
	tasks, err := s.tasks.BatchGet(ctx, taskIDs)
	if err != nil {
		return nil, apperr.Internal(err, "failed to retrieve tasks")
	}
	return tasks, nil
}

// UpdateTask applies the non-nil fields of req. Every field is validated
// before anything is written.
func (s *TaskService) UpdateTask(ctx context.Context, req *model.UpdateTaskDTO) (*model.Task, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	if _, err := s.GetTask(ctx, req.TaskID); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		fields["name"] = *req.Name
	}
	if req.Status != nil {
		status, ok := enum.CastIntToEnum(model.Statuses, *req.Status)
		if !ok {
			return nil, apperr.Validation("invalid status %d", *req.Status)
		}
		fields["status"] = status
	}
	if req.Templates != nil {
		templates, err := s.templates.FilterExistingTitles(ctx, *req.Templates)
		if err != nil {
			return nil, err
		}
		fields["templates"] = store.StringArray(templates)
	}
	if req.FileURL != nil {
		fields["file_url"] = *req.FileURL
	}

	if err := s.tasks.Update(ctx, req.TaskID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, apperr.Internal(err, "failed to update task")
	}
	return s.GetTask(ctx, req.TaskID)
}

// CompleteUpload records the document of an UPLOAD task and finishes it.
func (s *TaskService) CompleteUpload(ctx context.Context, taskID uuid.UUID, fileURL string) (*model.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.TaskType != model.TaskTypeUpload {
		return nil, apperr.Validation("task %s is not an UPLOAD task", taskID)
	}

	fields := map[string]any{
		"file_url": fileURL,
		"status":   model.StatusFinished,
	}
	if err := s.tasks.Update(ctx, taskID, fields); err != nil {
		return nil, apperr.Internal(err, "failed to record upload")
	}

	slog.InfoContext(ctx, "upload task completed", "taskId", taskID)
	return s.GetTask(ctx, taskID)
}

// DeleteTask removes a task. It does not detach the task from stages that list it.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Task not found")
		}
		return apperr.Internal(err, "failed to delete task")
	}
	return nil
}
