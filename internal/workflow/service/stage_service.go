package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/enum"
	"github.com/escrowline/backend/internal/store"
	"github.com/escrowline/backend/internal/workflow/model"
)

// StageRepository is the keyed store of stages.
type StageRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Stage, error)
	Put(ctx context.Context, stage *model.Stage) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context, filter store.Filter) ([]model.Stage, error)
}

// TaskEngine creates and removes the tasks a stage owns.
type TaskEngine interface {
	CreateFromBlueprint(ctx context.Context, bp model.TaskBlueprint) (*model.Task, error)
	GetTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

// CaseLookup reports whether a case exists.
type CaseLookup interface {
	CaseExists(ctx context.Context, caseID uuid.UUID) (bool, error)
}

// NewStageStore returns the gorm backed StageRepository.
func NewStageStore(db *gorm.DB) *store.Table[uuid.UUID, model.Stage] {
	return store.NewTable(db, "id", func(s *model.Stage) uuid.UUID { return s.ID })
}

// StageService orchestrates stages and the tasks they own.
//
// Stage creation and deletion touch several records without a transaction.
// A failure part way through leaves the records written so far in place:
// orphan tasks after a failed create, and a stage that still lists already
// deleted tasks after a failed delete.
type StageService struct {
	stages StageRepository
	tasks  TaskEngine
	cases  CaseLookup
}

func NewStageService(stages StageRepository, tasks TaskEngine, cases CaseLookup) *StageService {
	return &StageService{stages: stages, tasks: tasks, cases: cases}
}

// CreateStage creates the stage of type stageType for a case together with
// the tasks configured for that stage type. The stage always starts NOT_STARTED.
func (s *StageService) CreateStage(ctx context.Context, caseID uuid.UUID, stageType int) (*model.Stage, error) {
	exists, err := s.cases.CaseExists(ctx, caseID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up case")
	}
	if !exists {
		return nil, apperr.NotFound("CaseId not found")
	}

	symbol, ok := enum.CastIntToEnum(model.StageTypes, stageType)
	if !ok {
		return nil, apperr.Validation("invalid stageType %d", stageType)
	}

	existing, err := s.findStages(ctx, caseID, symbol, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperr.Conflict("Stage already exists")
	}

	blueprints := model.TaskBlueprintsFor(symbol)
	taskIDs := make(store.UUIDArray, 0, len(blueprints))
	for _, bp := range blueprints {
		task, err := s.tasks.CreateFromBlueprint(ctx, bp)
		if err != nil {
			slog.ErrorContext(ctx, "stage task creation failed",
				"caseId", caseID, "stageType", symbol, "task", bp.Name, "orphanedTasks", len(taskIDs), "error", err)
			return nil, apperr.Internal(err, "failed to create tasks for stage")
		}
		taskIDs = append(taskIDs, task.ID)
	}

	stage := &model.Stage{
		StageType:   symbol,
		CaseID:      caseID,
		Tasks:       taskIDs,
		StageStatus: model.StatusNotStarted,
	}
	if err := s.stages.Put(ctx, stage); err != nil {
		slog.ErrorContext(ctx, "stage creation failed", "caseId", caseID, "stageType", symbol, "orphanedTasks", len(taskIDs), "error", err)
		return nil, apperr.Internal(err, "failed to create stage")
	}

	slog.InfoContext(ctx, "stage created", "stageId", stage.ID, "caseId", caseID, "stageType", symbol, "tasks", len(taskIDs))
	return stage, nil
}

// ReadStage returns the stage of type stageType for a case. Should several
// exist, the oldest one is returned.
func (s *StageService) ReadStage(ctx context.Context, caseID uuid.UUID, stageType int) (*model.Stage, error) {
	symbol, ok := enum.CastIntToEnum(model.StageTypes, stageType)
	if !ok {
		return nil, apperr.Validation("invalid stageType %d", stageType)
	}

	stages, err := s.findStages(ctx, caseID, symbol, 1)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, apperr.NotFound("Stage not found")
	}
	return &stages[0], nil
}

// ListStages returns every stage of a case ordered by stage type.
func (s *StageService) ListStages(ctx context.Context, caseID uuid.UUID) ([]model.Stage, error) {
	stages, err := s.stages.Scan(ctx, store.Filter{
		Where: map[string]any{"case_id": caseID},
		Order: "created_at ASC",
	})
	if err != nil {
		return nil, apperr.Internal(err, "failed to list stages")
	}

	sort.SliceStable(stages, func(i, j int) bool {
		a, _ := model.StageTypes.Value(stages[i].StageType)
		b, _ := model.StageTypes.Value(stages[j].StageType)
		return a < b
	})
	return stages, nil
}

// UpdateStage sets the status of a stage and/or appends a task to it.
// newTaskID is appended only when the stage does not list it yet; it is not
// checked against the task store.
func (s *StageService) UpdateStage(ctx context.Context, req *model.UpdateStageDTO) (*model.Stage, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	stage, err := s.getStage(ctx, req.StageID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if req.StageStatus != nil {
		status, ok := enum.CastIntToEnum(model.Statuses, *req.StageStatus)
		if !ok {
			return nil, apperr.Validation("invalid stageStatus %d", *req.StageStatus)
		}
		fields["stage_status"] = status
	}
	if req.NewTaskID != nil && !stage.Tasks.Contains(*req.NewTaskID) {
		tasks := make(store.UUIDArray, 0, len(stage.Tasks)+1)
		tasks = append(tasks, stage.Tasks...)
		fields["tasks"] = append(tasks, *req.NewTaskID)
	}

	if len(fields) == 0 {
		return stage, nil
	}
	if err := s.stages.Update(ctx, req.StageID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Stage not found")
		}
		return nil, apperr.Internal(err, "failed to update stage")
	}
	return s.getStage(ctx, req.StageID)
}

// DeleteStage deletes every task of a stage in order and then the stage.
// If a task cannot be deleted the stage is kept.
func (s *StageService) DeleteStage(ctx context.Context, stageID uuid.UUID) error {
	stage, err := s.getStage(ctx, stageID)
	if err != nil {
		return err
	}

	for i, taskID := range stage.Tasks {
		if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
			slog.ErrorContext(ctx, "stage task deletion failed",
				"stageId", stageID, "taskId", taskID, "deletedTasks", i, "error", err)
			return apperr.Internal(err, "failed to delete task %s of stage", taskID)
		}
	}

	if err := s.stages.Delete(ctx, stageID); err != nil {
		return apperr.Internal(err, "failed to delete stage")
	}

	slog.InfoContext(ctx, "stage deleted", "stageId", stageID, "tasks", len(stage.Tasks))
	return nil
}

// syncRank orders the statuses a sync may move a stage through. OVERDUE is
// handled separately.
var syncRank = map[model.Status]int{
	model.StatusNotStarted: 0,
	model.StatusPending:    1,
	model.StatusFinished:   2,
}

// SyncStageStatus recomputes a stage status from its tasks. A sync only moves
// a stage forward: FINISHED is terminal, and an OVERDUE stage only leaves
// OVERDUE once all tasks finish. Listed ids without a stored task count as
// not started.
func (s *StageService) SyncStageStatus(ctx context.Context, stageID uuid.UUID) (*model.Stage, error) {
	stage, err := s.getStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.StageStatus == model.StatusFinished {
		return stage, nil
	}

	tasks, err := s.tasks.GetTasks(ctx, stage.Tasks)
	if err != nil {
		return nil, err
	}
	if missing := len(stage.Tasks) - len(tasks); missing > 0 {
		slog.WarnContext(ctx, "stage lists tasks that do not exist", "stageId", stageID, "missing", missing)
		for i := 0; i < missing; i++ {
			tasks = append(tasks, model.Task{Status: model.StatusNotStarted})
		}
	}

	status := model.AggregateStatus(tasks)
	switch {
	case stage.StageStatus == model.StatusOverdue && status != model.StatusFinished:
		status = model.StatusOverdue
	case status != model.StatusOverdue && syncRank[status] < syncRank[stage.StageStatus]:
		status = stage.StageStatus
	}
	if status == stage.StageStatus {
		return stage, nil
	}

	if err := s.stages.Update(ctx, stageID, map[string]any{"stage_status": status}); err != nil {
		return nil, apperr.Internal(err, "failed to update stage status")
	}
	slog.InfoContext(ctx, "stage status synced", "stageId", stageID, "from", stage.StageStatus, "to", status)
	stage.StageStatus = status
	return stage, nil
}

func (s *StageService) getStage(ctx context.Context, stageID uuid.UUID) (*model.Stage, error) {
	stage, err := s.stages.Get(ctx, stageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Stage not found")
		}
		return nil, apperr.Internal(err, "failed to retrieve stage")
	}
	return stage, nil
}

func (s *StageService) findStages(ctx context.Context, caseID uuid.UUID, stageType model.StageType, limit int) ([]model.Stage, error) {
	stages, err := s.stages.Scan(ctx, store.Filter{
		Where: map[string]any{"case_id": caseID, "stage_type": stageType},
		Order: "created_at ASC",
		Limit: limit,
	})
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up stage")
	}
	return stages, nil
}
