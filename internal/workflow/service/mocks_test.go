package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/escrowline/backend/internal/store"
	"github.com/escrowline/backend/internal/workflow/model"
)

// MockCaseLookup
type MockCaseLookup struct {
	mock.Mock
}

func (m *MockCaseLookup) CaseExists(ctx context.Context, caseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, caseID)
	return args.Bool(0), args.Error(1)
}

// MockTaskEngine
type MockTaskEngine struct {
	mock.Mock
}

func (m *MockTaskEngine) CreateFromBlueprint(ctx context.Context, bp model.TaskBlueprint) (*model.Task, error) {
	args := m.Called(ctx, bp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskEngine) GetTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskEngine) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockStageRepository
type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Stage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stage), args.Error(1)
}

func (m *MockStageRepository) Put(ctx context.Context, stage *model.Stage) error {
	args := m.Called(ctx, stage)
	return args.Error(0)
}

func (m *MockStageRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockStageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStageRepository) Scan(ctx context.Context, filter store.Filter) ([]model.Stage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stage), args.Error(1)
}
