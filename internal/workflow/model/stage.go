package model

import (
	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/store"
)

// Stage is one phase of a case workflow. It owns the tasks listed in Tasks:
// deleting the stage deletes them.
type Stage struct {
	BaseModel
	StageType   StageType       `gorm:"type:varchar(50);column:stage_type;not null;index:idx_stages_case_type" json:"stageType"` // SETUP, CONTRACT_PREPARING, ...
	CaseID      uuid.UUID       `gorm:"type:uuid;column:case_id;not null;index:idx_stages_case_type" json:"caseId"`              // Reference to the Case
	Tasks       store.UUIDArray `gorm:"type:jsonb;column:tasks;not null" json:"tasks"`                                           // Task ids in creation order, no duplicates
	StageStatus Status          `gorm:"type:varchar(20);column:stage_status;not null" json:"stageStatus"`                        // NOT_STARTED, PENDING, FINISHED, OVERDUE
}

func (s *Stage) TableName() string {
	return "stages"
}

// AggregateStatus derives a stage status from the statuses of its tasks.
// A stage without tasks has not started.
func AggregateStatus(tasks []Task) Status {
	if len(tasks) == 0 {
		return StatusNotStarted
	}

	finished := 0
	started := false
	for _, task := range tasks {
		switch task.Status {
		case StatusOverdue:
			return StatusOverdue
		case StatusFinished:
			finished++
			started = true
		case StatusPending:
			started = true
		}
	}

	switch {
	case finished == len(tasks):
		return StatusFinished
	case started:
		return StatusPending
	default:
		return StatusNotStarted
	}
}
