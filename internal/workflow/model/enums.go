package model

import "github.com/escrowline/backend/internal/enum"

// StageType identifies one phase of a case workflow.
type StageType string

const (
	StageTypeSetup             StageType = "SETUP"
	StageTypeContractPreparing StageType = "CONTRACT_PREPARING"
	StageTypeContractSigning   StageType = "CONTRACT_SIGNING"
	StageTypeMortgage          StageType = "MORTGAGE"
	StageTypeClosing           StageType = "CLOSING"
)

// Status is shared by stages and tasks.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED" // Initial state of every stage and of most generated tasks
	StatusPending    Status = "PENDING"     // Work has started
	StatusFinished   Status = "FINISHED"    // Terminal
	StatusOverdue    Status = "OVERDUE"     // Set externally when a deadline passes before FINISHED
)

// TaskType describes what kind of work a task is.
type TaskType string

const (
	TaskTypeAction  TaskType = "ACTION"  // Something the case handler does
	TaskTypeContact TaskType = "CONTACT" // A message to a counterparty, usually from a template
	TaskTypeUpload  TaskType = "UPLOAD"  // A document that must be uploaded to finish the task
)

// Wire values. Clients send and receive these integers.
var (
	StageTypes = enum.NewTable("stageType", map[StageType]int{
		StageTypeSetup:             0,
		StageTypeContractPreparing: 1,
		StageTypeContractSigning:   2,
		StageTypeMortgage:          3,
		StageTypeClosing:           4,
	})

	Statuses = enum.NewTable("status", map[Status]int{
		StatusNotStarted: 0,
		StatusPending:    1,
		StatusFinished:   2,
		StatusOverdue:    3,
	})

	TaskTypes = enum.NewTable("taskType", map[TaskType]int{
		TaskTypeAction:  0,
		TaskTypeContact: 1,
		TaskTypeUpload:  2,
	})
)

func (s StageType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(StageTypes, s) }

func (s *StageType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(StageTypes, data, s)
}

func (s Status) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(Statuses, s) }

func (s *Status) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(Statuses, data, s)
}

func (t TaskType) MarshalJSON() ([]byte, error) { return enum.MarshalJSON(TaskTypes, t) }

func (t *TaskType) UnmarshalJSON(data []byte) error {
	return enum.UnmarshalJSON(TaskTypes, data, t)
}
