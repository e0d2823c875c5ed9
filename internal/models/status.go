package models

import "time"

var (
	StatusTable  = "status"
	StatusCreate = `CREATE TABLE IF NOT EXISTS status (
		run_id				TEXT	NOT NULL,
		task_id				INTEGER	NOT NULL,
		try_id				INTEGER	NOT NULL,
		task_status_name	TEXT	NOT NULL,
		timestamp			TIMESTAMP	NOT NULL)`
)

// StatusExecDone is the distinguished terminal-success label.
const StatusExecDone = "exec_done"

// StatusLabels enumerates every task state the workflow engine emits.
var StatusLabels = []string{
	"pending",
	"launched",
	"running",
	"joining",
	"running_ended",
	"unsched",
	"unknown",
	StatusExecDone,
	"memo_done",
	"failed",
	"dep_fail",
	"fail_retryable",
}

// Status is one row of the engine-owned status table: a timestamped
// lifecycle label attached to a (task, try) pair.
type Status struct {
	RunID      string    `gorm:"column:run_id;index" json:"run_id"`
	TaskID     int       `gorm:"column:task_id;index" json:"task_id"`
	TryID      int       `gorm:"column:try_id" json:"try_id"`
	StatusName string    `gorm:"column:task_status_name;not null" json:"task_status_name"`
	Timestamp  time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Status) TableName() string {
	return StatusTable
}

type Statuses []*Status
