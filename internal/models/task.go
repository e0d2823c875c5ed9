package models

import "time"

var (
	TaskTable = "task"

	// TaskCreate reflects the pre-migration schema; maintenance.Migrate
	// adds the task_fail_cost column to databases built from it.
	TaskCreate = `CREATE TABLE IF NOT EXISTS task (
		run_id				TEXT	NOT NULL,
		task_id				INTEGER	NOT NULL,
		task_depends		TEXT,
		task_func_name		TEXT	NOT NULL,
		task_memoize		INTEGER	NOT NULL DEFAULT 0,
		task_hashsum		TEXT,
		task_fail_count		INTEGER	NOT NULL DEFAULT 0,
		task_time_invoked	TIMESTAMP,
		task_time_returned	TIMESTAMP,
		task_stdout			TEXT,
		task_stderr			TEXT,
		PRIMARY KEY (run_id, task_id))`
)

// Task is one row of the engine-owned task table: a logical unit of
// work within a run. Tasks sharing a non-null hashsum are duplicate
// invocations of the same cacheable work.
type Task struct {
	RunID        string     `gorm:"column:run_id;primaryKey" json:"run_id"`
	TaskID       int        `gorm:"column:task_id;primaryKey" json:"task_id"`
	Depends      string     `gorm:"column:task_depends" json:"task_depends"`
	FuncName     string     `gorm:"column:task_func_name;not null" json:"task_func_name"`
	Memoize      bool       `gorm:"column:task_memoize;not null" json:"task_memoize"`
	Hashsum      *string    `gorm:"column:task_hashsum" json:"task_hashsum,omitempty"`
	FailCount    int        `gorm:"column:task_fail_count;not null" json:"task_fail_count"`
	TimeInvoked  *time.Time `gorm:"column:task_time_invoked" json:"task_time_invoked,omitempty"`
	TimeReturned *time.Time `gorm:"column:task_time_returned" json:"task_time_returned,omitempty"`
	Stdout       string     `gorm:"column:task_stdout" json:"task_stdout"`
	Stderr       string     `gorm:"column:task_stderr" json:"task_stderr"`
}

func (Task) TableName() string {
	return TaskTable
}

type Tasks []*Task
