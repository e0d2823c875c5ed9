package models

import "time"

var (
	TryTable  = "try"
	TryCreate = `CREATE TABLE IF NOT EXISTS try (
		run_id					TEXT	NOT NULL,
		task_id					INTEGER	NOT NULL,
		try_id					INTEGER	NOT NULL,
		hostname				TEXT,
		task_try_time_launched	TIMESTAMP,
		task_try_time_running	TIMESTAMP,
		task_try_time_returned	TIMESTAMP,
		PRIMARY KEY (run_id, task_id, try_id))`
)

// Try is one row of the engine-owned try table: a single execution
// attempt of a task. All timestamps may be null while the attempt is
// queued, waiting or running.
type Try struct {
	RunID        string     `gorm:"column:run_id;primaryKey" json:"run_id"`
	TaskID       int        `gorm:"column:task_id;primaryKey" json:"task_id"`
	TryID        int        `gorm:"column:try_id;primaryKey" json:"try_id"`
	Hostname     string     `gorm:"column:hostname" json:"hostname"`
	TimeLaunched *time.Time `gorm:"column:task_try_time_launched" json:"task_try_time_launched,omitempty"`
	TimeRunning  *time.Time `gorm:"column:task_try_time_running" json:"task_try_time_running,omitempty"`
	TimeReturned *time.Time `gorm:"column:task_try_time_returned" json:"task_try_time_returned,omitempty"`
}

func (Try) TableName() string {
	return TryTable
}

type Tries []*Try
