package models

import "time"

var (
	WorkflowTable  = "workflow"
	WorkflowCreate = `CREATE TABLE IF NOT EXISTS workflow (
		run_id					TEXT	PRIMARY KEY,
		workflow_name			TEXT,
		workflow_version		TEXT,
		time_began				TIMESTAMP	NOT NULL,
		time_completed			TIMESTAMP,
		host					TEXT,
		user					TEXT,
		rundir					TEXT,
		tasks_failed_count		INTEGER,
		tasks_completed_count	INTEGER)`
)

// Workflow is one row of the engine-owned workflow table: a single
// end-to-end run. time_began is set at creation and never null;
// time_completed stays null while the run is in flight.
type Workflow struct {
	RunID               string     `gorm:"column:run_id;primaryKey" json:"run_id"`
	WorkflowName        string     `gorm:"column:workflow_name" json:"workflow_name"`
	WorkflowVersion     string     `gorm:"column:workflow_version" json:"workflow_version"`
	TimeBegan           time.Time  `gorm:"column:time_began;not null" json:"time_began"`
	TimeCompleted       *time.Time `gorm:"column:time_completed" json:"time_completed,omitempty"`
	Host                string     `gorm:"column:host" json:"host"`
	User                string     `gorm:"column:user" json:"user"`
	RunDir              string     `gorm:"column:rundir" json:"rundir"`
	TasksFailedCount    int        `gorm:"column:tasks_failed_count" json:"tasks_failed_count"`
	TasksCompletedCount int        `gorm:"column:tasks_completed_count" json:"tasks_completed_count"`
}

func (Workflow) TableName() string {
	return WorkflowTable
}

type Workflows []*Workflow
