package models

import "time"

var (
	BlockTable  = "block"
	BlockCreate = `CREATE TABLE IF NOT EXISTS block (
		run_id			TEXT	NOT NULL,
		block_id		TEXT	NOT NULL,
		executor_label	TEXT,
		status			TEXT,
		timestamp		TIMESTAMP)`
)

// Block is one row of the engine-owned block table (executor resource
// blocks). Present in the monitoring schema but unused by the views;
// modeled so fixtures can reproduce a complete database file.
type Block struct {
	RunID         string     `gorm:"column:run_id;index" json:"run_id"`
	BlockID       string     `gorm:"column:block_id" json:"block_id"`
	ExecutorLabel string     `gorm:"column:executor_label" json:"executor_label"`
	Status        string     `gorm:"column:status" json:"status"`
	Timestamp     *time.Time `gorm:"column:timestamp" json:"timestamp,omitempty"`
}

func (Block) TableName() string {
	return BlockTable
}

type Blocks []*Block
