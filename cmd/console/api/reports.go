package api

import (
	"context"
	"fmt"
)

// Run is one runview row returned by the API.
type Run struct {
	RunNum    int    `json:"runnum"`
	RunID     string `json:"run_id"`
	Began     string `json:"began"`
	Completed string `json:"completed"`
	Elapsed   string `json:"elapsed"`
}

// TaskSummary is one resolved summary row returned by the API.
type TaskSummary struct {
	RunNum     int    `json:"runnum"`
	TaskNum    int    `json:"tasknum"`
	TaskID     int    `json:"task_id"`
	Function   string `json:"function"`
	Status     string `json:"status"`
	LastUpdate string `json:"lastUpdate"`
	Fails      int    `json:"fails"`
	TryID      int    `json:"try_id"`
	Hostname   string `json:"hostname"`
}

// Runs fetches every run.
func (c *Client) Runs(ctx context.Context) ([]Run, error) {
	runs := []Run{}
	err := c.get(ctx, c.resolve("/v1/runs"), &runs)
	return runs, err
}

// Tasks fetches the resolved summary rows, optionally for one run.
func (c *Client) Tasks(ctx context.Context, runnum int) ([]TaskSummary, error) {
	query := ""
	if runnum > 0 {
		query = fmt.Sprintf("runnum=%d", runnum)
	}

	tasks := []TaskSummary{}
	err := c.get(ctx, c.resolve("/v1/tasks", query), &tasks)
	return tasks, err
}

// Recent fetches the latest status updates.
func (c *Client) Recent(ctx context.Context, limit int) ([]TaskSummary, error) {
	rows := []TaskSummary{}
	err := c.get(ctx, c.resolve("/v1/status/recent", fmt.Sprintf("limit=%d", limit)), &rows)
	return rows, err
}

// MatrixRow tallies one function's tasks per lifecycle state.
type MatrixRow struct {
	Function string         `json:"function"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

// StatsResponse is the aggregate statistics payload.
type StatsResponse struct {
	Runs          int64       `json:"runs"`
	Tasks         int         `json:"tasks"`
	AvgRunSeconds float64     `json:"avg_run_seconds"`
	Matrix        []MatrixRow `json:"matrix"`
	Totals        MatrixRow   `json:"totals"`
}

// Stats fetches the run aggregates and function status matrix.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	stats := &StatsResponse{}
	err := c.get(ctx, c.resolve("/v1/stats"), stats)
	return stats, err
}
