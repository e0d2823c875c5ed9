package stats

import (
	"context"
	"sort"

	"github.com/wfstat-cloud/wfstat/internal/models"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
	"github.com/wfstat-cloud/wfstat/internal/snapshot"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"gorm.io/gorm"
)

// StatsResponse is the top-level statistics payload.
type StatsResponse struct {
	Runs          int64       `json:"runs"`
	Tasks         int         `json:"tasks"`
	AvgRunSeconds float64     `json:"avg_run_seconds"`
	Matrix        []MatrixRow `json:"matrix"`
	Totals        MatrixRow   `json:"totals"`
}

// MatrixRow tallies one function's tasks per lifecycle state.
type MatrixRow struct {
	Function string         `json:"function"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

// Service provides statistics queries.
type Service struct {
	ctx context.Context
	db  *gorm.DB
}

// New creates a Service with the default DB connection.
func New(ctx context.Context) *Service {
	return &Service{ctx: ctx, db: db.Connection()}
}

// WithDatabase swaps the connection, for tests.
func (s *Service) WithDatabase(conn *gorm.DB) *Service {
	s.db = conn
	return s
}

// durationExpr returns a SQL expression computing the run duration in
// seconds. Dialect-aware: postgres uses EXTRACT(EPOCH FROM ...),
// sqlite uses JULIANDAY arithmetic.
func (s *Service) durationExpr() string {
	if s.db.Dialector.Name() == "postgres" {
		return "EXTRACT(EPOCH FROM (time_completed - time_began))"
	}
	return "(JULIANDAY(time_completed) - JULIANDAY(time_began)) * 86400"
}

// Get computes the run aggregates and the function x status matrix.
func (s *Service) Get() (*StatsResponse, error) {
	resp := &StatsResponse{}
	q := s.db.WithContext(s.ctx)

	if err := q.Model(&models.Workflow{}).Count(&resp.Runs).Error; err != nil {
		return nil, err
	}

	var avgResult struct{ Avg float64 }
	err := q.Model(&models.Workflow{}).
		Select("AVG(" + s.durationExpr() + ") as avg").
		Where("time_completed IS NOT NULL").
		Scan(&avgResult).Error
	if err != nil {
		return nil, err
	}
	resp.AvgRunSeconds = avgResult.Avg

	snap, err := snapshot.Load(q)
	if err != nil {
		return nil, err
	}

	resp.Matrix, resp.Totals = matrix(resolve.Summary(snap.Attempts()))
	for _, row := range resp.Matrix {
		resp.Tasks += row.Total
	}

	return resp, nil
}

func matrix(rows []resolve.SummaryRow) ([]MatrixRow, MatrixRow) {
	byFunction := map[string]*MatrixRow{}
	totals := MatrixRow{Function: "TOTAL", Counts: map[string]int{}}

	for _, row := range rows {
		m, ok := byFunction[row.Function]
		if !ok {
			m = &MatrixRow{Function: row.Function, Counts: map[string]int{}}
			byFunction[row.Function] = m
		}
		m.Counts[row.Status]++
		m.Total++
		totals.Counts[row.Status]++
		totals.Total++
	}

	out := make([]MatrixRow, 0, len(byFunction))
	for _, m := range byFunction {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Function < out[j].Function
	})
	return out, totals
}
