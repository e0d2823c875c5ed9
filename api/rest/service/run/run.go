package run

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
	"github.com/wfstat-cloud/wfstat/internal/snapshot"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no run carries the requested ordinal.
var ErrNotFound = errors.New("run not found")

type Run interface {
	WithDatabase(*gorm.DB) Run
	List() ([]resolve.RunRow, error)
	Get(runnum int) (*Detail, error)
}

type runService struct {
	ctx context.Context
	db  *gorm.DB
}

func Service(ctx context.Context) Run {
	return &runService{
		ctx: ctx,
		db:  db.Connection(),
	}
}

func (r *runService) WithDatabase(conn *gorm.DB) Run {
	r.db = conn
	return r
}

// Detail is the per-run workflow summary: the runview row joined back
// to the workflow record it came from.
type Detail struct {
	resolve.RunRow
	WorkflowName    string `json:"workflow_name"`
	WorkflowVersion string `json:"workflow_version"`
	Host            string `json:"host"`
	User            string `json:"user"`
	RunDir          string `json:"rundir"`
	TasksCompleted  int    `json:"tasks_completed"`
	TasksFailed     int    `json:"tasks_failed"`
	Current         bool   `json:"current"` // highest ordinal in the set
}

// List returns every run with its ordinal, ascending.
func (r *runService) List() ([]resolve.RunRow, error) {
	snap, err := snapshot.Load(r.db.WithContext(r.ctx))
	if err != nil {
		return nil, err
	}
	return snap.Runs(), nil
}

// Get returns the workflow summary for one run ordinal. A runnum of
// zero selects the most recent run.
func (r *runService) Get(runnum int) (*Detail, error) {
	snap, err := snapshot.Load(r.db.WithContext(r.ctx))
	if err != nil {
		return nil, err
	}

	runs := snap.Runs()
	if len(runs) == 0 {
		return nil, ErrNotFound
	}

	if runnum == 0 {
		runnum = runs[len(runs)-1].RunNum
	}

	for _, row := range runs {
		if row.RunNum != runnum {
			continue
		}
		for _, w := range snap.Workflows {
			if w.RunID != row.RunID {
				continue
			}
			return &Detail{
				RunRow:          row,
				WorkflowName:    w.WorkflowName,
				WorkflowVersion: w.WorkflowVersion,
				Host:            w.Host,
				User:            w.User,
				RunDir:          w.RunDir,
				TasksCompleted:  w.TasksCompletedCount,
				TasksFailed:     w.TasksFailedCount,
				Current:         row.RunNum == runs[len(runs)-1].RunNum,
			}, nil
		}
	}

	return nil, ErrNotFound
}
