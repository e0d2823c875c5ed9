package task

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
	"github.com/wfstat-cloud/wfstat/internal/snapshot"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"gorm.io/gorm"
)

type Task interface {
	WithDatabase(*gorm.DB) Task
	List(*ListRequest) ([]resolve.SummaryRow, error)
	History(tasknum int) ([]resolve.SummaryRow, error)
	Recent(limit int) ([]resolve.SummaryRow, error)
	NonCached() ([]resolve.NCTaskRow, error)
	NonDispatched() ([]resolve.NDTaskRow, error)
}

type taskService struct {
	ctx context.Context
	db  *gorm.DB
}

func Service(ctx context.Context) Task {
	return &taskService{
		ctx: ctx,
		db:  db.Connection(),
	}
}

func (t *taskService) WithDatabase(conn *gorm.DB) Task {
	t.db = conn
	return t
}

// ListRequest narrows the summary rows returned by List. A zero value
// leaves its filter unset. Function accepts doublestar glob patterns.
type ListRequest struct {
	RunNum   int
	TaskNum  int
	TaskID   int
	Status   string
	Function string
	Limit    int
	Extended bool
}

func (req *ListRequest) matches(row resolve.SummaryRow) bool {
	if req.RunNum != 0 && row.RunNum != req.RunNum {
		return false
	}
	if req.TaskNum != 0 && row.TaskNum != req.TaskNum {
		return false
	}
	if req.TaskID != 0 && row.TaskID != req.TaskID {
		return false
	}
	if req.Status != "" && row.Status != req.Status {
		return false
	}
	if req.Function != "" {
		ok, err := doublestar.Match(req.Function, row.Function)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// List resolves the current status of every cached task and applies
// the request filters, ordered by task ordinal ascending.
func (t *taskService) List(req *ListRequest) ([]resolve.SummaryRow, error) {
	snap, err := snapshot.Load(t.db.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}

	rows := []resolve.SummaryRow{}
	for _, row := range resolve.Summary(snap.Attempts()) {
		if !req.matches(row) {
			continue
		}
		if !req.Extended {
			row.Depends, row.Stdout = "", ""
		}
		rows = append(rows, row)
		if req.Limit > 0 && len(rows) == req.Limit {
			break
		}
	}
	return rows, nil
}

// History returns every status event of one task, oldest first.
func (t *taskService) History(tasknum int) ([]resolve.SummaryRow, error) {
	snap, err := snapshot.Load(t.db.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}
	return resolve.History(snap.Attempts(), tasknum), nil
}

// Recent returns the latest status events across all tasks, newest
// first.
func (t *taskService) Recent(limit int) ([]resolve.SummaryRow, error) {
	snap, err := snapshot.Load(t.db.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}
	return resolve.Recent(snap.Attempts(), limit), nil
}

// NonCached returns the latest invocation of every non-cacheable
// task, grouped by function name per run.
func (t *taskService) NonCached() ([]resolve.NCTaskRow, error) {
	snap, err := snapshot.Load(t.db.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}
	return resolve.AggregateUncached(snap.Runs(), snap.Tasks), nil
}

// NonDispatched returns memoizable tasks that never got a hashsum.
func (t *taskService) NonDispatched() ([]resolve.NDTaskRow, error) {
	snap, err := snapshot.Load(t.db.WithContext(t.ctx))
	if err != nil {
		return nil, err
	}
	return resolve.NonDispatched(snap.Runs(), snap.Tasks), nil
}
