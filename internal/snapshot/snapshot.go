// Package snapshot loads immutable copies of the monitoring tables
// for the resolve cascade. Derived rows are recomputed from a fresh
// snapshot on every query; nothing is cached or written back.
package snapshot

import (
	"github.com/pkg/errors"
	"github.com/wfstat-cloud/wfstat/internal/models"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
	"gorm.io/gorm"
)

// Snapshot holds one consistent read of the raw tables.
type Snapshot struct {
	Workflows models.Workflows
	Tasks     models.Tasks
	Tries     models.Tries
	Statuses  models.Statuses
}

// Load reads all four raw tables.
func Load(q *gorm.DB) (*Snapshot, error) {
	s := &Snapshot{}

	if err := q.Find(&s.Workflows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load workflow table")
	}
	if err := q.Find(&s.Tasks).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load task table")
	}
	if err := q.Find(&s.Tries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load try table")
	}
	if err := q.Find(&s.Statuses).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load status table")
	}

	return s, nil
}

// Runs enumerates the snapshot's runs.
func (s *Snapshot) Runs() []resolve.RunRow {
	return resolve.EnumerateRuns(s.Workflows)
}

// CachedTasks aggregates the snapshot's cacheable tasks.
func (s *Snapshot) CachedTasks() []resolve.TaskRow {
	return resolve.AggregateCached(s.Runs(), s.Tasks)
}

// Attempts fans the cached tasks out to their try/status pairs.
func (s *Snapshot) Attempts() []resolve.Attempt {
	return resolve.JoinAttempts(s.CachedTasks(), s.Tries, s.Statuses)
}
