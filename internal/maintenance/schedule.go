package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron"
	"github.com/wfstat-cloud/wfstat/pkg/log"
)

// Schedule runs the periodic housekeeping (statistics refresh and
// space reclamation) on a cron cadence.
type Schedule struct {
	schedule cron.Schedule
	svc      Maintenance
}

// NewSchedule parses a five-field cron expression.
func NewSchedule(expr string, svc Maintenance) (*Schedule, error) {
	parser := cron.NewParser(
		cron.Minute |
			cron.Hour |
			cron.Dom |
			cron.Month |
			cron.Dow,
	)

	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}

	return &Schedule{schedule: sched, svc: svc}, nil
}

// Listen fires the housekeeping pass at every scheduled tick until
// the context is cancelled.
func (s *Schedule) Listen(ctx context.Context) {
	for {
		select {
		case <-time.After(time.Until(s.schedule.Next(time.Now()))):
			s.Fire()
		case <-ctx.Done():
			return
		}
	}
}

// Fire runs one housekeeping pass.
func (s *Schedule) Fire() {
	log.Info("running scheduled maintenance")

	if err := s.svc.Analyze(); err != nil {
		log.Error("scheduled analyze failure", "error", err)
	}

	if err := s.svc.Vacuum(); err != nil {
		log.Error("scheduled vacuum failure", "error", err)
	}
}
