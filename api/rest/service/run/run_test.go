package run

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/wfstat-cloud/wfstat/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type RunTestSuite struct {
	suite.Suite
	svc Run
	db  *gorm.DB
}

func (s *RunTestSuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = gdb

	for _, stmt := range models.CreateStatements {
		s.Require().NoError(gdb.Exec(stmt).Error)
	}

	s.svc = (&runService{ctx: context.Background()}).WithDatabase(gdb)
}

func (s *RunTestSuite) seed() {
	completed := epoch.Add(time.Hour)
	workflows := models.Workflows{
		{RunID: "run-a", WorkflowName: "etl", Host: "head1", User: "alice",
			RunDir: "/runs/000", TimeBegan: epoch, TimeCompleted: &completed,
			TasksCompletedCount: 10, TasksFailedCount: 2},
		{RunID: "run-b", WorkflowName: "etl", Host: "head1", User: "alice",
			RunDir: "/runs/001", TimeBegan: epoch.Add(2 * time.Hour)},
	}
	s.Require().NoError(s.db.Create(workflows).Error)
}

func (s *RunTestSuite) TestListEmpty() {
	runs, err := s.svc.List()
	s.Require().NoError(err)
	s.Empty(runs)
}

func (s *RunTestSuite) TestListOrdersByStartTime() {
	s.seed()

	runs, err := s.svc.List()
	s.Require().NoError(err)
	s.Require().Len(runs, 2)

	s.Equal(1, runs[0].RunNum)
	s.Equal("run-a", runs[0].RunID)
	s.Equal("01:00:00", runs[0].Elapsed)

	s.Equal(2, runs[1].RunNum)
	s.Equal("run-b", runs[1].RunID)
	s.Empty(runs[1].Completed)
}

func (s *RunTestSuite) TestGetByOrdinal() {
	s.seed()

	detail, err := s.svc.Get(1)
	s.Require().NoError(err)
	s.Equal("run-a", detail.RunID)
	s.Equal("etl", detail.WorkflowName)
	s.Equal("alice", detail.User)
	s.Equal("/runs/000", detail.RunDir)
	s.Equal(10, detail.TasksCompleted)
	s.Equal(2, detail.TasksFailed)
	s.False(detail.Current)
}

func (s *RunTestSuite) TestGetZeroSelectsLatest() {
	s.seed()

	detail, err := s.svc.Get(0)
	s.Require().NoError(err)
	s.Equal("run-b", detail.RunID)
	s.Equal(2, detail.RunNum)
	s.True(detail.Current)
}

func (s *RunTestSuite) TestGetUnknownOrdinal() {
	s.seed()

	_, err := s.svc.Get(7)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RunTestSuite) TestGetEmptyDatabase() {
	_, err := s.svc.Get(0)
	s.ErrorIs(err, ErrNotFound)
}

func TestRunTestSuite(t *testing.T) {
	suite.Run(t, new(RunTestSuite))
}
