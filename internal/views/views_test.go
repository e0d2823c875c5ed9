package views

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/wfstat-cloud/wfstat/internal/models"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type ViewsTestSuite struct {
	suite.Suite
	db *gorm.DB

	workflows models.Workflows
	tasks     models.Tasks
	tries     models.Tries
	statuses  models.Statuses
}

func (s *ViewsTestSuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = gdb

	for _, stmt := range models.CreateStatements {
		s.Require().NoError(gdb.Exec(stmt).Error)
	}

	s.seed()
	s.Require().NoError(Create(gdb))
}

func (s *ViewsTestSuite) at(d time.Duration) *time.Time {
	t := epoch.Add(d)
	return &t
}

func (s *ViewsTestSuite) seed() {
	hash := func(v string) *string { return &v }

	s.workflows = models.Workflows{
		{RunID: "run-a", TimeBegan: epoch, TimeCompleted: s.at(time.Hour)},
		{RunID: "run-b", TimeBegan: epoch.Add(2 * time.Hour)},
	}
	s.tasks = models.Tasks{
		{RunID: "run-a", TaskID: 1, FuncName: "load", Memoize: true, Hashsum: hash("h1"),
			TimeInvoked: s.at(1 * time.Minute), TimeReturned: s.at(5 * time.Minute)},
		{RunID: "run-a", TaskID: 2, FuncName: "load", Memoize: true, Hashsum: hash("h1"),
			FailCount: 1, TimeInvoked: s.at(2 * time.Minute), TimeReturned: s.at(10 * time.Minute)},
		{RunID: "run-a", TaskID: 3, FuncName: "transform", Memoize: true, Hashsum: hash("h2"),
			TimeInvoked: s.at(3 * time.Minute), TimeReturned: s.at(7 * time.Minute)},
		{RunID: "run-a", TaskID: 4, FuncName: "probe", Memoize: false,
			TimeInvoked: s.at(4 * time.Minute), TimeReturned: s.at(5 * time.Minute)},
		{RunID: "run-a", TaskID: 5, FuncName: "probe", Memoize: false,
			TimeInvoked: s.at(8 * time.Minute), TimeReturned: s.at(9 * time.Minute)},
		{RunID: "run-a", TaskID: 6, FuncName: "blocked", Memoize: true},
		{RunID: "run-b", TaskID: 1, FuncName: "load", Memoize: true, Hashsum: hash("h3"),
			TimeInvoked: s.at(2*time.Hour + time.Minute)},
	}
	s.tries = models.Tries{
		{RunID: "run-a", TaskID: 1, TryID: 0, Hostname: "node1",
			TimeLaunched: s.at(1 * time.Minute), TimeRunning: s.at(2 * time.Minute), TimeReturned: s.at(5 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 0, Hostname: "node1",
			TimeLaunched: s.at(3 * time.Minute), TimeRunning: s.at(4 * time.Minute), TimeReturned: s.at(6 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 1, Hostname: "node2",
			TimeLaunched: s.at(6 * time.Minute), TimeRunning: s.at(7 * time.Minute)},
		{RunID: "run-b", TaskID: 1, TryID: 0, Hostname: "node3",
			TimeLaunched: s.at(2*time.Hour + time.Minute), TimeRunning: s.at(2*time.Hour + 2*time.Minute)},
	}
	s.statuses = models.Statuses{
		{RunID: "run-a", TaskID: 1, TryID: 0, StatusName: "running", Timestamp: epoch.Add(2 * time.Minute)},
		{RunID: "run-a", TaskID: 1, TryID: 0, StatusName: models.StatusExecDone, Timestamp: epoch.Add(9 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 0, StatusName: models.StatusExecDone, Timestamp: epoch.Add(6 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 1, StatusName: "failed", Timestamp: epoch.Add(7 * time.Minute)},
		{RunID: "run-b", TaskID: 1, TryID: 0, StatusName: "running", Timestamp: epoch.Add(2*time.Hour + 2*time.Minute)},
	}

	s.Require().NoError(s.db.Create(s.workflows).Error)
	s.Require().NoError(s.db.Create(s.tasks).Error)
	s.Require().NoError(s.db.Create(s.tries).Error)
	s.Require().NoError(s.db.Create(s.statuses).Error)
}

type runScan struct {
	RunNum    int     `gorm:"column:runnum"`
	RunID     string  `gorm:"column:run_id"`
	Began     string  `gorm:"column:began"`
	Completed *string `gorm:"column:completed"`
	Elapsed   *string `gorm:"column:elapsed"`
}

type taskScan struct {
	RunNum   int     `gorm:"column:runnum"`
	TaskNum  int     `gorm:"column:tasknum"`
	RunID    string  `gorm:"column:run_id"`
	Hashsum  string  `gorm:"column:task_hashsum"`
	Function string  `gorm:"column:function"`
	Fails    int     `gorm:"column:fails"`
	Invoked  *string `gorm:"column:invoked"`
	Returned *string `gorm:"column:returned"`
	Elapsed  *string `gorm:"column:elapsed"`
}

type summaryScan struct {
	RunNum     int    `gorm:"column:runnum"`
	TaskNum    int    `gorm:"column:tasknum"`
	Function   string `gorm:"column:function"`
	Status     string `gorm:"column:status"`
	LastUpdate string `gorm:"column:lastUpdate"`
	Fails      int    `gorm:"column:fails"`
	TryID      int    `gorm:"column:try_id"`
	Hostname   string `gorm:"column:hostname"`
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (s *ViewsTestSuite) TestMissingAfterCreate() {
	missing, err := Missing(s.db)
	s.Require().NoError(err)
	s.Empty(missing)
}

func (s *ViewsTestSuite) TestCreateTwiceFails() {
	s.Error(Create(s.db))
}

func (s *ViewsTestSuite) TestDropThenEnsureRebuilds() {
	s.Require().NoError(Drop(s.db))

	missing, err := Missing(s.db)
	s.Require().NoError(err)
	s.Equal(Names, missing)

	s.Require().NoError(Ensure(s.db))

	missing, err = Missing(s.db)
	s.Require().NoError(err)
	s.Empty(missing)

	// A complete set is left alone.
	s.NoError(Ensure(s.db))
}

func (s *ViewsTestSuite) TestRunviewMatchesResolver() {
	rows := []runScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM runview ORDER BY runnum").Scan(&rows).Error)

	want := resolve.EnumerateRuns(s.workflows)
	s.Require().Len(rows, len(want))

	for i, row := range rows {
		s.Equal(want[i].RunNum, row.RunNum)
		s.Equal(want[i].RunID, row.RunID)
		s.Equal(want[i].Began, row.Began)
		s.Equal(want[i].Completed, orEmpty(row.Completed))
		s.Equal(want[i].Elapsed, orEmpty(row.Elapsed))
	}
}

func (s *ViewsTestSuite) TestTaskviewMatchesResolver() {
	rows := []taskScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM taskview ORDER BY tasknum").Scan(&rows).Error)

	runs := resolve.EnumerateRuns(s.workflows)
	want := resolve.AggregateCached(runs, s.tasks)
	s.Require().Len(rows, len(want))

	for i, row := range rows {
		s.Equal(want[i].TaskNum, row.TaskNum)
		s.Equal(want[i].RunNum, row.RunNum)
		s.Equal(want[i].Hashsum, row.Hashsum)
		s.Equal(want[i].Function, row.Function)
		s.Equal(want[i].Fails, row.Fails)
		s.Equal(want[i].Invoked, orEmpty(row.Invoked))
		s.Equal(want[i].Returned, orEmpty(row.Returned))
		s.Equal(want[i].Elapsed, orEmpty(row.Elapsed))
	}
}

func (s *ViewsTestSuite) TestNonCachedViews() {
	rows := []taskScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM nctaskview").Scan(&rows).Error)
	s.Require().Len(rows, 1)
	s.Equal("probe", rows[0].Function)
	s.Equal("2024-03-01 12:08:00", orEmpty(rows[0].Invoked))

	rows = []taskScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM ndtaskview").Scan(&rows).Error)
	s.Require().Len(rows, 1)
	s.Equal("blocked", rows[0].Function)
	s.Nil(rows[0].Invoked)
}

func (s *ViewsTestSuite) TestSummaryPhasesAreDisjoint() {
	completed := []summaryScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM sumv1").Scan(&completed).Error)

	fallback := []summaryScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM sumv2").Scan(&fallback).Error)

	seen := map[int]bool{}
	for _, row := range completed {
		s.Equal(models.StatusExecDone, row.Status)
		seen[row.TaskNum] = true
	}
	for _, row := range fallback {
		s.False(seen[row.TaskNum])
	}
}

func (s *ViewsTestSuite) TestSummaryMatchesResolver() {
	rows := []summaryScan{}
	s.Require().NoError(s.db.Raw("SELECT * FROM summary").Scan(&rows).Error)

	runs := resolve.EnumerateRuns(s.workflows)
	cached := resolve.AggregateCached(runs, s.tasks)
	attempts := resolve.JoinAttempts(cached, s.tries, s.statuses)
	want := resolve.Summary(attempts)

	s.Require().Len(rows, len(want))
	for i, row := range rows {
		s.Equal(want[i].TaskNum, row.TaskNum)
		s.Equal(want[i].RunNum, row.RunNum)
		s.Equal(want[i].Function, row.Function)
		s.Equal(want[i].Status, row.Status)
		s.Equal(want[i].LastUpdate, row.LastUpdate)
		s.Equal(want[i].Fails, row.Fails)
		s.Equal(want[i].Hostname, row.Hostname)
	}
}

func TestViewsTestSuite(t *testing.T) {
	suite.Run(t, new(ViewsTestSuite))
}
