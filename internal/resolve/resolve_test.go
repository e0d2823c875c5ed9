package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wfstat-cloud/wfstat/internal/models"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := epoch.Add(d)
	return &t
}

func strptr(s string) *string {
	return &s
}

// fixture builds two runs: run-a finished an hour in, run-b still in
// flight. run-a carries a deduplicated cacheable task, a cacheable
// task whose failed retry postdates its success, a pair of
// non-cacheable probe invocations and a never-dispatched task.
func fixture() (models.Workflows, models.Tasks, models.Tries, models.Statuses) {
	workflows := models.Workflows{
		{RunID: "run-b", TimeBegan: epoch.Add(2 * time.Hour)},
		{RunID: "run-a", TimeBegan: epoch, TimeCompleted: at(time.Hour)},
	}

	tasks := models.Tasks{
		{RunID: "run-a", TaskID: 1, FuncName: "load", Memoize: true, Hashsum: strptr("h1"),
			TimeInvoked: at(1 * time.Minute), TimeReturned: at(5 * time.Minute)},
		{RunID: "run-a", TaskID: 2, FuncName: "load", Memoize: true, Hashsum: strptr("h1"),
			FailCount: 1, TimeInvoked: at(2 * time.Minute), TimeReturned: at(10 * time.Minute)},
		{RunID: "run-a", TaskID: 3, FuncName: "transform", Memoize: true, Hashsum: strptr("h2"),
			TimeInvoked: at(3 * time.Minute), TimeReturned: at(7 * time.Minute)},
		{RunID: "run-a", TaskID: 4, FuncName: "probe", Memoize: false,
			TimeInvoked: at(4 * time.Minute), TimeReturned: at(4*time.Minute + 30*time.Second)},
		{RunID: "run-a", TaskID: 5, FuncName: "probe", Memoize: false,
			TimeInvoked: at(8 * time.Minute), TimeReturned: at(9 * time.Minute)},
		{RunID: "run-a", TaskID: 6, FuncName: "blocked", Memoize: true},
		{RunID: "run-b", TaskID: 1, FuncName: "load", Memoize: true, Hashsum: strptr("h3"),
			TimeInvoked: at(2*time.Hour + time.Minute)},
	}

	tries := models.Tries{
		{RunID: "run-a", TaskID: 1, TryID: 0, Hostname: "node1",
			TimeLaunched: at(1 * time.Minute), TimeRunning: at(2 * time.Minute), TimeReturned: at(5 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 0, Hostname: "node1",
			TimeLaunched: at(3 * time.Minute), TimeRunning: at(4 * time.Minute), TimeReturned: at(6 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 1, Hostname: "node2",
			TimeLaunched: at(6 * time.Minute), TimeRunning: at(7 * time.Minute)},
		{RunID: "run-b", TaskID: 1, TryID: 0, Hostname: "node3",
			TimeLaunched: at(2*time.Hour + time.Minute), TimeRunning: at(2*time.Hour + 2*time.Minute)},
	}

	statuses := models.Statuses{
		{RunID: "run-a", TaskID: 1, TryID: 0, StatusName: "running", Timestamp: epoch.Add(2 * time.Minute)},
		{RunID: "run-a", TaskID: 1, TryID: 0, StatusName: models.StatusExecDone, Timestamp: epoch.Add(9 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 0, StatusName: models.StatusExecDone, Timestamp: epoch.Add(6 * time.Minute)},
		{RunID: "run-a", TaskID: 3, TryID: 1, StatusName: "failed", Timestamp: epoch.Add(7 * time.Minute)},
		{RunID: "run-b", TaskID: 1, TryID: 0, StatusName: "running", Timestamp: epoch.Add(2*time.Hour + 2*time.Minute)},
	}

	return workflows, tasks, tries, statuses
}

func resolveFixture() ([]RunRow, []TaskRow, []Attempt) {
	workflows, tasks, tries, statuses := fixture()
	runs := EnumerateRuns(workflows)
	cached := AggregateCached(runs, tasks)
	return runs, cached, JoinAttempts(cached, tries, statuses)
}

func TestEnumerateRunsOrdersByStartTime(t *testing.T) {
	workflows, _, _, _ := fixture()
	runs := EnumerateRuns(workflows)

	assert.Len(t, runs, 2)
	assert.Equal(t, 1, runs[0].RunNum)
	assert.Equal(t, "run-a", runs[0].RunID)
	assert.Equal(t, "2024-03-01 12:00:00", runs[0].Began)
	assert.Equal(t, "2024-03-01 13:00:00", runs[0].Completed)
	assert.Equal(t, "01:00:00", runs[0].Elapsed)

	assert.Equal(t, 2, runs[1].RunNum)
	assert.Equal(t, "run-b", runs[1].RunID)
	assert.Empty(t, runs[1].Completed)
	assert.Empty(t, runs[1].Elapsed)
}

func TestAggregateCachedDeduplicatesByHashsum(t *testing.T) {
	_, cached, _ := resolveFixture()

	assert.Len(t, cached, 3)

	byHash := map[string]TaskRow{}
	for _, row := range cached {
		byHash[row.Hashsum] = row
	}

	h1 := byHash["h1"]
	assert.Equal(t, 1, h1.TaskID)
	assert.Equal(t, "2024-03-01 12:01:00", h1.Invoked)
	assert.Equal(t, "2024-03-01 12:10:00", h1.Returned)
	assert.Equal(t, "00:09:00", h1.Elapsed)
	assert.Equal(t, 1, h1.Fails)
}

func TestAggregateCachedAssignsGlobalOrdinals(t *testing.T) {
	_, cached, _ := resolveFixture()

	nums := map[string]int{}
	for _, row := range cached {
		nums[row.Hashsum] = row.TaskNum
	}

	assert.Equal(t, 1, nums["h1"])
	assert.Equal(t, 2, nums["h2"])
	assert.Equal(t, 3, nums["h3"])
}

func TestAggregateUncachedKeepsLatestInvocation(t *testing.T) {
	workflows, tasks, _, _ := fixture()
	runs := EnumerateRuns(workflows)

	rows := AggregateUncached(runs, tasks)

	assert.Len(t, rows, 1)
	assert.Equal(t, "probe", rows[0].Function)
	assert.Equal(t, 5, rows[0].TaskID)
	assert.Equal(t, "2024-03-01 12:08:00", rows[0].Invoked)
}

func TestNonDispatched(t *testing.T) {
	workflows, tasks, _, _ := fixture()
	runs := EnumerateRuns(workflows)

	rows := NonDispatched(runs, tasks)

	assert.Len(t, rows, 1)
	assert.Equal(t, "blocked", rows[0].Function)
	assert.Equal(t, 6, rows[0].TaskID)
	assert.Empty(t, rows[0].Invoked)
}

func TestCompletedPrefersTerminalSuccess(t *testing.T) {
	_, _, attempts := resolveFixture()

	rows := Completed(attempts)

	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, models.StatusExecDone, row.Status)
	}

	// The later failed retry of task 2 must not displace its success.
	assert.Equal(t, 2, rows[1].TaskNum)
	assert.Equal(t, 0, rows[1].TryID)
	assert.Equal(t, "2024-03-01 12:06:00", rows[1].LastUpdate)
}

func TestFallbackCoversOnlyUncompletedTasks(t *testing.T) {
	_, _, attempts := resolveFixture()

	completed := Completed(attempts)
	rows := Fallback(attempts, completed)

	assert.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].TaskNum)
	assert.Equal(t, "running", rows[0].Status)
	assert.Equal(t, "node3", rows[0].Hostname)
	assert.Empty(t, rows[0].Ended)
	assert.Empty(t, rows[0].RunTime)
	assert.Equal(t, "00:01:00", rows[0].WaitTime)
}

func TestSummaryIsOneRowPerTask(t *testing.T) {
	_, cached, attempts := resolveFixture()

	rows := Summary(attempts)

	assert.Len(t, rows, len(cached))
	for i, row := range rows {
		assert.Equal(t, i+1, row.TaskNum)
	}
}

func TestHistoryOrdersAscending(t *testing.T) {
	_, _, attempts := resolveFixture()

	rows := History(attempts, 1)

	assert.Len(t, rows, 2)
	assert.Equal(t, "running", rows[0].Status)
	assert.Equal(t, models.StatusExecDone, rows[1].Status)
	assert.True(t, rows[0].LastUpdate < rows[1].LastUpdate)
}

func TestRecentOrdersDescendingAndLimits(t *testing.T) {
	_, _, attempts := resolveFixture()

	rows := Recent(attempts, 0)
	assert.Len(t, rows, 5)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].LastUpdate >= rows[i].LastUpdate)
	}

	capped := Recent(attempts, 2)
	assert.Len(t, capped, 2)
	assert.Equal(t, rows[0], capped[0])
}

func TestJoinProducesNoAttemptsWithoutStatus(t *testing.T) {
	workflows, tasks, tries, _ := fixture()
	runs := EnumerateRuns(workflows)
	cached := AggregateCached(runs, tasks)

	attempts := JoinAttempts(cached, tries, nil)
	assert.Empty(t, attempts)
	assert.Empty(t, Summary(attempts))
}

func TestFormatDuration(t *testing.T) {
	start := epoch
	end := epoch.Add(25*time.Hour + 3*time.Minute + 4*time.Second)

	// Hours wrap at 24, matching the sqlite time() rendering.
	assert.Equal(t, "01:03:04", formatDuration(&start, &end))
	assert.Equal(t, "", formatDuration(&end, &start))
	assert.Equal(t, "", formatDuration(nil, &end))
}
