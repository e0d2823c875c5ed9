// Package resolve computes the reporting views over in-memory
// snapshots of the monitoring tables. Each function mirrors one of
// the sqlite views installed by internal/views, so the cascade can be
// exercised without a database: runs -> task aggregation -> try/status
// join -> two-phase status resolution.
package resolve

import (
	"fmt"
	"sort"
	"time"

	"github.com/wfstat-cloud/wfstat/internal/models"
)

// TimeLayout renders timestamps at second precision, matching the
// strftime format used by the sqlite views.
const TimeLayout = "2006-01-02 15:04:05"

// RunRow is one runview row: a workflow run with its 1-based ordinal.
type RunRow struct {
	RunNum    int    `json:"runnum"`
	RunID     string `json:"run_id"`
	Began     string `json:"began"`
	Completed string `json:"completed,omitempty"`
	Elapsed   string `json:"elapsed,omitempty"`
}

// TaskRow is one taskview row: a cacheable task deduplicated by
// hashsum within its run, numbered globally by earliest invocation.
type TaskRow struct {
	RunNum   int    `json:"runnum"`
	TaskNum  int    `json:"tasknum"`
	RunID    string `json:"run_id"`
	TaskID   int    `json:"task_id"`
	Hashsum  string `json:"task_hashsum"`
	Function string `json:"function"`
	Fails    int    `json:"fails"`
	Invoked  string `json:"invoked,omitempty"`
	Returned string `json:"returned,omitempty"`
	Elapsed  string `json:"elapsed,omitempty"`
	Depends  string `json:"depends,omitempty"`
	Stdout   string `json:"stdout,omitempty"`

	invokedAt *time.Time
}

// NCTaskRow is one nctaskview row: the latest invocation of a
// non-cacheable task, grouped by function name within its run.
type NCTaskRow struct {
	RunNum   int    `json:"runnum"`
	RunID    string `json:"run_id"`
	TaskID   int    `json:"task_id"`
	Function string `json:"function"`
	Fails    int    `json:"fails"`
	Invoked  string `json:"invoked,omitempty"`
	Returned string `json:"returned,omitempty"`
	Elapsed  string `json:"elapsed,omitempty"`
}

// NDTaskRow is one ndtaskview row: a memoizable task that was never
// dispatched, so no hashsum was ever assigned.
type NDTaskRow struct {
	RunNum   int    `json:"runnum"`
	RunID    string `json:"run_id"`
	TaskID   int    `json:"task_id"`
	Function string `json:"function"`
	Fails    int    `json:"fails"`
	Invoked  string `json:"invoked,omitempty"`
}

// Attempt is one element of the try/status fan-out join: a cached
// task paired with one of its tries and one of that try's status
// events. The join does not collapse the fan-out; Summary does.
type Attempt struct {
	Task   *TaskRow
	Try    *models.Try
	Status *models.Status
}

// SummaryRow is one summary row: the resolved current status of a
// task together with the try that carries it.
type SummaryRow struct {
	RunNum     int    `json:"runnum"`
	TaskNum    int    `json:"tasknum"`
	TaskID     int    `json:"task_id"`
	Function   string `json:"function"`
	Status     string `json:"status"`
	LastUpdate string `json:"lastUpdate"`
	Fails      int    `json:"fails"`
	TryID      int    `json:"try_id"`
	Hostname   string `json:"hostname"`
	Launched   string `json:"launched,omitempty"`
	Start      string `json:"start,omitempty"`
	WaitTime   string `json:"waitTime,omitempty"`
	Ended      string `json:"ended,omitempty"`
	RunTime    string `json:"runTime,omitempty"`
	Depends    string `json:"depends,omitempty"`
	Stdout     string `json:"stdout,omitempty"`

	updatedAt time.Time
}

// EnumerateRuns assigns a stable 1-based ordinal to each run by
// ascending start time, ties broken by run identifier.
func EnumerateRuns(workflows models.Workflows) []RunRow {
	sorted := make(models.Workflows, len(workflows))
	copy(sorted, workflows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TimeBegan.Equal(sorted[j].TimeBegan) {
			return sorted[i].TimeBegan.Before(sorted[j].TimeBegan)
		}
		return sorted[i].RunID < sorted[j].RunID
	})

	rows := make([]RunRow, len(sorted))
	for i, w := range sorted {
		began := w.TimeBegan
		rows[i] = RunRow{
			RunNum:    i + 1,
			RunID:     w.RunID,
			Began:     formatTime(&began),
			Completed: formatTime(w.TimeCompleted),
			Elapsed:   formatDuration(&began, w.TimeCompleted),
		}
	}
	return rows
}

// AggregateUncached rolls up non-cacheable task invocations (null
// hashsum, not memoizable) by function name within each run, keeping
// only the most recently invoked record per group.
func AggregateUncached(runs []RunRow, tasks models.Tasks) []NCTaskRow {
	runnums := runNumIndex(runs)

	type key struct {
		runID    string
		function string
	}
	latest := map[key]*models.Task{}
	for _, t := range tasks {
		if t.Hashsum != nil || t.Memoize {
			continue
		}
		if _, ok := runnums[t.RunID]; !ok {
			continue
		}
		k := key{t.RunID, t.FuncName}
		if cur, ok := latest[k]; !ok || invokedAfter(t, cur) {
			latest[k] = t
		}
	}

	rows := make([]NCTaskRow, 0, len(latest))
	for _, t := range latest {
		rows = append(rows, NCTaskRow{
			RunNum:   runnums[t.RunID],
			RunID:    t.RunID,
			TaskID:   t.TaskID,
			Function: t.FuncName,
			Fails:    t.FailCount,
			Invoked:  formatTime(t.TimeInvoked),
			Returned: formatTime(t.TimeReturned),
			Elapsed:  formatDuration(t.TimeInvoked, t.TimeReturned),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RunNum != rows[j].RunNum {
			return rows[i].RunNum < rows[j].RunNum
		}
		return rows[i].Function < rows[j].Function
	})
	return rows
}

// AggregateCached rolls up cacheable task invocations by hashsum
// within each run. The earliest invocation is the representative
// record (ties broken by lowest task id) and the latest return is
// kept. Task ordinals are global across the run set, assigned by
// ascending earliest invocation time, then hashsum.
func AggregateCached(runs []RunRow, tasks models.Tasks) []TaskRow {
	runnums := runNumIndex(runs)

	type key struct {
		runID string
		hash  string
	}
	type group struct {
		earliest *models.Task
		returned *time.Time
		fails    int
	}
	groups := map[key]*group{}
	for _, t := range tasks {
		if t.Hashsum == nil {
			continue
		}
		if _, ok := runnums[t.RunID]; !ok {
			continue
		}
		k := key{t.RunID, *t.Hashsum}
		g, ok := groups[k]
		if !ok {
			g = &group{earliest: t, returned: t.TimeReturned, fails: t.FailCount}
			groups[k] = g
			continue
		}
		if invokedBefore(t, g.earliest) {
			g.earliest = t
		}
		if t.TimeReturned != nil && (g.returned == nil || t.TimeReturned.After(*g.returned)) {
			g.returned = t.TimeReturned
		}
		if t.FailCount > g.fails {
			g.fails = t.FailCount
		}
	}

	rows := make([]TaskRow, 0, len(groups))
	for k, g := range groups {
		t := g.earliest
		rows = append(rows, TaskRow{
			RunNum:    runnums[t.RunID],
			RunID:     t.RunID,
			TaskID:    t.TaskID,
			Hashsum:   k.hash,
			Function:  t.FuncName,
			Fails:     g.fails,
			Invoked:   formatTime(t.TimeInvoked),
			Returned:  formatTime(g.returned),
			Elapsed:   formatDuration(t.TimeInvoked, g.returned),
			Depends:   t.Depends,
			Stdout:    t.Stdout,
			invokedAt: t.TimeInvoked,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].invokedAt, rows[j].invokedAt
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return rows[i].Hashsum < rows[j].Hashsum
	})
	for i := range rows {
		rows[i].TaskNum = i + 1
	}
	return rows
}

// NonDispatched lists memoizable tasks that never received a hashsum.
func NonDispatched(runs []RunRow, tasks models.Tasks) []NDTaskRow {
	runnums := runNumIndex(runs)

	rows := []NDTaskRow{}
	for _, t := range tasks {
		if t.Hashsum != nil || !t.Memoize {
			continue
		}
		num, ok := runnums[t.RunID]
		if !ok {
			continue
		}
		rows = append(rows, NDTaskRow{
			RunNum:   num,
			RunID:    t.RunID,
			TaskID:   t.TaskID,
			Function: t.FuncName,
			Fails:    t.FailCount,
			Invoked:  formatTime(t.TimeInvoked),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RunNum != rows[j].RunNum {
			return rows[i].RunNum < rows[j].RunNum
		}
		return rows[i].TaskID < rows[j].TaskID
	})
	return rows
}

// JoinAttempts fans each cached task out to every (try, status event)
// pair sharing its run and task identity. A task with no tries or no
// status events produces no attempts, and therefore no summary row.
func JoinAttempts(tasks []TaskRow, tries models.Tries, statuses models.Statuses) []Attempt {
	type key struct {
		runID  string
		taskID int
	}
	triesBy := map[key]models.Tries{}
	for _, y := range tries {
		k := key{y.RunID, y.TaskID}
		triesBy[k] = append(triesBy[k], y)
	}

	type tryKey struct {
		runID  string
		taskID int
		tryID  int
	}
	statusBy := map[tryKey]models.Statuses{}
	for _, s := range statuses {
		k := tryKey{s.RunID, s.TaskID, s.TryID}
		statusBy[k] = append(statusBy[k], s)
	}

	attempts := []Attempt{}
	for i := range tasks {
		t := &tasks[i]
		for _, y := range triesBy[key{t.RunID, t.TaskID}] {
			for _, s := range statusBy[tryKey{y.RunID, y.TaskID, y.TryID}] {
				attempts = append(attempts, Attempt{Task: t, Try: y, Status: s})
			}
		}
	}
	return attempts
}

// Completed implements the completed phase (sumv1): for every task
// with at least one terminal-success status event, keep the attempt
// carrying the latest such event. Ties on the status timestamp are
// broken by the highest try id.
func Completed(attempts []Attempt) []SummaryRow {
	best := map[int]Attempt{}
	for _, a := range attempts {
		if a.Status.StatusName != models.StatusExecDone {
			continue
		}
		cur, ok := best[a.Task.TaskNum]
		if !ok || laterStatus(a, cur) {
			best[a.Task.TaskNum] = a
		}
	}
	return summarize(best)
}

// Fallback implements the fallback phase (sumv2): for every task
// absent from the completed phase, keep the attempt with the most
// recent status event regardless of label.
func Fallback(attempts []Attempt, completed []SummaryRow) []SummaryRow {
	done := map[int]bool{}
	for _, row := range completed {
		done[row.TaskNum] = true
	}

	best := map[int]Attempt{}
	for _, a := range attempts {
		if done[a.Task.TaskNum] {
			continue
		}
		cur, ok := best[a.Task.TaskNum]
		if !ok || laterStatus(a, cur) {
			best[a.Task.TaskNum] = a
		}
	}
	return summarize(best)
}

// Summary unions both phases into exactly one row per task, ordered
// by task ordinal ascending.
func Summary(attempts []Attempt) []SummaryRow {
	completed := Completed(attempts)
	rows := append(completed, Fallback(attempts, completed)...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TaskNum < rows[j].TaskNum
	})
	return rows
}

// History lists every status event of one task as a summary-shaped
// row, ordered by status timestamp ascending.
func History(attempts []Attempt, tasknum int) []SummaryRow {
	rows := []SummaryRow{}
	for _, a := range attempts {
		if a.Task.TaskNum != tasknum {
			continue
		}
		rows = append(rows, newSummaryRow(a))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].updatedAt.Before(rows[j].updatedAt)
	})
	return rows
}

// Recent lists the most recent status events across all tasks,
// newest first, capped at limit when limit > 0.
func Recent(attempts []Attempt, limit int) []SummaryRow {
	rows := make([]SummaryRow, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, newSummaryRow(a))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].updatedAt.After(rows[j].updatedAt)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func summarize(best map[int]Attempt) []SummaryRow {
	rows := make([]SummaryRow, 0, len(best))
	for _, a := range best {
		rows = append(rows, newSummaryRow(a))
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TaskNum < rows[j].TaskNum
	})
	return rows
}

func newSummaryRow(a Attempt) SummaryRow {
	return SummaryRow{
		RunNum:     a.Task.RunNum,
		TaskNum:    a.Task.TaskNum,
		TaskID:     a.Task.TaskID,
		Function:   a.Task.Function,
		Status:     a.Status.StatusName,
		LastUpdate: a.Status.Timestamp.UTC().Format(TimeLayout),
		Fails:      a.Task.Fails,
		TryID:      a.Try.TryID,
		Hostname:   a.Try.Hostname,
		Launched:   formatTime(a.Try.TimeLaunched),
		Start:      formatTime(a.Try.TimeRunning),
		WaitTime:   formatDuration(a.Try.TimeLaunched, a.Try.TimeRunning),
		Ended:      formatTime(a.Try.TimeReturned),
		RunTime:    formatDuration(a.Try.TimeRunning, a.Try.TimeReturned),
		Depends:    a.Task.Depends,
		Stdout:     a.Task.Stdout,
		updatedAt:  a.Status.Timestamp,
	}
}

func laterStatus(a, b Attempt) bool {
	if !a.Status.Timestamp.Equal(b.Status.Timestamp) {
		return a.Status.Timestamp.After(b.Status.Timestamp)
	}
	return a.Try.TryID > b.Try.TryID
}

func runNumIndex(runs []RunRow) map[string]int {
	idx := make(map[string]int, len(runs))
	for _, r := range runs {
		idx[r.RunID] = r.RunNum
	}
	return idx
}

func invokedAfter(a, b *models.Task) bool {
	switch {
	case a.TimeInvoked == nil:
		return false
	case b.TimeInvoked == nil:
		return true
	case !a.TimeInvoked.Equal(*b.TimeInvoked):
		return a.TimeInvoked.After(*b.TimeInvoked)
	}
	return a.TaskID > b.TaskID
}

func invokedBefore(a, b *models.Task) bool {
	switch {
	case a.TimeInvoked == nil:
		return false
	case b.TimeInvoked == nil:
		return true
	case !a.TimeInvoked.Equal(*b.TimeInvoked):
		return a.TimeInvoked.Before(*b.TimeInvoked)
	}
	return a.TaskID < b.TaskID
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// formatDuration renders end-start as HH:MM:SS. Hours wrap at 24 to
// match the sqlite time() rendering used by the views.
func formatDuration(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	secs := int(end.Sub(*start).Seconds())
	if secs < 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600%24, secs/60%60, secs%60)
}
