package report

import (
	"fmt"

	"github.com/spf13/cobra"
	runsvc "github.com/wfstat-cloud/wfstat/api/rest/service/run"
	statssvc "github.com/wfstat-cloud/wfstat/api/rest/service/stats"
	tasksvc "github.com/wfstat-cloud/wfstat/api/rest/service/task"
	"github.com/wfstat-cloud/wfstat/internal/models"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List every workflow run with its ordinal",
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := runsvc.Service(cmd.Context()).List()
		if err != nil {
			return err
		}

		rows := make([][]string, len(runs))
		for i, r := range runs {
			rows[i] = []string{itoa(r.RunNum), r.RunID, r.Began, r.Completed, r.Elapsed}
		}

		return writeCmdOut(cmd, "%s\n", renderTable(
			[]string{"runnum", "run_id", "began", "completed", "elapsed"},
			rows,
		))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the workflow summary and task status matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := runsvc.Service(cmd.Context()).Get(runnum)
		if err != nil {
			return err
		}

		runTxt := itoa(detail.RunNum)
		if detail.Current {
			runTxt += "    <<-most current run->>"
		}

		began, completed, elapsed := detail.Began, detail.Completed, detail.Elapsed
		if completed == "" {
			completed = "*pending*"
		}
		if elapsed == "" {
			elapsed = "*pending*"
		}

		kv := [][]string{
			{"workflow name", detail.WorkflowName},
			{"run num", runTxt},
			{"run start", began},
			{"run end", completed},
			{"run duration", elapsed},
			{"tasks completed: success", itoa(detail.TasksCompleted)},
			{"tasks completed: failed", itoa(detail.TasksFailed)},
			{"workflow user", detail.User + "@" + detail.Host},
			{"workflow rundir", detail.RunDir},
		}
		if err := writeCmdOut(cmd, "%s\n", renderTable(nil, kv)); err != nil {
			return err
		}

		stats, err := statssvc.New(cmd.Context()).Get()
		if err != nil {
			return err
		}

		return writeCmdOut(cmd, "%s\n", renderMatrix(stats))
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print the most recent status of every cached task",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := tasksvc.Service(cmd.Context()).List(&tasksvc.ListRequest{
			RunNum:   runnum,
			TaskNum:  tasknum,
			TaskID:   taskID,
			Status:   status,
			Function: function,
			Limit:    limit,
			Extended: extended,
		})
		if err != nil {
			return err
		}

		headers := summaryHeaders
		if extended {
			headers = summaryHeadersExt
		}

		if err := writeCmdOut(cmd, "most recent status for %v selected tasks\n", len(rows)); err != nil {
			return err
		}
		return writeCmdOut(cmd, "%s\n", renderTable(headers, summaryRows(rows, extended)))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the full status history of one task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tasknum == 0 {
			return fmt.Errorf("a task number is required for this report")
		}

		rows, err := tasksvc.Service(cmd.Context()).History(tasknum)
		if err != nil {
			return err
		}

		if err := writeCmdOut(cmd, "history of task %v, %v state changes\n", tasknum, len(rows)); err != nil {
			return err
		}
		return writeCmdOut(cmd, "%s\n", renderTable(summaryHeaders, summaryRows(rows, false)))
	},
}

var nonCachedCmd = &cobra.Command{
	Use:   "noncached",
	Short: "List the latest invocation of every non-cached task",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := tasksvc.Service(cmd.Context()).NonCached()
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			return writeCmdOut(cmd, "there are no non-cached tasks to report\n")
		}

		out := make([][]string, len(rows))
		for i, r := range rows {
			out[i] = []string{
				itoa(r.RunNum), itoa(r.TaskID), r.Function, itoa(r.Fails),
				r.Invoked, r.Returned, r.Elapsed,
			}
		}
		return writeCmdOut(cmd, "%s\n", renderTable(
			[]string{"runnum", "task_id", "function", "fails", "invoked", "returned", "elapsed"},
			out,
		))
	},
}

var nonDispatchedCmd = &cobra.Command{
	Use:   "nondispatched",
	Short: "List memoizable tasks that were never dispatched",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := tasksvc.Service(cmd.Context()).NonDispatched()
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			return writeCmdOut(cmd, "there are no non-dispatched tasks to report\n")
		}

		out := make([][]string, len(rows))
		for i, r := range rows {
			out[i] = []string{
				itoa(r.RunNum), itoa(r.TaskID), r.Function, itoa(r.Fails), r.Invoked,
			}
		}
		return writeCmdOut(cmd, "%s\n", renderTable(
			[]string{"runnum", "task_id", "function", "fails", "invoked"},
			out,
		))
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent status updates across all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := tasksvc.Service(cmd.Context()).Recent(limit)
		if err != nil {
			return err
		}

		return writeCmdOut(cmd, "%s\n", renderTable(summaryHeaders, summaryRows(rows, false)))
	},
}

func renderMatrix(stats *statssvc.StatsResponse) string {
	headers := append([]string{"function"}, models.StatusLabels...)
	headers = append(headers, "TOTAL")

	rows := make([][]string, 0, len(stats.Matrix)+1)
	for _, m := range append(stats.Matrix, stats.Totals) {
		row := []string{m.Function}
		for _, label := range models.StatusLabels {
			row = append(row, itoa(m.Counts[label]))
		}
		rows = append(rows, append(row, itoa(m.Total)))
	}

	return renderTable(headers, rows)
}

func writeCmdOut(cmd *cobra.Command, format string, args ...any) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	return err
}
