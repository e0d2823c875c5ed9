package report

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wfstat-cloud/wfstat/pkg/env"
)

const (
	usage   = "report"
	short   = "Print workflow status reports"
	long    = "This command prints status reports computed from the monitoring database"
	example = "wfstat report summary --runnum 3"
)

// Cmd is the report command.
var Cmd = &cobra.Command{
	Use:        usage,
	Short:      short,
	Long:       long,
	Aliases:    []string{"r"},
	SuggestFor: []string{"status", "show", "print"},
	Example:    example,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dbFile != "" {
			if err := os.Setenv("WFSTAT_DATABASEFILE", dbFile); err != nil {
				return err
			}
			return env.Process()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Usage()
	},
}

var (
	dbFile   string
	runnum   int
	tasknum  int
	taskID   int
	function string
	status   string
	limit    int
	extended bool
)

func init() {
	Cmd.PersistentFlags().StringVarP(&dbFile, "file", "f", "", "monitoring database file")

	Cmd.AddCommand(
		runsCmd,
		summaryCmd,
		tasksCmd,
		historyCmd,
		nonCachedCmd,
		nonDispatchedCmd,
		recentCmd,
	)

	for _, c := range []*cobra.Command{summaryCmd, tasksCmd, historyCmd} {
		c.Flags().IntVarP(&runnum, "runnum", "r", 0, "run number of interest (default latest)")
	}

	tasksCmd.Flags().IntVarP(&tasknum, "tasknum", "t", 0, "task number")
	tasksCmd.Flags().IntVarP(&taskID, "task-id", "T", 0, "task id")
	tasksCmd.Flags().StringVarP(&function, "function", "n", "", "task function name (glob)")
	tasksCmd.Flags().StringVarP(&status, "status", "S", "", "task status name")
	tasksCmd.Flags().IntVarP(&limit, "limit", "l", 0, "limit output to N tasks")
	tasksCmd.Flags().BoolVarP(&extended, "extended", "x", false, "print extended columns")

	historyCmd.Flags().IntVarP(&tasknum, "tasknum", "t", 0, "task number (required)")

	recentCmd.Flags().IntVarP(&limit, "limit", "l", 50, "limit status lines to N")
}
