package maintain

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wfstat-cloud/wfstat/internal/maintenance"
	"github.com/wfstat-cloud/wfstat/pkg/env"
)

const (
	usage   = "maintain"
	short   = "Run maintenance routines against the monitoring database"
	long    = "This command runs the schema migration, index build and housekeeping routines"
	example = "wfstat maintain vacuum -f ./monitoring.db"
)

// Cmd is the maintain command.
var Cmd = &cobra.Command{
	Use:     usage,
	Short:   short,
	Long:    long,
	Aliases: []string{"m"},
	Example: example,
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

var dbFile string

func init() {
	Cmd.PersistentFlags().StringVarP(&dbFile, "file", "f", "", "monitoring database file")

	Cmd.AddCommand(migrateCmd, reindexCmd, analyzeCmd, vacuumCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the one-time schema migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := maintenance.Service(cmd.Context())

		if err := svc.Migrate(); err != nil {
			return err
		}

		version, err := svc.Version()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrated to schema version %v\n", version)
		return err
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Build the task hash index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return maintenance.Service(cmd.Context()).Reindex()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Refresh the query planner statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return maintenance.Service(cmd.Context()).Analyze()
	},
}

var vacuumCmd = &cobra.Command{
	Use:   "vacuum",
	Short: "Reclaim unused space",
	RunE: func(cmd *cobra.Command, args []string) error {
		return maintenance.Service(cmd.Context()).Vacuum()
	},
}
