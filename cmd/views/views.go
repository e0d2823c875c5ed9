package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wfstat-cloud/wfstat/internal/views"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"github.com/wfstat-cloud/wfstat/pkg/env"
)

const (
	usage   = "views"
	short   = "Manage the reporting views in the monitoring database"
	long    = "This command installs, removes and checks the sqlite reporting views"
	example = "wfstat views create --replace"
)

// Cmd is the views command.
var Cmd = &cobra.Command{
	Use:     usage,
	Short:   short,
	Long:    long,
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

var (
	dbFile  string
	replace bool
)

func init() {
	Cmd.PersistentFlags().StringVarP(&dbFile, "file", "f", "", "monitoring database file")
	createCmd.Flags().BoolVar(&replace, "replace", false, "drop existing views before creating")

	Cmd.AddCommand(createCmd, dropCmd, checkCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the reporting views",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := db.Connection()

		if replace {
			if err := views.Drop(conn); err != nil {
				return err
			}
		}

		if err := views.Create(conn); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "created views: %v\n", strings.Join(views.Names, ", "))
		return err
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the reporting views",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := views.Drop(db.Connection()); err != nil {
			return err
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), "dropped views")
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which views are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		missing, err := views.Missing(db.Connection())
		if err != nil {
			return err
		}

		if len(missing) == 0 {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "all views present")
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "missing views: %v\n", strings.Join(missing, ", "))
		return err
	},
}
