package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wfstat-cloud/wfstat/cmd/console"
	"github.com/wfstat-cloud/wfstat/cmd/maintain"
	"github.com/wfstat-cloud/wfstat/cmd/report"
	"github.com/wfstat-cloud/wfstat/cmd/serve"
	"github.com/wfstat-cloud/wfstat/cmd/views"
)

var cmds = []*cobra.Command{
	serve.Cmd,
	report.Cmd,
	views.Cmd,
	maintain.Cmd,
	console.Cmd,
}

// Execute builds the command tree and executes commands.
func Execute() error {
	command := &cobra.Command{
		Use: "wfstat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	for _, c := range cmds {
		command.AddCommand(c)
	}

	return command.Execute()
}
