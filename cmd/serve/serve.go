package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wfstat-cloud/wfstat/api"
	"github.com/wfstat-cloud/wfstat/internal/maintenance"
	"github.com/wfstat-cloud/wfstat/internal/views"
	"github.com/wfstat-cloud/wfstat/pkg/db"
	"github.com/wfstat-cloud/wfstat/pkg/env"
	"github.com/wfstat-cloud/wfstat/pkg/log"
)

const (
	usage   = "serve"
	short   = "Serve the monitoring report API"
	long    = "This command serves the wfstat reporting API over the monitoring database"
	example = "wfstat serve"
)

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:        usage,
	Short:      short,
	Long:       long,
	Aliases:    []string{"s"},
	SuggestFor: []string{"start", "api", "server"},
	Example:    example,
	RunE:       serve,
}

var cancel context.CancelFunc

func serve(cmd *cobra.Command, args []string) error {
	signalChan := make(chan os.Signal, 1)

	go func() {
		for s := range signalChan {
			if s == syscall.SIGINT || s == syscall.SIGTERM {
				log.Info("gracefully shutting down", "signal", s)
				shutdown()
				os.Exit(0)
			}
		}
	}()

	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	var errs = make(chan error)
	ctx, cancelFunc := context.WithCancel(context.Background())
	cancel = cancelFunc

	log.Info("checking monitoring database views")
	if err := views.Ensure(db.Connection()); err != nil {
		log.Fatal("view installation failure", "error", err)
	}

	if expr := env.Variables().MaintenanceSchedule; expr != "" {
		sched, err := maintenance.NewSchedule(expr, maintenance.Service(ctx))
		if err != nil {
			log.Fatal("maintenance schedule failure", "error", err)
		}

		go func() {
			log.Info("starting maintenance schedule", "expression", expr)
			sched.Listen(ctx)
		}()
	}

	go func() {
		log.Info("spinning up api")
		errs <- api.Start()
	}()

	defer shutdown()

	return <-errs
}

func shutdown() {
	if cancel != nil {
		cancel()
	}

	if err := api.Shutdown(); err != nil {
		log.Error("api shutdown failure", "error", err)
	}

	// housekeeping pass recommended before process shutdown
	svc := maintenance.Service(context.Background())
	if err := svc.Analyze(); err != nil {
		log.Error("shutdown analyze failure", "error", err)
	}
	if err := svc.Vacuum(); err != nil {
		log.Error("shutdown vacuum failure", "error", err)
	}
}
