package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"weddingplanner/internal/worker"
)

var workerOnce bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the task reminder worker",
	Long:  `Email each event owner a digest of incomplete tasks due soon, on the configured interval.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().BoolVar(&workerOnce, "once", false, "run a single reminder pass and exit")
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	reminder := worker.NewReminder(a.repositories().tasks, a.emails, a.logger, a.reminderConfig())
	if workerOnce {
		sent, err := reminder.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminder email(s)\n", sent)
		return nil
	}
	return reminder.Run(ctx)
}

func (a *app) reminderConfig() worker.ReminderConfig {
	return worker.ReminderConfig{
		Interval:   a.cfg.ReminderInterval,
		WindowDays: a.cfg.ReminderWindowDays,
		AppURL:     a.cfg.AppBaseURL,
	}
}
