package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/adapter/driven/mydns"
	"github.com/mydnsadapter/mydnsadapter/internal/adapter/driven/systemd"
	"github.com/mydnsadapter/mydnsadapter/internal/application"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic updater in the foreground",
	Long: `Run the updater as a long-lived process: send one update pass
immediately, then one every poll interval until stopped.

This is the process the installed service unit runs. It refuses to start
when no profiles are stored, exiting nonzero so the service manager
reports the misconfiguration instead of idling.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	db, repo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher := mydns.NewDispatcher(cfg.IPv4Endpoint, cfg.IPv6Endpoint)
	svc := application.NewScheduleService(repo, dispatcher, systemd.NewHost(), cfg.PollInterval.Duration())

	if err := svc.Run(cmd.Context()); err != nil {
		if errors.Is(err, application.ErrNoProfiles) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			cleanup()
			_ = db.Close()
			os.Exit(application.ExitConfigMissing)
		}
		return err
	}
	return nil
}
