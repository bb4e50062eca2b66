package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/adapter/driven/mydns"
	"github.com/mydnsadapter/mydnsadapter/internal/application"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send one update for every stored profile",
	Long: `Send an authenticated update request for each enabled protocol of each
stored profile, once, and report the per-endpoint results.

With --ipv4 or --ipv6 only that protocol is attempted; giving neither
flag attempts both. A profile's own protocol preferences still apply.`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().BoolP("ipv4", "4", false, "only notify the IPv4 endpoint")
	notifyCmd.Flags().BoolP("ipv6", "6", false, "only notify the IPv6 endpoint")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
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

	useIPv4, _ := cmd.Flags().GetBool("ipv4")
	useIPv6, _ := cmd.Flags().GetBool("ipv6")
	if !useIPv4 && !useIPv6 {
		useIPv4, useIPv6 = true, true
	}

	dispatcher := mydns.NewDispatcher(cfg.IPv4Endpoint, cfg.IPv6Endpoint)
	svc := application.NewNotifyService(repo, dispatcher)

	outcomes := svc.NotifyAll(cmd.Context(), useIPv4, useIPv6)
	if len(outcomes) == 0 {
		fmt.Println("Nothing to notify.")
		return nil
	}

	failed := 0
	for _, o := range outcomes {
		if o.OK {
			fmt.Printf("ok    %s %s\n", o.MasterID, o.Protocol)
		} else {
			failed++
			fmt.Printf("fail  %s %s: %s\n", o.MasterID, o.Protocol, o.Reason)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d updates failed", failed, len(outcomes))
	}
	return nil
}
