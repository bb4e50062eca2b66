package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored profiles with masked passwords",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	profiles, err := repo.ListAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MASTERID\tPASSWORD\tIPV4\tIPV6")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.MasterID, maskSecret(p.Secret), onOff(p.NotifyIPv4), onOff(p.NotifyIPv6))
	}
	return w.Flush()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
