package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/adapter/driven/systemd"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register and start the background service",
	Long: `Write the service unit for this binary, register it with the service
manager, and start it. Store at least one profile first; the service
exits immediately when none exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := systemd.NewManager().Install(cmd.Context()); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}
		fmt.Println("Service installed and started.")
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop and unregister the background service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := systemd.NewManager().Uninstall(cmd.Context()); err != nil {
			return fmt.Errorf("failed to uninstall service: %w", err)
		}
		fmt.Println("Service stopped and removed.")
		return nil
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the background service",
	Long: `Restart the running service. Profiles are read once at service start,
so run this after changing them with add, edit, or remove.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := systemd.NewManager().Restart(cmd.Context()); err != nil {
			return fmt.Errorf("failed to restart service: %w", err)
		}
		fmt.Println("Service restarted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd, uninstallCmd, restartCmd)
}
