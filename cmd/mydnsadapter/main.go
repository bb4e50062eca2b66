// Package main is the entry point for the mydnsadapter CLI.
//
// The same binary serves both roles: interactive profile management
// (add/edit/remove/list), immediate notification (notify), and the
// background service form (serve, plus install/uninstall/restart for the
// platform service manager).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mydnsadapter/mydnsadapter/internal/adapter/driven/sqlite"
	"github.com/mydnsadapter/mydnsadapter/internal/config"
	"github.com/mydnsadapter/mydnsadapter/internal/logging"
)

// Version information - set at build time via ldflags.
var version = "dev"

// rootCmd is the base command; running without a subcommand shows help.
var rootCmd = &cobra.Command{
	Use:   "mydnsadapter",
	Short: "Keep MyDNS.JP records pointed at this host",
	Long: `mydnsadapter keeps the MyDNS.JP dynamic-DNS service informed of this
host's current public IP addresses.

It stores one or more named credential profiles and, either on demand
(notify) or every five minutes while running as a background service
(serve), sends an authenticated update request for each enabled protocol
of each profile.

Quick start:
  1. mydnsadapter add            # store a MasterID and password
  2. mydnsadapter notify         # push the current addresses once
  3. mydnsadapter install        # run it permanently as a service`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mydnsadapter %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file")
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the logger. Every subcommand calls
// it first; the returned cleanup closes the log file.
func setup(cmd *cobra.Command) (*config.Config, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cleanup := logging.Init(cfg.LogPath, cfg.LogLevel)
	return cfg, cleanup, nil
}

// openStore opens the profile database and applies pending migrations.
func openStore(cfg *config.Config) (*sqlite.DB, *sqlite.ProfileRepo, error) {
	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open profile store: %w", err)
	}
	if err := sqlite.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate profile store: %w", err)
	}
	return db, sqlite.NewProfileRepo(db), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}
