package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new credential profile",
	Long: `Interactively create a credential profile.

You will be asked for the MasterID issued by the DNS provider, the
matching password, and which IP protocols to announce for this profile.`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	in := bufio.NewReader(os.Stdin)

	masterID, err := askLine(in, "MasterID", "")
	if err != nil {
		return err
	}
	if !model.ValidMasterID(masterID) {
		return fmt.Errorf("MasterID %q is not valid: it must start with %q", masterID, model.MasterIDPrefix)
	}
	p := model.NewProfile(masterID)
	if _, err := repo.Get(cmd.Context(), masterID); err == nil {
		return fmt.Errorf("profile %q already exists, use edit to change it", masterID)
	} else if !errors.Is(err, driven.ErrProfileNotFound) {
		return fmt.Errorf("failed to check for existing profile: %w", err)
	}

	p.Secret, err = askSecret(in, "Password", "")
	if err != nil {
		return err
	}
	p.NotifyIPv4, err = askYesNo(in, "Notify IPv4 address?", true)
	if err != nil {
		return err
	}
	p.NotifyIPv6, err = askYesNo(in, "Notify IPv6 address?", true)
	if err != nil {
		return err
	}

	if err := repo.Upsert(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("Saved profile %s.\n", p.MasterID)
	return nil
}
