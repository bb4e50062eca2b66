package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

var removeCmd = &cobra.Command{
	Use:   "remove <master-id>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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

	masterID := args[0]
	if _, err := repo.Get(cmd.Context(), masterID); errors.Is(err, driven.ErrProfileNotFound) {
		return fmt.Errorf("no profile named %q", masterID)
	} else if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	in := bufio.NewReader(os.Stdin)
	ok, err := askYesNo(in, fmt.Sprintf("Really delete %s?", masterID), false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	if err := repo.Delete(cmd.Context(), masterID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	fmt.Printf("Deleted profile %s.\n", masterID)
	return nil
}
