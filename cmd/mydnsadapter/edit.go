package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

var editCmd = &cobra.Command{
	Use:   "edit [master-id]",
	Short: "Change a stored profile's password or protocol flags",
	Long: `Interactively edit an existing profile.

When no MasterID is given the stored profiles are listed and you pick one
by number. The MasterID itself cannot be changed; remove and re-add the
profile to rename it. Leaving the password empty keeps the current one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	var p model.Profile
	if len(args) == 1 {
		p, err = repo.Get(cmd.Context(), args[0])
		if errors.Is(err, driven.ErrProfileNotFound) {
			return fmt.Errorf("no profile named %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
	} else {
		p, err = pickProfile(cmd, in, repo)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Editing %s (current password %s)\n", p.MasterID, maskSecret(p.Secret))

	p.Secret, err = askSecret(in, "Password (empty keeps current)", p.Secret)
	if err != nil {
		return err
	}
	p.NotifyIPv4, err = askYesNo(in, "Notify IPv4 address?", p.NotifyIPv4)
	if err != nil {
		return err
	}
	p.NotifyIPv6, err = askYesNo(in, "Notify IPv6 address?", p.NotifyIPv6)
	if err != nil {
		return err
	}

	if err := repo.Upsert(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("Updated profile %s.\n", p.MasterID)
	return nil
}

// pickProfile lists all profiles and asks the operator to choose one by
// its number or full MasterID.
func pickProfile(cmd *cobra.Command, in *bufio.Reader, repo driven.ProfileStore) (model.Profile, error) {
	profiles, err := repo.ListAll(cmd.Context())
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return model.Profile{}, errors.New("no profiles stored, use add first")
	}
	for i, p := range profiles {
		fmt.Printf("  %d) %s\n", i+1, p.MasterID)
	}
	answer, err := askLine(in, "Profile to edit", "")
	if err != nil {
		return model.Profile{}, err
	}
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(profiles) {
		return profiles[n-1], nil
	}
	for _, p := range profiles {
		if p.MasterID == answer {
			return p, nil
		}
	}
	return model.Profile{}, fmt.Errorf("no profile matching %q", answer)
}
