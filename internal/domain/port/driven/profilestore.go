// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
)

// ErrProfileNotFound indicates the referenced MasterID does not exist in the
// store. It is surfaced to callers and is not an error condition worth logging.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore defines the driven port for profile persistence.
//
// ListAll tolerates damage: individual unreadable records are skipped rather
// than aborting the scan, and an uninitialized store yields zero profiles.
// Get and Delete return ErrProfileNotFound for unknown ids; Delete leaves the
// store unchanged in that case. Upsert creates the record when absent and
// otherwise overwrites the secret and notify flags in place.
type ProfileStore interface {
	ListAll(ctx context.Context) ([]model.Profile, error)
	Get(ctx context.Context, masterID string) (model.Profile, error)
	Upsert(ctx context.Context, profile model.Profile) error
	Delete(ctx context.Context, masterID string) error
}
