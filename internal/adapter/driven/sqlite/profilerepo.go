package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProfileStore = (*ProfileRepo)(nil)

// ProfileRepo is the SQLite implementation of the ProfileStore port interface.
// SQLite's value typing is dynamic, so every scalar read defaults safely:
// a wrong-typed or absent value becomes an empty string or false rather than
// a type error, and a row that cannot be scanned at all is skipped during
// enumeration so one damaged profile never hides the others.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates a ProfileRepo backed by the given DB.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// ListAll returns every stored profile ordered by MasterID. The ordering is a
// stable local sort for display; callers must not attach meaning to it.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]model.Profile, error) {
	const query = `SELECT master_id, secret, notify_ipv4, notify_ipv6 FROM profiles ORDER BY master_id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var (
			masterID string
			secret   sql.NullString
			v4, v6   any
		)
		if err := rows.Scan(&masterID, &secret, &v4, &v6); err != nil {
			slog.Warn("skipping unreadable profile record", "error", err)
			continue
		}

		profiles = append(profiles, model.Profile{
			MasterID:   masterID,
			Secret:     secret.String,
			NotifyIPv4: asBool(v4),
			NotifyIPv6: asBool(v6),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// Get returns the profile for the given MasterID, or
// driven.ErrProfileNotFound when no such record exists.
func (r *ProfileRepo) Get(ctx context.Context, masterID string) (model.Profile, error) {
	const query = `SELECT master_id, secret, notify_ipv4, notify_ipv6 FROM profiles WHERE master_id = ?`

	var (
		p      model.Profile
		secret sql.NullString
		v4, v6 any
	)
	err := r.db.Reader.QueryRowContext(ctx, query, masterID).Scan(&p.MasterID, &secret, &v4, &v6)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, driven.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile %q: %w", masterID, err)
	}

	p.Secret = secret.String
	p.NotifyIPv4 = asBool(v4)
	p.NotifyIPv6 = asBool(v6)
	return p, nil
}

// Upsert creates the record when absent, otherwise overwrites the secret and
// notify flags in place. MasterID is the key and cannot be renamed.
func (r *ProfileRepo) Upsert(ctx context.Context, profile model.Profile) error {
	const query = `
		INSERT INTO profiles (master_id, secret, notify_ipv4, notify_ipv6)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(master_id) DO UPDATE SET
			secret = excluded.secret,
			notify_ipv4 = excluded.notify_ipv4,
			notify_ipv6 = excluded.notify_ipv6`

	_, err := r.db.Writer.ExecContext(ctx, query,
		profile.MasterID, profile.Secret, boolToInt(profile.NotifyIPv4), boolToInt(profile.NotifyIPv6))
	if err != nil {
		return fmt.Errorf("upsert profile %q: %w", profile.MasterID, err)
	}
	return nil
}

// Delete removes the entire record for the given MasterID. Returns
// driven.ErrProfileNotFound, leaving the store unchanged, when it does not exist.
func (r *ProfileRepo) Delete(ctx context.Context, masterID string) error {
	const query = `DELETE FROM profiles WHERE master_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, masterID)
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", masterID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return driven.ErrProfileNotFound
	}
	return nil
}

// asBool coerces a dynamically typed flag column to a boolean. Anything that
// is not a recognizable true value (including NULL and wrong-typed text)
// reads as false.
func asBool(v any) bool {
	switch t := v.(type) {
	case int64:
		return t != 0
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return false
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
