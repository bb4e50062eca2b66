// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// NotifyService performs on-demand dispatch passes without entering any wait
// state. It is the entry point behind the CLI's immediate-notify commands.
type NotifyService struct {
	store      driven.ProfileStore
	dispatcher driven.UpdateDispatcher
}

// NewNotifyService creates a NotifyService.
func NewNotifyService(store driven.ProfileStore, dispatcher driven.UpdateDispatcher) *NotifyService {
	return &NotifyService{store: store, dispatcher: dispatcher}
}

// NotifyAll performs exactly one full dispatch pass over every stored
// profile. useIPv4/useIPv6 mask the profile flags: a protocol is attempted
// only when both the caller requested it and the profile enables it. An
// unreadable store is treated as zero profiles on this path; the condition is
// logged, never surfaced as an error. Outcomes are returned for the caller to
// summarize.
func (s *NotifyService) NotifyAll(ctx context.Context, useIPv4, useIPv6 bool) []model.Outcome {
	slog.Info("immediate notify starting", "ipv4", useIPv4, "ipv6", useIPv6)

	profiles := loadProfiles(ctx, s.store)
	if len(profiles) == 0 {
		slog.Error("no profiles configured, nothing to notify")
		return nil
	}

	var all []model.Outcome
	for _, p := range profiles {
		p.NotifyIPv4 = p.NotifyIPv4 && useIPv4
		p.NotifyIPv6 = p.NotifyIPv6 && useIPv6
		all = append(all, dispatchOne(ctx, s.dispatcher, p)...)
	}

	slog.Info("immediate notify finished", "profiles", len(profiles), "outcomes", len(all))
	return all
}

// loadProfiles reads the store, collapsing "store unreadable" into the same
// empty result as "no profiles configured" for the dispatch path. The
// interactive layer reads the store directly when it needs to distinguish.
func loadProfiles(ctx context.Context, store driven.ProfileStore) []model.Profile {
	profiles, err := store.ListAll(ctx)
	if err != nil {
		slog.Error("profile store unreadable, treating as empty", "error", err)
		return nil
	}
	return profiles
}

// dispatchOne runs one profile's dispatch and logs every outcome; dispatch
// failures are local and never abort the remaining work.
func dispatchOne(ctx context.Context, dispatcher driven.UpdateDispatcher, p model.Profile) []model.Outcome {
	if !p.HasSecret() {
		slog.Warn("profile has no secret set, update will be rejected", "master_id", p.MasterID)
	}
	outcomes := dispatcher.DispatchProfile(ctx, p)
	for _, o := range outcomes {
		if o.OK {
			slog.Info("update accepted",
				"master_id", o.MasterID,
				"protocol", string(o.Protocol),
				"endpoint", o.Endpoint,
				"status", o.StatusCode,
			)
		} else {
			slog.Error("update failed",
				"master_id", o.MasterID,
				"protocol", string(o.Protocol),
				"endpoint", o.Endpoint,
				"reason", o.Reason,
			)
		}
	}
	return outcomes
}
