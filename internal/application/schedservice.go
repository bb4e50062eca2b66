package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// DefaultInterval is the wait between dispatch passes in the service form.
const DefaultInterval = 5 * time.Minute

// Service exit codes reported to the platform host.
const (
	ExitOK            = 0
	ExitConfigMissing = 1
)

// ErrNoProfiles is returned when the service starts with nothing to notify.
// A service with an empty profile set is a fatal startup condition, not a
// retryable one.
var ErrNoProfiles = errors.New("no profiles configured")

// State is the schedule controller's lifecycle phase.
type State string

const (
	StateStarting          State = "starting"
	StateRunning           State = "running"
	StateStoppingRequested State = "stopping-requested"
	StateStopped           State = "stopped"
)

// ScheduleService owns the recurring-dispatch / graceful-shutdown state
// machine of the background service form.
//
// A single control goroutine runs everything: the profile list is loaded once
// at startup and reused for every pass, passes are strictly serial (so
// overlapping calls for the same profile cannot race), and the only blocking
// point is the wait that races the interval timer against the host's stop
// channel. A stop arriving during an in-flight pass is honored at the next
// wait; passes are not preempted mid-profile.
type ScheduleService struct {
	store      driven.ProfileStore
	dispatcher driven.UpdateDispatcher
	host       driven.ServiceHost
	interval   time.Duration

	mu    sync.Mutex
	state State
}

// NewScheduleService creates a ScheduleService. A non-positive interval
// falls back to DefaultInterval.
func NewScheduleService(store driven.ProfileStore, dispatcher driven.UpdateDispatcher, host driven.ServiceHost, interval time.Duration) *ScheduleService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ScheduleService{
		store:      store,
		dispatcher: dispatcher,
		host:       host,
		interval:   interval,
		state:      StateStarting,
	}
}

// State returns the current lifecycle phase.
func (s *ScheduleService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ScheduleService) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	slog.Debug("service state changed", "state", string(st))
}

// Run drives the service until a stop signal arrives. It registers with the
// host, reports Running, loads the profile list once, performs an immediate
// dispatch pass and then alternates wait phase and dispatch pass. On a stop
// signal (or a closed stop channel, or context cancellation) the current pass
// finishes, Stopped is reported with a success exit code and Run returns nil.
// Starting with zero profiles reports Stopped with a configuration exit code
// and returns ErrNoProfiles without a single dispatch call.
func (s *ScheduleService) Run(ctx context.Context) error {
	stopCh, err := s.host.Register()
	if err != nil {
		return fmt.Errorf("register with service host: %w", err)
	}
	defer s.host.Release()

	s.host.ReportRunning()
	slog.Info("service started", "interval", s.interval)

	// Loaded once for the life of the process; edits made by a concurrent
	// interactive instance become visible only after a restart.
	profiles := loadProfiles(ctx, s.store)
	if len(profiles) == 0 {
		slog.Error("no profiles configured, stopping service")
		s.setState(StateStopped)
		s.host.ReportStopped(ExitConfigMissing)
		return ErrNoProfiles
	}

	s.setState(StateRunning)
	s.pass(ctx, profiles)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			s.setState(StateStoppingRequested)
			slog.Info("stop requested")
		case <-ctx.Done():
			s.setState(StateStoppingRequested)
			slog.Info("context canceled, stopping")
		case <-timer.C:
			s.pass(ctx, profiles)
			timer.Reset(s.interval)
			continue
		}

		s.setState(StateStopped)
		s.host.ReportStopped(ExitOK)
		slog.Info("service stopped")
		return nil
	}
}

// pass performs one full dispatch pass over the loaded profiles, in
// enumeration order. Per-profile failures are logged and never abort the
// remaining work.
func (s *ScheduleService) pass(ctx context.Context, profiles []model.Profile) {
	start := time.Now()
	var failures int
	for _, p := range profiles {
		for _, o := range dispatchOne(ctx, s.dispatcher, p) {
			if !o.OK {
				failures++
			}
		}
	}
	slog.Info("dispatch pass complete",
		"profiles", len(profiles),
		"failures", failures,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}
