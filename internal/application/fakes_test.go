package application

import (
	"context"
	"sync"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// fakeStore serves a fixed profile list or a fixed error.
type fakeStore struct {
	profiles []model.Profile
	err      error
}

var _ driven.ProfileStore = (*fakeStore)(nil)

func (f *fakeStore) ListAll(context.Context) ([]model.Profile, error) { return f.profiles, f.err }

func (f *fakeStore) Get(_ context.Context, masterID string) (model.Profile, error) {
	for _, p := range f.profiles {
		if p.MasterID == masterID {
			return p, nil
		}
	}
	return model.Profile{}, driven.ErrProfileNotFound
}

func (f *fakeStore) Upsert(_ context.Context, p model.Profile) error {
	for i := range f.profiles {
		if f.profiles[i].MasterID == p.MasterID {
			f.profiles[i] = p
			return nil
		}
	}
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, masterID string) error {
	for i := range f.profiles {
		if f.profiles[i].MasterID == masterID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return driven.ErrProfileNotFound
}

// fakeDispatcher records every dispatched profile and synthesizes one OK
// outcome per enabled protocol. calledCh gets a signal per call so tests can
// wait for pass boundaries without sleeping.
type fakeDispatcher struct {
	mu       sync.Mutex
	profiles []model.Profile
	calledCh chan struct{}
}

var _ driven.UpdateDispatcher = (*fakeDispatcher)(nil)

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{calledCh: make(chan struct{}, 64)}
}

func (f *fakeDispatcher) DispatchProfile(_ context.Context, p model.Profile) []model.Outcome {
	f.mu.Lock()
	f.profiles = append(f.profiles, p)
	f.mu.Unlock()

	select {
	case f.calledCh <- struct{}{}:
	default:
	}

	var outcomes []model.Outcome
	if p.NotifyIPv4 {
		outcomes = append(outcomes, model.Outcome{MasterID: p.MasterID, Protocol: model.ProtocolIPv4, OK: true, StatusCode: 200})
	}
	if p.NotifyIPv6 {
		outcomes = append(outcomes, model.Outcome{MasterID: p.MasterID, Protocol: model.ProtocolIPv6, OK: true, StatusCode: 200})
	}
	return outcomes
}

func (f *fakeDispatcher) calls() []model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Profile(nil), f.profiles...)
}

// fakeHost stands in for the platform service manager: the test driver owns
// the sender side of the stop channel.
type fakeHost struct {
	stopCh chan struct{}

	mu       sync.Mutex
	running  bool
	released bool
	stopped  []int
}

var _ driven.ServiceHost = (*fakeHost)(nil)

func newFakeHost() *fakeHost {
	return &fakeHost{stopCh: make(chan struct{})}
}

func (f *fakeHost) Register() (<-chan struct{}, error) { return f.stopCh, nil }

func (f *fakeHost) ReportRunning() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
}

func (f *fakeHost) ReportStopped(exitCode int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, exitCode)
}

func (f *fakeHost) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
}

func (f *fakeHost) stoppedCodes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.stopped...)
}
