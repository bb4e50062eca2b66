package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
)

func waitForCalls(t *testing.T, d *fakeDispatcher, n int) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-d.calledCh:
		case <-deadline:
			t.Fatalf("timed out waiting for dispatch call %d of %d", i+1, n)
		}
	}
}

func TestScheduleService_ZeroProfilesIsFatal(t *testing.T) {
	store := &fakeStore{}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, time.Hour)

	err := svc.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoProfiles)
	assert.Equal(t, StateStopped, svc.State())
	assert.Empty(t, dispatcher.calls())
	assert.Equal(t, []int{ExitConfigMissing}, host.stoppedCodes())
	assert.True(t, host.running)
	assert.True(t, host.released)
}

func TestScheduleService_UnreadableStoreTreatedAsZeroProfiles(t *testing.T) {
	store := &fakeStore{err: assert.AnError}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, time.Hour)

	err := svc.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoProfiles)
	assert.Empty(t, dispatcher.calls())
	assert.Equal(t, []int{ExitConfigMissing}, host.stoppedCodes())
}

func TestScheduleService_StopDuringWaitSkipsExtraPass(t *testing.T) {
	store := &fakeStore{profiles: []model.Profile{model.NewProfile("mydns123456")}}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, time.Hour)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	// The immediate startup pass; the loop is now in its wait phase.
	waitForCalls(t, dispatcher, 1)
	host.stopCh <- struct{}{}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}

	assert.Len(t, dispatcher.calls(), 1)
	assert.Equal(t, StateStopped, svc.State())
	assert.Equal(t, []int{ExitOK}, host.stoppedCodes())
	assert.True(t, host.released)
}

func TestScheduleService_ClosedStopChannelTreatedAsStop(t *testing.T) {
	store := &fakeStore{profiles: []model.Profile{model.NewProfile("mydns123456")}}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, time.Hour)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	waitForCalls(t, dispatcher, 1)
	// Sender side gone: must fail safe toward shutdown, never hang.
	close(host.stopCh)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop on closed channel")
	}
	assert.Equal(t, []int{ExitOK}, host.stoppedCodes())
}

func TestScheduleService_TimerElapseTriggersOnePassPerCycle(t *testing.T) {
	store := &fakeStore{profiles: []model.Profile{model.NewProfile("mydns123456")}}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, 20*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	// Startup pass plus at least two timer-driven passes.
	waitForCalls(t, dispatcher, 3)
	close(host.stopCh)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	assert.GreaterOrEqual(t, len(dispatcher.calls()), 3)
}

func TestScheduleService_ContextCancellationStops(t *testing.T) {
	store := &fakeStore{profiles: []model.Profile{model.NewProfile("mydns123456")}}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	waitForCalls(t, dispatcher, 1)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop on context cancellation")
	}
	assert.Equal(t, StateStopped, svc.State())
}

func TestScheduleService_ProfilesLoadedOnceAtStart(t *testing.T) {
	store := &fakeStore{profiles: []model.Profile{model.NewProfile("mydns123456")}}
	dispatcher := newFakeDispatcher()
	host := newFakeHost()
	svc := NewScheduleService(store, dispatcher, host, 20*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	waitForCalls(t, dispatcher, 1)
	// Concurrent edits are not observed until restart.
	store.profiles = append(store.profiles, model.NewProfile("mydns999999"))

	waitForCalls(t, dispatcher, 2)
	close(host.stopCh)
	<-done

	for _, p := range dispatcher.calls() {
		assert.Equal(t, "mydns123456", p.MasterID)
	}
}

func TestNewScheduleService_DefaultsInterval(t *testing.T) {
	svc := NewScheduleService(&fakeStore{}, newFakeDispatcher(), newFakeHost(), 0)
	assert.Equal(t, DefaultInterval, svc.interval)
	assert.Equal(t, StateStarting, svc.State())
}
