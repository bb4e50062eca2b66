// Package systemd adapts the service-host and service-manager ports to a
// systemd-managed Linux host.
package systemd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ServiceHost = (*Host)(nil)

// Host implements driven.ServiceHost. Stop requests arrive as SIGTERM (the
// manager's stop signal) or SIGINT and are funneled into a single
// notification channel owned by the control loop. State transitions are
// reported through the sd_notify protocol; outside a systemd unit (no
// NOTIFY_SOCKET) reporting is a silent no-op, which keeps the same binary
// usable in the foreground.
type Host struct {
	sigs chan os.Signal
	stop chan struct{}
}

// NewHost creates an unregistered Host.
func NewHost() *Host {
	return &Host{}
}

// Register hooks the process signal handler and returns the stop channel.
// The channel is closed on the first stop signal, so late receivers also
// observe the shutdown.
func (h *Host) Register() (<-chan struct{}, error) {
	h.sigs = make(chan os.Signal, 1)
	h.stop = make(chan struct{})
	signal.Notify(h.sigs, syscall.SIGTERM, os.Interrupt)

	go func() {
		<-h.sigs
		close(h.stop)
	}()

	return h.stop, nil
}

// ReportRunning tells the host the service is up.
func (h *Host) ReportRunning() {
	sdNotify("READY=1")
}

// ReportStopped tells the host the service is shutting down with the given
// exit code.
func (h *Host) ReportStopped(exitCode int) {
	if exitCode == 0 {
		sdNotify("STOPPING=1")
		return
	}
	sdNotify(fmt.Sprintf("STOPPING=1\nSTATUS=stopped with exit code %d", exitCode))
}

// Release undoes the signal registration.
func (h *Host) Release() {
	if h.sigs != nil {
		signal.Stop(h.sigs)
	}
}

// sdNotify sends one state datagram to the socket systemd passed in the
// environment. Best-effort: any failure is swallowed.
func sdNotify(state string) {
	sock := os.Getenv("NOTIFY_SOCKET")
	if sock == "" {
		return
	}
	conn, err := net.Dial("unixgram", sock)
	if err != nil {
		return
	}
	defer conn.Close()
	_, _ = conn.Write([]byte(state))
}
