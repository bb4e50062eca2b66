package systemd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ServiceManager = (*Manager)(nil)

const (
	serviceName = "mydnsadapter.service"
	unitPath    = "/etc/systemd/system/" + serviceName
)

const unitTemplate = `[Unit]
Description=MyDNS.JP IP address notifier
After=network-online.target
Wants=network-online.target

[Service]
Type=notify
ExecStart=%s serve
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// Manager implements driven.ServiceManager over systemctl. Each operation is
// a single administrative call; insufficient privileges surface as the OS
// error, there is no elevation handling here.
type Manager struct{}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Install writes the unit file pointing at the current executable, then
// enables and starts the service.
func (m *Manager) Install(ctx context.Context) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	unit := fmt.Sprintf(unitTemplate, exe)
	if err := os.WriteFile(unitPath, []byte(unit), 0o644); err != nil {
		return fmt.Errorf("write unit file: %w", err)
	}

	if err := systemctl(ctx, "daemon-reload"); err != nil {
		return err
	}
	return systemctl(ctx, "enable", "--now", serviceName)
}

// Uninstall stops and disables the service and removes the unit file.
func (m *Manager) Uninstall(ctx context.Context) error {
	if err := systemctl(ctx, "disable", "--now", serviceName); err != nil {
		return err
	}
	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove unit file: %w", err)
	}
	return systemctl(ctx, "daemon-reload")
}

// Restart restarts the running service.
func (m *Manager) Restart(ctx context.Context) error {
	return systemctl(ctx, "restart", serviceName)
}

func systemctl(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "systemctl", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", args[0], err, string(out))
	}
	return nil
}
