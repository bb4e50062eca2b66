package driven

import "context"

// ServiceHost defines the driven port through which the schedule loop talks
// to the platform's service manager.
//
// Register hooks the host's stop/interrogate callback and returns the channel
// it feeds; a receive (or a close of the channel, should the sender side go
// away) means shutdown. ReportRunning and ReportStopped publish the service
// state to the host at the loop's transitions; both are best-effort.
// Release undoes the registration.
type ServiceHost interface {
	Register() (<-chan struct{}, error)
	ReportRunning()
	ReportStopped(exitCode int)
	Release()
}

// ServiceManager defines the driven port for one-shot administrative
// operations against the platform service manager. Each call is made once
// and its success or failure reported back to the operator; there is no
// elevation handling beyond surfacing the OS error.
type ServiceManager interface {
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
	Restart(ctx context.Context) error
}
