package driven

import (
	"context"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
)

// UpdateDispatcher defines the driven port for sending address update calls
// to the provider.
//
// DispatchProfile attempts each protocol whose notify flag is enabled, IPv4
// before IPv6, and returns one Outcome per attempted protocol. The two
// attempts are independent: a failed IPv4 call never skips IPv6. Failures are
// returned as data, never as an error, and logging them is the caller's
// responsibility. There is no retry within a single call.
type UpdateDispatcher interface {
	DispatchProfile(ctx context.Context, profile model.Profile) []model.Outcome
}
