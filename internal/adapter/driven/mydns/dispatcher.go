// Package mydns sends address update calls to the MyDNS.JP endpoints.
package mydns

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mydnsadapter/mydnsadapter/internal/domain/model"
	"github.com/mydnsadapter/mydnsadapter/internal/domain/port/driven"
)

// Fixed provider endpoints. The provider records whichever source address the
// request arrives from, so the call carries no body; authentication alone
// identifies the record to update.
const (
	DefaultIPv4Endpoint = "https://ipv4.mydns.jp/login.html"
	DefaultIPv6Endpoint = "https://ipv6.mydns.jp/login.html"
)

// Compile-time interface satisfaction check.
var _ driven.UpdateDispatcher = (*Dispatcher)(nil)

// Dispatcher performs the per-protocol update calls for one profile at a
// time. The endpoint URLs are injected at construction so tests can point at
// a local server. A single http.Client is reused for every call; calls are
// issued serially by the control loop, so no locking is needed.
type Dispatcher struct {
	client  *http.Client
	ipv4URL string
	ipv6URL string
}

// NewDispatcher creates a Dispatcher targeting the given endpoint URLs.
// Empty URLs fall back to the fixed provider endpoints.
func NewDispatcher(ipv4URL, ipv6URL string) *Dispatcher {
	if ipv4URL == "" {
		ipv4URL = DefaultIPv4Endpoint
	}
	if ipv6URL == "" {
		ipv6URL = DefaultIPv6Endpoint
	}
	return &Dispatcher{
		client:  &http.Client{},
		ipv4URL: ipv4URL,
		ipv6URL: ipv6URL,
	}
}

// DispatchProfile attempts one authenticated GET per enabled protocol, IPv4
// first, and returns one outcome per attempt. The two protocols are
// independent: an IPv4 failure never skips IPv6. Disabled protocols produce
// no outcome. Failures come back as data; this method never returns an error
// for a single protocol's failure, and it does not retry.
func (d *Dispatcher) DispatchProfile(ctx context.Context, profile model.Profile) []model.Outcome {
	var outcomes []model.Outcome
	if profile.NotifyIPv4 {
		outcomes = append(outcomes, d.notify(ctx, model.ProtocolIPv4, d.ipv4URL, profile))
	}
	if profile.NotifyIPv6 {
		outcomes = append(outcomes, d.notify(ctx, model.ProtocolIPv6, d.ipv6URL, profile))
	}
	return outcomes
}

func (d *Dispatcher) notify(ctx context.Context, proto model.Protocol, url string, profile model.Profile) model.Outcome {
	out := model.Outcome{
		MasterID: profile.MasterID,
		Protocol: proto,
		Endpoint: url,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		out.Reason = fmt.Sprintf("build request: %v", err)
		return out
	}
	req.SetBasicAuth(profile.MasterID, profile.Secret)

	resp, err := d.client.Do(req)
	if err != nil {
		// Transport-level failure: DNS, TLS, timeout, connection refused.
		out.Reason = err.Error()
		return out
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	out.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out.OK = true
		return out
	}
	out.Reason = fmt.Sprintf("unexpected status %s", resp.Status)
	return out
}
