// Package model contains the domain value types.
package model

import "strings"

// MasterIDPrefix is the literal prefix every MyDNS.JP MasterID carries.
// The add flow rejects ids without it; the store itself does not re-validate.
const MasterIDPrefix = "mydns"

// Profile is one stored credential and per-protocol preference set.
// MasterID is the store's primary key and is immutable once created;
// changing an id means deleting the profile and adding a new one.
type Profile struct {
	MasterID   string
	Secret     string
	NotifyIPv4 bool
	NotifyIPv6 bool
}

// NewProfile returns a profile for the given id with both notify flags
// enabled, the default for newly added profiles.
func NewProfile(masterID string) Profile {
	return Profile{
		MasterID:   masterID,
		NotifyIPv4: true,
		NotifyIPv6: true,
	}
}

// HasSecret reports whether a secret has been set. A profile without one is
// kept so operators can be warned instead of silently skipped; dispatching it
// is expected to fail server-side.
func (p Profile) HasSecret() bool {
	return p.Secret != ""
}

// ValidMasterID reports whether the id satisfies the provider naming
// convention required before a profile may be created.
func ValidMasterID(masterID string) bool {
	return strings.HasPrefix(masterID, MasterIDPrefix)
}
