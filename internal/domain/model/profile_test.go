package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProfileDefaults(t *testing.T) {
	p := NewProfile("mydns123456")

	assert.Equal(t, "mydns123456", p.MasterID)
	assert.Empty(t, p.Secret)
	assert.True(t, p.NotifyIPv4)
	assert.True(t, p.NotifyIPv6)
	assert.False(t, p.HasSecret())
}

func TestHasSecret(t *testing.T) {
	p := NewProfile("mydns123456")
	p.Secret = "hunter2"
	assert.True(t, p.HasSecret())
}

func TestValidMasterID(t *testing.T) {
	tests := []struct {
		name     string
		masterID string
		want     bool
	}{
		{name: "typical id", masterID: "mydns123456", want: true},
		{name: "prefix alone", masterID: "mydns", want: true},
		{name: "missing prefix", masterID: "123456", want: false},
		{name: "wrong case", masterID: "MyDNS123456", want: false},
		{name: "empty", masterID: "", want: false},
		{name: "prefix not at start", masterID: "xmydns123456", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMasterID(tt.masterID))
		})
	}
}
