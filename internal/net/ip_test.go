package net

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ipNet(s string) *net.IPNet {
	return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
}

func TestPickLANAddr(t *testing.T) {
	tests := []struct {
		name  string
		addrs []net.Addr
		want  string
	}{
		{"private wins", []net.Addr{ipNet("127.0.0.1"), ipNet("203.0.113.7"), ipNet("192.168.1.20")}, "192.168.1.20"},
		{"public when no private", []net.Addr{ipNet("127.0.0.1"), ipNet("203.0.113.7")}, "203.0.113.7"},
		{"ipv6 skipped", []net.Addr{ipNet("fe80::1")}, "127.0.0.1"},
		{"empty", nil, "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickLANAddr(tt.addrs))
		})
	}
}
