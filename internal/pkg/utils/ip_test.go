package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"空串", "", ""},
		{"纯IPv4", "192.168.1.10", "192.168.1.10"},
		{"带端口", "192.168.1.10:8080", "192.168.1.10"},
		{"XFF列表取第一个", "203.0.113.7, 10.0.0.1, 10.0.0.2", "203.0.113.7"},
		{"XFF列表带端口", "203.0.113.7:443, 10.0.0.1", "203.0.113.7"},
		{"IPv4-mapped IPv6", "::ffff:192.0.2.1", "192.0.2.1"},
		{"纯IPv6", "2001:db8::1", "2001:db8::1"},
		{"IPv6带端口", "[2001:db8::1]:8080", "2001:db8::1"},
		{"非IP原样返回", "not-an-ip", "not-an-ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIP(tt.input))
		})
	}
}
