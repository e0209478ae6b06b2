package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker_AllowAll(t *testing.T) {
	t.Parallel()

	for _, origins := range [][]string{{"*"}, nil} {
		oc := NewOriginChecker(origins)
		req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("Origin", "https://evil.com")

		assert.True(t, oc.Check(req))
		assert.True(t, oc.AllowAll())
	}
}

func TestOriginChecker_SpecificOrigins(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://example.com", "https://App.example.com"})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://example.com", true},
		{"https://app.example.com", true},
		{"https://evil.com", false},
		{"http://example.com", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			t.Parallel()

			req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.allowed, oc.Check(req))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expectedIP string
	}{
		{"direct connection", "192.168.1.1:12345", nil, "192.168.1.1"},
		{"forwarded single", "10.0.0.1:12345", map[string]string{"X-Forwarded-For": "203.0.113.1"}, "203.0.113.1"},
		{"forwarded chain", "10.0.0.1:12345", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2"}, "203.0.113.1"},
		{"real ip", "10.0.0.1:12345", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"no port", "192.168.1.9", nil, "192.168.1.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expectedIP, GetClientIP(req))
		})
	}
}
