package handler

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPResistsSpoofedForwardedFor(t *testing.T) {
	cases := []struct {
		name      string
		forwarded string
		remote    string
		want      string
	}{
		{name: "no header uses remote addr", remote: "10.0.0.5:41234", want: "10.0.0.5"},
		{name: "single proxy hop", forwarded: "203.0.113.7", remote: "10.0.0.1:80", want: "203.0.113.7"},
		{name: "spoofed prefix ignored", forwarded: "6.6.6.6, 203.0.113.7", remote: "10.0.0.1:80", want: "203.0.113.7"},
		{name: "blank header falls back", forwarded: "  ", remote: "10.0.0.5:41234", want: "10.0.0.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := clientIP(r); got != tc.want {
				t.Errorf("clientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}
