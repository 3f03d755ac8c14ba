package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:42100"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Fatalf("remote addr ip = %q, want 10.0.0.1", got)
	}

	r.Header.Set("X-Real-IP", "203.0.113.9")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("x-real-ip = %q, want 203.0.113.9", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	if got := ClientIP(r); got != "198.51.100.4" {
		t.Fatalf("x-forwarded-for = %q, want 198.51.100.4", got)
	}
}
