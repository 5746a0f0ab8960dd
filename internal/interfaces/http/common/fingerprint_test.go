package common

import (
	"net/http/httptest"
	"testing"
)

func TestFingerprinterHash(t *testing.T) {
	fp := NewFingerprinter([]byte("secret"))
	a := fp.Hash("203.0.113.7", "Mozilla/5.0")
	if a != fp.Hash(" 203.0.113.7 ", "Mozilla/5.0") {
		t.Fatalf("hash should ignore surrounding whitespace")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %q", a)
	}
	if a == fp.Hash("203.0.113.8", "Mozilla/5.0") || a == fp.Hash("203.0.113.7", "curl/8") {
		t.Fatalf("different clients must hash differently")
	}
	if a == NewFingerprinter([]byte("other")).Hash("203.0.113.7", "Mozilla/5.0") {
		t.Fatalf("hash must depend on the secret")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.4:5678"
	if got := ClientIP(req); got != "198.51.100.4" {
		t.Fatalf("ClientIP = %q", got)
	}
	req.RemoteAddr = "198.51.100.4"
	if got := ClientIP(req); got != "198.51.100.4" {
		t.Fatalf("ClientIP without port = %q", got)
	}
}
