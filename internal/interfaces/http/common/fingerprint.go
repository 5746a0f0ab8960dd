package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// Fingerprinter derives a stable anonymous identity from client IP and user agent.
// Raw values are never stored; only the keyed hash leaves this type.
type Fingerprinter struct {
	secret []byte
}

func NewFingerprinter(secret []byte) *Fingerprinter {
	return &Fingerprinter{secret: append([]byte(nil), secret...)}
}

// Hash returns hex(HMAC-SHA256(secret, ip + "|" + userAgent)).
func (f *Fingerprinter) Hash(ip, userAgent string) string {
	mac := hmac.New(sha256.New, f.secret)
	mac.Write([]byte(strings.TrimSpace(ip) + "|" + strings.TrimSpace(userAgent)))
	return hex.EncodeToString(mac.Sum(nil))
}

// FromRequest hashes the request's client address. RealIP middleware has already rewritten RemoteAddr.
func (f *Fingerprinter) FromRequest(r *http.Request) string {
	return f.Hash(ClientIP(r), r.UserAgent())
}

// ClientIP strips the port from RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
