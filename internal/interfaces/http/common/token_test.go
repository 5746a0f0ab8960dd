package common

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret []byte, claims AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func validClaims(subject, role string) AuthClaims {
	return AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "doner-auth",
			Audience:  jwt.ClaimStrings{"doner-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: role,
	}
}

func TestTokenVerifierVerify(t *testing.T) {
	secret := []byte("s3cret")
	verifier := NewTokenVerifier([]JWTKey{{Issuer: "other", Secret: []byte("x")}, {Issuer: "doner-auth", Secret: secret}}, "doner-api", nil)

	user, err := verifier.Verify(signTestToken(t, secret, validClaims("user-1", RoleAdmin)))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.ID != "user-1" || !user.IsAdmin() {
		t.Fatalf("unexpected user %+v", user)
	}

	expired := validClaims("user-1", "")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	wrongAudience := validClaims("user-1", "")
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}
	noSubject := validClaims("", "")

	for name, token := range map[string]string{
		"expired":        signTestToken(t, secret, expired),
		"wrong audience": signTestToken(t, secret, wrongAudience),
		"no subject":     signTestToken(t, secret, noSubject),
		"wrong secret":   signTestToken(t, []byte("nope"), validClaims("user-1", "")),
	} {
		if _, err := verifier.Verify(token); err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}

func TestAuthMiddlewares(t *testing.T) {
	secret := []byte("s3cret")
	logger := log.New(io.Discard, "", 0)
	verifier := NewTokenVerifier([]JWTKey{{Issuer: "doner-auth", Secret: secret}}, "doner-api", logger)
	userToken := signTestToken(t, secret, validClaims("user-1", ""))
	adminToken := signTestToken(t, secret, validClaims("admin-1", RoleAdmin))

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, authed := UserFromContext(r.Context()); authed {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		status  int
	}{
		{"require without header", verifier.RequireAuth(ok), "", http.StatusUnauthorized},
		{"require with token", verifier.RequireAuth(ok), "Bearer " + userToken, http.StatusAccepted},
		{"require with basic scheme", verifier.RequireAuth(ok), "Basic abc", http.StatusUnauthorized},
		{"optional anonymous", verifier.OptionalAuth(ok), "", http.StatusOK},
		{"optional with token", verifier.OptionalAuth(ok), "Bearer " + userToken, http.StatusAccepted},
		{"optional with invalid token", verifier.OptionalAuth(ok), "Bearer broken", http.StatusUnauthorized},
		{"admin as user", verifier.RequireAuth(verifier.RequireAdmin(ok)), "Bearer " + userToken, http.StatusForbidden},
		{"admin as admin", verifier.RequireAuth(verifier.RequireAdmin(ok)), "Bearer " + adminToken, http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
