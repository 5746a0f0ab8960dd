package common

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTKey is one accepted issuer/secret pair.
type JWTKey struct {
	Issuer string
	Secret []byte
}

// AuthClaims are the claims read from bearer tokens.
type AuthClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name,omitempty"`
	Picture           string `json:"picture,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	Role              string `json:"role,omitempty"`
}

var (
	errMissingToken = errors.New("Authorization-Header fehlt")
	errInvalidToken = errors.New("Zugriffstoken ist ungültig")
)

// TokenVerifier validates HS256 bearer tokens against the configured keys.
type TokenVerifier struct {
	keys     []JWTKey
	audience string
	logger   *log.Logger
}

func NewTokenVerifier(keys []JWTKey, audience string, logger *log.Logger) *TokenVerifier {
	return &TokenVerifier{keys: append([]JWTKey(nil), keys...), audience: strings.TrimSpace(audience), logger: logger}
}

// Verify は複数の JWT 設定を順番に試し、署名検証と Issuer/Audience の整合性を確認する。
func (v *TokenVerifier) Verify(tokenString string) (AuthenticatedUser, error) {
	if len(v.keys) == 0 {
		return AuthenticatedUser{}, errors.New("Authentifizierung ist nicht konfiguriert")
	}
	for _, key := range v.keys {
		claims := &AuthClaims{}
		opts := []jwt.ParserOption{jwt.WithLeeway(30 * time.Second), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if key.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(key.Issuer))
		}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return key.Secret, nil
		}, opts...)
		if err != nil || !token.Valid {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if v.audience != "" && !slices.Contains(claims.Audience, v.audience) {
			continue
		}
		return AuthenticatedUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Username: claims.PreferredUsername,
			Picture:  claims.Picture,
			Role:     claims.Role,
		}, nil
	}
	return AuthenticatedUser{}, errInvalidToken
}

// bearer extracts the token. ok is false when no Authorization header was sent.
func bearer(r *http.Request) (token string, present bool, err error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false, nil
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", true, errors.New("Bearer-Token erwartet")
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", true, errors.New("Zugriffstoken ist leer")
	}
	return token, true, nil
}

func (v *TokenVerifier) authenticate(r *http.Request) (AuthenticatedUser, bool, error) {
	token, present, err := bearer(r)
	if !present || err != nil {
		return AuthenticatedUser{}, present, err
	}
	user, err := v.Verify(token)
	return user, true, err
}

// RequireAuth rejects requests without a valid bearer token.
func (v *TokenVerifier) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, present, err := v.authenticate(r)
		if !present {
			err = errMissingToken
		}
		if err != nil {
			WriteJSON(v.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// OptionalAuth passes anonymous requests through but rejects present-and-invalid tokens.
func (v *TokenVerifier) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, present, err := v.authenticate(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			WriteJSON(v.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireAdmin must run after RequireAuth.
func (v *TokenVerifier) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteJSON(v.logger, w, http.StatusUnauthorized, map[string]string{"error": errMissingToken.Error()})
			return
		}
		if !user.IsAdmin() {
			WriteJSON(v.logger, w, http.StatusForbidden, map[string]string{"error": "Administratorrechte erforderlich"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
