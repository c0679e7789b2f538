// Package identity carries the authenticated caller's user id through the
// request context. Tokens are issued by the external identity provider and
// verified here with a shared HS256 secret.
package identity

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DevHeader names the development fallback header.
const DevHeader = "X-User-ID"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Verifier signs and parses tokens and resolves callers from requests.
type Verifier struct {
	secret     []byte
	cookieName string
	allowDev   bool
}

func NewVerifier(secret, cookieName string, allowDev bool) *Verifier {
	return &Verifier{secret: []byte(secret), cookieName: cookieName, allowDev: allowDev}
}

func (v *Verifier) Sign(userID int64, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(v.secret)
}

func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid && c.UserID > 0 {
		return c, nil
	}
	return nil, ErrInvalidToken
}

// FromRequest resolves the caller: bearer token, then session cookie, then
// the dev header when allowed. ok is false for anonymous requests.
func (v *Verifier) FromRequest(r *http.Request) (int64, bool) {
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if c, err := v.Parse(strings.TrimSpace(parts[1])); err == nil {
				return c.UserID, true
			}
		}
	}
	if v.cookieName != "" {
		if c, err := r.Cookie(v.cookieName); err == nil && c.Value != "" {
			if claims, err := v.Parse(c.Value); err == nil {
				return claims.UserID, true
			}
		}
	}
	if v.allowDev {
		if s := strings.TrimSpace(r.Header.Get(DevHeader)); s != "" {
			if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
				return id, true
			}
		}
	}
	return 0, false
}

// Middleware attaches the resolved caller to the request context. Anonymous
// requests pass through untouched; handlers decide whether identity is
// required.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := v.FromRequest(r); ok {
			r = r.WithContext(WithUser(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

type contextKey struct{}

func WithUser(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserFrom returns the caller's user id stored by Middleware.
func UserFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKey{}).(int64)
	return id, ok
}
