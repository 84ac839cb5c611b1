// Package session maps a request to the profile identifier carried by the
// identity provider's access token.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
)

// CookieName is the cookie checked when no Authorization header is present.
const CookieName = "access_token"

var ErrNoSubject = errors.New("token has no subject")

type contextKey struct{}

// Verifier checks HS256 access tokens signed with the provider's JWT secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Subject verifies token and returns its subject, the profile identifier.
func (v *Verifier) Subject(token string) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("no jwt secret configured")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}

// Middleware attaches the profile identifier of a valid token to the
// request context. Requests without a valid token pass through anonymous.
func (v *Verifier) Middleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearer(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			subject, err := v.Subject(token)
			if err != nil {
				logger.Debugf("session: rejected token: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfileID(r.Context(), subject)))
		})
	}
}

func bearer(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, contextKey{}, profileID)
}

func ProfileID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Resolve builds the gate viewer for the request's session. The profile
// stays unresolved until the profile store has loaded and holds the
// session's profile.
func Resolve(ctx context.Context, profiles *store.Collection[models.Profile]) gate.Viewer {
	id, ok := ProfileID(ctx)
	if !ok || !profiles.Loaded() {
		return gate.Viewer{}
	}
	p, found := profiles.Get(id)
	if !found {
		return gate.Viewer{}
	}
	return gate.Viewer{Profile: &p}
}
