package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

type contextKey string

const claimsKey contextKey = "jwt-claims"

// ClaimsFromContext returns the verified claims, or nil for anonymous
// requests.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}

// Authenticator verifies bearer tokens and stores the claims in the request
// context.
type Authenticator struct {
	tokens *jwt.Service
}

// NewAuthenticator creates an Authenticator over the token service.
func NewAuthenticator(tokens *jwt.Service) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) claims(r *http.Request) *jwt.Claims {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

// Optional attaches claims when a valid token is present but lets anonymous
// requests through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := a.claims(r); claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// Required rejects requests without a valid token.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := a.claims(r)
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireAdmin gates a route to admin accounts. It must sit inside Required.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != string(userdb.RoleAdmin) {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// callerID returns the authenticated user's ID, or uuid.Nil for anonymous
// requests.
func callerID(r *http.Request) uuid.UUID {
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		return claims.UserID
	}
	return uuid.Nil
}

// selfOrAdmin reports whether the caller is the target user or an admin.
func selfOrAdmin(r *http.Request, target uuid.UUID) bool {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		return false
	}
	return claims.UserID == target || claims.Role == string(userdb.RoleAdmin)
}
