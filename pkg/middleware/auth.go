package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/token"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
	msgBlocked      = "Your account has been blocked. Please contact an administrator."
)

// TokenVerifier decodes a session token into the identity it carries.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Identity, error)
}

// StatusLookup reports the current account status of a user id. An empty
// status means the user is unknown.
type StatusLookup interface {
	GetAccountStatus(ctx context.Context, userID string) (entity.UserStatus, error)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

// Authenticate rejects requests without a valid session token and attaches
// the decoded identity to the request context. Non-admin identities are
// checked against the account status; the check fails open when the lookup
// is nil, errors, or does not know the user.
func Authenticate(verifier TokenVerifier, lookup StatusLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				utils.ResponseUnauthorized(w, msgNoToken)
				return
			}

			identity, err := verifier.Verify(raw)
			if err != nil {
				log.Debug("Rejected session token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := utils.SetIdentity(r.Context(), identity)

			if identity.IsAdmin() || lookup == nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			status, err := lookup.GetAccountStatus(ctx, identity.ID)
			if err != nil {
				log.Warn("Account status lookup failed, allowing request",
					zap.Error(err),
					zap.String("user_id", identity.ID),
				)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if status == entity.UserStatusBlocked {
				log.Info("Blocked account rejected",
					zap.String("user_id", identity.ID),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, msgBlocked)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// passes every request through.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if identity, err := verifier.Verify(raw); err == nil {
					r = r.WithContext(utils.SetIdentity(r.Context(), identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits identities whose role is one of roles. It must run
// after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.IdentityFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !slices.Contains(roles, identity.Role) {
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin is RequireRole for the admin role only.
func Admin() func(http.Handler) http.Handler {
	return RequireRole(token.RoleAdmin)
}
