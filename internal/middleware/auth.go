package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"interviewprep/api/internal/models"
	"interviewprep/api/internal/utils"
)

const identityKey contextKey = "identity"

// Authenticator verifies identity provider bearer tokens.
type Authenticator struct {
	secret string
	issuer string
	logger *zap.Logger
}

func NewAuthenticator(secret, issuer string, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{secret: secret, issuer: issuer, logger: logger}
}

// RequireAuth rejects requests without a valid token.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identify(r)
		if err != nil {
			a.logger.Debug("Rejected unauthenticated request", zap.String("path", r.URL.Path), zap.Error(err))
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		identity, err := a.identify(r)
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (a *Authenticator) identify(r *http.Request) (utils.Identity, error) {
	claims, err := utils.VerifyToken(r, a.secret, a.issuer)
	if err != nil {
		return utils.Identity{}, err
	}
	return utils.IdentityFromClaims(claims)
}

func unauthorized(w http.ResponseWriter) {
	utils.Failure(w, http.StatusUnauthorized, models.ErrorResponse{
		Code:    "unauthorized",
		Message: "Unauthorized",
	})
}

func WithIdentity(ctx context.Context, identity utils.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the verified identity, if any.
func IdentityFromContext(ctx context.Context) (utils.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(utils.Identity)
	return identity, ok
}
