package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/cache"
	"github.com/lifelog/lifelog/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenIssuer
	Cache  *cache.Cache
}

// Auth returns a middleware that authenticates requests. It extracts the
// bearer token, verifies it, checks the revocation list, and injects the
// caller identity into the request context. Every failure mode produces the
// same 401 body so callers cannot probe why a token was rejected.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			claims, err := cfg.Tokens.Verify(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			revoked, err := cfg.Cache.IsTokenRevoked(r.Context(), claims.ID)
			if err != nil {
				cfg.Logger.Error("revocation check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}
			if revoked {
				logAuthFailure(cfg.Logger, r, "revoked_token")
				writeAuthError(w)
				return
			}

			ac := &model.AuthContext{
				UserID:  claims.Subject,
				TokenID: claims.ID,
			}

			ctx := auth.ContextWithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 response. The body is identical for all auth
// failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":"invalid or missing credentials"}`))
}
