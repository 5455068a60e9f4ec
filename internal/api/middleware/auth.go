package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/service/auth"
)

// AuthMiddleware guards routes behind JWT bearer authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware validating tokens with jwtService.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the Authorization bearer token and stores its
// subject in the request context for handlers downstream. Token
// failures respond 401 and log at WARN; anything the verifier reports
// beyond its own sentinels responds 500.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			if r.Header.Get("Authorization") == "" {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			// Equality, not errors.Is: a wrapped sentinel means the
			// verifier added detail we must not echo to the client,
			// so it falls through to the opaque 500.
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Token expired", err, shared.WithElevatedLogLevel())
			case auth.ErrTokenNotYetValid:
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Token not yet valid", err, shared.WithElevatedLogLevel())
			case auth.ErrInvalidToken:
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Invalid token", err, shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.SubjectContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken pulls the token out of the Authorization header. The
// second return is false when the header is missing or not of the
// form "Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// GetSubject extracts the authenticated token subject from the request
// context. The second return reports whether a non-empty subject was set.
func GetSubject(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(shared.SubjectContextKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
