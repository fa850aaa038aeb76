package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/registryhq/birth-registry/internal/api/metrics"
	"github.com/registryhq/birth-registry/internal/core/token"
)

// UserIDKey is the echo context key under which the gate stores the verified
// token subject.
const UserIDKey = "user_id"

// Auth is the access gate: it extracts the bearer token, verifies it, and
// stores the subject user id in the context. The Authorization header may
// carry either "Bearer <token>" or, for backward compatibility, the raw
// token without prefix.
//
// All failures collapse to one generic 401 so callers cannot tell a missing
// token from an expired or forged one; the internal reason is logged and
// counted.
func Auth(jwtSecret string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
			}

			claims, err := token.Verify(raw, jwtSecret)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				log.Debug().Err(err).
					Str("path", c.Path()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserIDKey, claims.Subject)
			return next(c)
		}
	}
}

// extractToken strips an optional Bearer prefix and returns the bare token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	default:
		return "invalid_signature"
	}
}
