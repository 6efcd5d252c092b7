package http

import (
	"log/slog"
	"strings"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

var errMissingToken = errs.NewUnauthenticatedError("missing bearer token")

// Authenticate resolves the bearer token to a principal. Requests without a valid
// token stop here with 401; which role may do what is decided by the access gate.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return errMissingToken
			}

			principal, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// principalOf returns the zero principal when Authenticate did not run, which the
// gate rejects as unauthenticated.
func principalOf(c echo.Context) identity.Principal {
	p, _ := c.Get(principalKey).(identity.Principal)
	return p
}

// RecordOperations counts every API call by route and error kind.
func RecordOperations(metrics *telemetry.OperationMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			metrics.Record(c.Request().Context(), c.Request().Method+" "+c.Path(), started, err)
			return err
		}
	}
}

// RequestLogger logs one line per request after the error handler has run.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "outcome", telemetry.Outcome(v.Error))
				logger.WarnContext(c.Request().Context(), "request", attrs...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
