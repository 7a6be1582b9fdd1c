package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/account-intel/internal/infrastructure/metrics"
)

// Metrics records per-request counters and latency. The route template
// is used as the path label to keep cardinality bounded.
func Metrics(manager *metrics.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			manager.RecordHTTPRequest(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
				time.Since(start),
			)
			return err
		}
	}
}
