package middleware

import (
	"strconv"
	"time"

	"dealsHub/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records per-route request counts and latencies.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Run the error handler now so the recorded status reflects
				// the mapped error response, not the pre-error default.
				c.Error(err)
				err = nil
			}

			method := c.Request().Method
			path := c.Path()
			if path == "" {
				path = "unknown"
			}

			metrics.HTTPRequestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()

			return err
		}
	}
}
