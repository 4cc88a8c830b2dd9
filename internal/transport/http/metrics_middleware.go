package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/metrics"
)

// metricsMiddleware records request counters and latency. Routes are labelled
// by their registered pattern so path parameters never become label values.
func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method

			metrics.RequestInProgress.WithLabelValues(method, path).Inc()
			defer metrics.RequestInProgress.WithLabelValues(method, path).Dec()

			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if err != nil && !c.Response().Committed {
				code = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					code = he.Code
				}
			}
			status := strconv.Itoa(code)
			metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
			metrics.RequestDuration.WithLabelValues(status, method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
