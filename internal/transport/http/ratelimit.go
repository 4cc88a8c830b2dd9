package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/metrics"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const (
	scopeAuth = "auth"
	scopeAPI  = "api"
)

// AuthRateLimit guards the credential endpoints with store, keyed by client IP.
func AuthRateLimit(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return rateLimit(scopeAuth, store, "Too many attempts, please try again later", middleware.DefaultSkipper)
}

// apiRateLimit is the coarse limiter over /api. A token bucket refilling
// limit tokens per window approximates limit requests per window.
func apiRateLimit(limit int, window time.Duration) echo.MiddlewareFunc {
	if limit <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(window / time.Duration(limit)),
		Burst:     limit,
		ExpiresIn: window,
	})
	return rateLimit(scopeAPI, store, "Too many requests, please slow down", func(c echo.Context) bool {
		path := c.Request().URL.Path
		return path != "/api" && !strings.HasPrefix(path, "/api/")
	})
}

func rateLimit(scope string, store middleware.RateLimiterStore, message string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, util.Error(CodeForbidden, "Unable to identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RateLimiterRejections.WithLabelValues(scope).Inc()
			return c.JSON(http.StatusTooManyRequests, util.Error(CodeRateLimited, message))
		},
	})
}
