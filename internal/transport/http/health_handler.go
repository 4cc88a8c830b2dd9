package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Database  string    `json:"db" example:"up"`
	Timestamp time.Time `json:"timestamp"`
}

// RegisterHealth mounts GET /api/health. A failing database ping reports
// "degraded" with 503.
func RegisterHealth(e *echo.Echo, db Pinger) {
	e.GET("/api/health", func(c echo.Context) error {
		resp := HealthResponse{Status: "healthy", Database: "up", Timestamp: time.Now().UTC()}
		status := http.StatusOK

		if db == nil {
			resp.Status, resp.Database = "degraded", "unconfigured"
			status = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				log.Printf("health: database ping failed: %v", err)
				resp.Status, resp.Database = "degraded", "down"
				status = http.StatusServiceUnavailable
			}
		}
		return c.JSON(status, resp)
	})
}
