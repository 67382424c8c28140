// Package health provides health check endpoints for the showroom service.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type Response struct {
	Status     Status                 `json:"status"`
	Version    string                 `json:"version,omitempty"`
	Uptime     string                 `json:"uptime,omitempty"`
	Checks     map[string]CheckResult `json:"checks,omitempty"`
	ReportedAt time.Time              `json:"reported_at"`
}

// Pinger is satisfied by database.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CatalogCounter reports how many products the catalog holds. An empty
// catalog still serves requests but every resolution ends at tier none.
type CatalogCounter interface {
	CountProducts(ctx context.Context) (int, error)
}

type Checker struct {
	db        Pinger
	catalog   CatalogCounter
	startTime time.Time
	version   string
	ready     atomic.Bool
}

func NewChecker(db Pinger, version string) *Checker {
	return &Checker{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

// WithCatalog adds the catalog population check.
func (c *Checker) WithCatalog(catalog CatalogCounter) *Checker {
	c.catalog = catalog
	return c
}

// SetReady marks the service as ready to receive traffic
func (c *Checker) SetReady(ready bool) {
	c.ready.Store(ready)
}

func (c *Checker) IsReady() bool {
	return c.ready.Load()
}

// LivenessHandler reports that the process is up.
func (c *Checker) LivenessHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Response{
		Status:     StatusHealthy,
		Version:    c.version,
		Uptime:     c.uptime(),
		ReportedAt: time.Now(),
	})
}

// ReadinessHandler reports whether startup finished and the catalog store answers.
func (c *Checker) ReadinessHandler(ctx echo.Context) error {
	if !c.IsReady() {
		return ctx.JSON(http.StatusServiceUnavailable, Response{
			Status:     StatusUnhealthy,
			Version:    c.version,
			ReportedAt: time.Now(),
			Checks: map[string]CheckResult{
				"startup": {Status: StatusUnhealthy, Message: "service is still starting up"},
			},
		})
	}
	return c.HealthHandler(ctx)
}

func (c *Checker) HealthHandler(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	checks := map[string]CheckResult{
		"database": c.checkDatabase(reqCtx),
	}
	if c.catalog != nil {
		checks["catalog"] = c.checkCatalog(reqCtx)
	}

	status := StatusHealthy
	for _, check := range checks {
		switch {
		case check.Status == StatusUnhealthy:
			status = StatusUnhealthy
		case check.Status == StatusDegraded && status == StatusHealthy:
			status = StatusDegraded
		}
	}

	code := http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Response{
		Status:     status,
		Version:    c.version,
		Uptime:     c.uptime(),
		Checks:     checks,
		ReportedAt: time.Now(),
	})
}

func (c *Checker) checkDatabase(ctx context.Context) CheckResult {
	if c.db == nil {
		return CheckResult{Status: StatusUnhealthy, Message: "database not configured"}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: err.Error(),
			Latency: time.Since(start).String(),
		}
	}

	return CheckResult{Status: StatusHealthy, Latency: time.Since(start).String()}
}

func (c *Checker) checkCatalog(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := c.catalog.CountProducts(ctx)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Message: err.Error()}
	}
	if count == 0 {
		return CheckResult{Status: StatusDegraded, Message: "catalog has no products"}
	}
	return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d products", count)}
}

func (c *Checker) uptime() string {
	return time.Since(c.startTime).Round(time.Second).String()
}

// RegisterRoutes registers health check routes under /api/health
func (c *Checker) RegisterRoutes(e *echo.Echo) {
	health := e.Group("/api/health")

	health.GET("", c.HealthHandler)
	health.GET("/live", c.LivenessHandler)
	health.GET("/ready", c.ReadinessHandler)
}
