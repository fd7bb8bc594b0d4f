package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// DependencyCheck is a named probe run by the health endpoint.
type DependencyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct{ checks []DependencyCheck }

func NewHandler(checks ...DependencyCheck) *Handler { return &Handler{checks: checks} }

// Health answers 200 when every dependency responds and 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	var deps map[string]string
	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()
		deps = make(map[string]string, len(h.checks))
		for _, chk := range h.checks {
			if err := chk.Ping(ctx); err != nil {
				deps[chk.Name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			deps[chk.Name] = "ok"
		}
	}
	body := map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if deps != nil {
		body["deps"] = deps
	}
	return c.JSON(code, body)
}
