package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Dependency é um serviço reportado pelo /health. Ping nil significa que está
// configurado mas não tem checagem barata de disponibilidade.
type Dependency struct {
	Name       string
	Configured bool
	Ping       func(ctx context.Context) error
}

type HealthHandler struct {
	Dependencies []Dependency
	Version      string
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(version string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{
		Dependencies: deps,
		Version:      version,
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(map[string]string, len(h.Dependencies))
	for _, dep := range h.Dependencies {
		switch {
		case !dep.Configured:
			deps[dep.Name] = "not configured"
		case dep.Ping == nil:
			deps[dep.Name] = "configured"
		default:
			if err := dep.Ping(ctx); err != nil {
				deps[dep.Name] = fmt.Sprintf("unhealthy: %v", err)
				status = "degraded"
			} else {
				deps[dep.Name] = "healthy"
			}
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
