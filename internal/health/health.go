// Package health reports service liveness and database connectivity.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

type ComponentHealth struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Response struct {
	Status     Status                     `json:"status"`
	Timestamp  string                     `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

type Checker struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewChecker(db *sqlx.DB) *Checker {
	return &Checker{db: db, timeout: 5 * time.Second}
}

func (c *Checker) checkDB(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return ComponentHealth{Status: StatusUnhealthy, Message: err.Error()}
	}
	return ComponentHealth{Status: StatusHealthy}
}

// Handler serves GET /health. A failing database turns the overall status
// unhealthy with a 503.
func (c *Checker) Handler(w http.ResponseWriter, r *http.Request) {
	dbHealth := c.checkDB(r.Context())

	resp := Response{
		Status:     StatusHealthy,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: map[string]ComponentHealth{"database": dbHealth},
	}

	status := http.StatusOK
	if dbHealth.Status != StatusHealthy {
		resp.Status = StatusUnhealthy
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
