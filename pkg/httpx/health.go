package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is any dependency with a Ping. The database, Redis and the
// event bus all qualify.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks names each checker ("database", "redis", "events").
type HealthChecks map[string]HealthChecker

// CheckResult is one dependency's line in the health report.
type CheckResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
}

// HealthReport is the /health response body.
type HealthReport struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks"`
}

// Probe pings every checker concurrently under a shared 2s deadline.
func Probe(ctx context.Context, checks HealthChecks) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	report := HealthReport{Status: "ok", Checks: make(map[string]CheckResult, len(checks))}
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for name, c := range checks {
		g.Go(func() error {
			start := time.Now()
			err := c.Ping(ctx)
			res := CheckResult{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Status = "unreachable"
				report.Status = "degraded"
			}
			report.Checks[name] = res
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// HealthHandler answers 200 when every dependency responds and 503 otherwise.
func HealthHandler(version string, checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := Probe(r.Context(), checks)
		report.Version = version
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, report)
	}
}

// Live answers 200 as long as the process can serve HTTP. Orchestrators use
// it for liveness; /health is the readiness probe.
func Live(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
