package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ziplofy/storeconfig/pkg/httpx"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() httpx.HealthChecker { return pingFunc(func(context.Context) error { return nil }) }

func failing() httpx.HealthChecker {
	return pingFunc(func(context.Context) error { return errors.New("connection refused") })
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, httpx.HealthReport) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler("1.4.0", checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var report httpx.HealthReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, report
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, report := serveHealth(t, httpx.HealthChecks{"database": healthy(), "redis": healthy(), "events": healthy()})
	if code != http.StatusOK || report.Status != "ok" || report.Version != "1.4.0" {
		t.Fatalf("code=%d report=%+v", code, report)
	}
	if len(report.Checks) != 3 {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestHealthHandler_DependencyDown(t *testing.T) {
	for _, down := range []string{"database", "redis", "events"} {
		t.Run(down, func(t *testing.T) {
			checks := httpx.HealthChecks{"database": healthy(), "redis": healthy(), "events": healthy()}
			checks[down] = failing()

			code, report := serveHealth(t, checks)
			if code != http.StatusServiceUnavailable || report.Status != "degraded" {
				t.Fatalf("code=%d report=%+v", code, report)
			}
			for name, res := range report.Checks {
				want := "ok"
				if name == down {
					want = "unreachable"
				}
				if res.Status != want {
					t.Errorf("%s = %q, want %q", name, res.Status, want)
				}
			}
		})
	}
}

func TestProbe_RunsChecksConcurrently(t *testing.T) {
	slow := pingFunc(func(ctx context.Context) error {
		select {
		case <-time.After(300 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	start := time.Now()
	report := httpx.Probe(context.Background(), httpx.HealthChecks{"a": slow, "b": slow, "c": slow})
	if report.Status != "ok" {
		t.Fatalf("report = %+v", report)
	}
	if elapsed := time.Since(start); elapsed > 800*time.Millisecond {
		t.Errorf("checks ran serially: %v", elapsed)
	}
}

func TestProbe_NoChecks(t *testing.T) {
	if report := httpx.Probe(context.Background(), nil); report.Status != "ok" {
		t.Fatalf("report = %+v", report)
	}
}

func TestLive(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.Live(rr, httptest.NewRequest(http.MethodGet, "/livez", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
}
