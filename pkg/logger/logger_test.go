package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func setupTracer(t *testing.T) {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("parse %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestContextRecords_CarryTraceIDs(t *testing.T) {
	setupTracer(t)
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	ctx, parent := otel.Tracer("test").Start(context.Background(), "parent")
	log.InfoContext(ctx, "parent")
	p := lastEntry(t, &buf)

	ctx, child := otel.Tracer("test").Start(ctx, "child")
	log.ErrorContext(ctx, "child", "error", errors.New("boom"), "tag_id", "123")
	c := lastEntry(t, &buf)
	child.End()
	parent.End()

	if p["trace_id"] == nil || p["trace_id"] != c["trace_id"] {
		t.Errorf("trace ids differ: %v vs %v", p["trace_id"], c["trace_id"])
	}
	if p["span_id"] == c["span_id"] {
		t.Error("parent and child share a span id")
	}
	if c["tag_id"] != "123" || c["error"] != "boom" {
		t.Errorf("unexpected fields: %v", c)
	}
}

func TestContextRecords_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").InfoContext(context.Background(), "plain")
	if _, ok := lastEntry(t, &buf)["trace_id"]; ok {
		t.Error("trace_id present without a span")
	}
}

func TestContextWith_AccumulatesAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	ctx := ContextWith(context.Background(), slog.String("user_id", "u1"))
	ctx = ContextWith(ctx, slog.String("visitor_id", "v1"))
	log.InfoContext(ctx, "cart updated")

	e := lastEntry(t, &buf)
	if e["user_id"] != "u1" || e["visitor_id"] != "v1" {
		t.Errorf("missing context attrs: %v", e)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMiddleware_LogsRouteAndStore(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Get("/api/store-security/store/{storeId}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/store-security/store/64b7f0c2a1e4d3b2c1a09f87", http.NoBody))

	e := lastEntry(t, &buf)
	if e["route"] != "/api/store-security/store/{storeId}" {
		t.Errorf("route = %v", e["route"])
	}
	if e["store_id"] != "64b7f0c2a1e4d3b2c1a09f87" {
		t.Errorf("store_id = %v", e["store_id"])
	}
	if e["status"] != float64(http.StatusOK) || e["request_id"] == nil {
		t.Errorf("unexpected entry: %v", e)
	}
}

func TestMiddleware_ClientErrorsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	h := Middleware(NewWithWriter(&buf, "debug"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/tags", http.NoBody))

	e := lastEntry(t, &buf)
	if e["level"] != "WARN" || e["status"] != float64(http.StatusConflict) {
		t.Errorf("unexpected entry: %v", e)
	}
}

func TestRecovery_WritesEnvelope(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(NewWithWriter(&buf, "debug"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("panic not logged")
	}
}

func TestRecovery_ReraisesAbort(t *testing.T) {
	h := Recovery(Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler { //nolint:errorlint
			t.Errorf("recovered %v, want ErrAbortHandler", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
}
