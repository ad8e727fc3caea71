package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/ziplofy/storeconfig/pkg/config"
)

const (
	defaultRateLimit      = 100
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBodyBytes   = 1 << 20
)

// ServerConfig sizes the router and the http.Server.
type ServerConfig struct {
	Addr               string
	IsDevelopment      bool
	CORSAllowedOrigins string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
	// MaxBodyBytes caps request bodies. Configuration payloads are small;
	// policy documents are the largest.
	MaxBodyBytes int64
}

// ServerConfigFrom maps process configuration onto ServerConfig.
func ServerConfigFrom(cfg *config.Config) ServerConfig {
	return ServerConfig{
		Addr:               cfg.HTTPAddr,
		IsDevelopment:      cfg.IsDevelopment(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.RequestTimeout,
	}
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = defaultRateLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	return c
}

// Middlewares are the process-specific layers NewRouter installs ahead of the
// shared stack. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Tracing  func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard stack, outermost first:
// recovery, sentry, request id, tracing, request log, real ip, per-IP rate
// limit, CORS, body cap, handler deadline, security headers.
func NewRouter(sc ServerConfig, mw Middlewares) *chi.Mux {
	sc = sc.withDefaults()

	r := chi.NewRouter()
	for _, m := range []func(http.Handler) http.Handler{mw.Recovery, mw.Sentry} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(middleware.RequestID)
	for _, m := range []func(http.Handler) http.Handler{mw.Tracing, mw.Logger} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(
		middleware.RealIP,
		RateLimit(sc.RateLimitPerMinute),
		CORSMiddleware(sc.CORSAllowedOrigins),
		RequestBodyLimit(sc.MaxBodyBytes),
		middleware.Timeout(sc.RequestTimeout),
		SecurityHeaders(sc.IsDevelopment),
	)
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	return r
}

// RateLimit allows perMinute requests per client IP and answers the rest
// with a 429 envelope.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			JSONError(w, http.StatusTooManyRequests, "Too many requests, please slow down")
		}),
	)
}

// SecurityHeaders sets HSTS, framing, sniffing and referrer headers. The API
// gets a locked-down CSP; /swagger/ gets one that lets the UI run its inline
// bootstrap.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	base := secure.Options{
		STSSeconds:           63072000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		PermissionsPolicy:    "geolocation=(), microphone=(), camera=(), payment=()",
		IsDevelopment:        isDevelopment,
	}
	apiOpts, docsOpts := base, base
	apiOpts.ContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	docsOpts.ContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"
	api, docs := secure.New(apiOpts), secure.New(docsOpts)

	return func(next http.Handler) http.Handler {
		apiH, docsH := api.Handler(next), docs.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/swagger/") {
				docsH.ServeHTTP(w, r)
				return
			}
			apiH.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows the comma-separated origins. Cookies are only allowed
// for an explicit list since browsers refuse credentials with "*".
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	wildcard := false
	for _, o := range origins {
		wildcard = wildcard || o == "*"
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Ratelimit-Remaining"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the body at maxBytes. Reads past the cap fail, which
// the JSON decoders surface as a validation error.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NotFound answers unknown routes with the failure envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, http.StatusNotFound, "Route not found: "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed answers known routes hit with an unsupported verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSONError(w, http.StatusMethodNotAllowed, "Method not allowed: "+r.Method+" "+r.URL.Path)
}

// NewServer returns an http.Server whose write deadline outlives the handler
// deadline, so timed-out handlers can still send their 503.
func NewServer(sc ServerConfig, handler http.Handler) *http.Server {
	sc = sc.withDefaults()
	return &http.Server{
		Addr:              sc.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      sc.RequestTimeout + 5*time.Second,
		IdleTimeout:       90 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}
