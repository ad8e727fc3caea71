package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ziplofy/storeconfig/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// requestWithSession builds a request carrying a session cookie whose values
// were set by fill.
func requestWithSession(t *testing.T, store sessions.Store, fill func(s *sessions.Session)) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/tags/store/x", nil)

	session, err := store.Get(r, AdminSessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	fill(session)
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags/store/x", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func captureUser(t *testing.T, got *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func mustNotRun(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})
}

func TestProtect_BearerToken(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)
	raw, _ := tokens.Issue("user-42", []string{"s1"})

	var got string
	var stores []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromCtx(r.Context())
		stores = StoresFromCtx(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/api/tags/store/x", nil)
	r.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	Protect(tokens, nil, logger.Discard())(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != "user-42" || len(stores) != 1 || stores[0] != "s1" {
		t.Fatalf("unexpected context: user=%q stores=%v", got, stores)
	}
}

func TestProtect_InvalidBearerToken(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)

	for _, header := range []string{"Bearer garbage", "Basic dXNlcjpwYXNz", "Bearer "} {
		t.Run(header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			Protect(tokens, newTestStore(), logger.Discard())(mustNotRun(t)).ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"success":false`) {
				t.Errorf("expected failure envelope, got %s", w.Body.String())
			}
		})
	}
}

func TestProtect_SessionFallback(t *testing.T) {
	store := newTestStore()
	r := requestWithSession(t, store, func(s *sessions.Session) {
		s.Values[sessionUserIDKey] = "user-7"
	})

	var got string
	w := httptest.NewRecorder()
	Protect(NewTokens(testSecret, time.Hour), store, logger.Discard())(captureUser(t, &got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != "user-7" {
		t.Fatalf("expected user-7 in context, got %q", got)
	}
}

func TestProtect_SessionMissingUser(t *testing.T) {
	store := newTestStore()
	r := requestWithSession(t, store, func(s *sessions.Session) {})

	w := httptest.NewRecorder()
	Protect(NewTokens(testSecret, time.Hour), store, logger.Discard())(mustNotRun(t)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProtect_NoCredentials(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Protect(NewTokens(testSecret, time.Hour), newTestStore(), logger.Discard())(mustNotRun(t)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized, no token") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestStartAdminSession(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := StartAdminSession(w, r, store, "user-9"); err != nil {
		t.Fatalf("StartAdminSession: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	var got string
	rec := httptest.NewRecorder()
	Protect(NewTokens(testSecret, time.Hour), store, logger.Discard())(captureUser(t, &got)).ServeHTTP(rec, req)
	if got != "user-9" {
		t.Fatalf("expected session user user-9, got %q", got)
	}
}
