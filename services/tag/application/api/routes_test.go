package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/pkg/auth"
	pkgcache "github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	appsvcs "github.com/ziplofy/storeconfig/services/tag/application/services"
	"github.com/ziplofy/storeconfig/services/tag/infrastructure/persistence/memory"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Count   *int              `json:"count"`
	Errors  map[string]string `json:"errors"`
}

func newRouter() http.Handler {
	a := &app.Application{
		Logger: logger.Discard(),
		Errors: errhttp.NewResponder(logger.Discard(), false),
	}
	svcs := &appsvcs.Services{
		Tag: appsvcs.NewTagService(memory.NewTagRepository(), pkgcache.NewMemoryListCache(), nil, a.Logger),
	}
	r := chi.NewRouter()
	Mount(r, svcs, a)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, http.NoBody)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
	}
	return w.Code, env
}

func TestTagRoutes_Lifecycle(t *testing.T) {
	h := newRouter()
	storeID := ident.New()

	code, env := do(t, h, http.MethodPost, "/tags", `{"storeId":"`+storeID+`","name":"  Summer  "}`)
	if code != http.StatusCreated || !env.Success {
		t.Fatalf("create: %d %+v", code, env)
	}
	var created struct {
		ID      string `json:"_id"`
		StoreID string `json:"storeId"`
		Name    string `json:"name"`
	}
	_ = json.Unmarshal(env.Data, &created)
	if created.Name != "Summer" || created.StoreID != storeID || !ident.Valid(created.ID) {
		t.Fatalf("unexpected record %+v", created)
	}
	if env.Message != "Tag created successfully" {
		t.Errorf("unexpected message %q", env.Message)
	}

	code, env = do(t, h, http.MethodPost, "/tags", `{"storeId":"`+storeID+`","name":"summer"}`)
	if code != http.StatusConflict || env.Success {
		t.Fatalf("duplicate: expected 409, got %d %+v", code, env)
	}

	code, env = do(t, h, http.MethodGet, "/tags/store/"+storeID, "")
	if code != http.StatusOK || env.Count == nil || *env.Count != 1 {
		t.Fatalf("list: %d %+v", code, env)
	}

	code, env = do(t, h, http.MethodDelete, "/tags/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("delete: %d %+v", code, env)
	}
	var summary map[string]any
	_ = json.Unmarshal(env.Data, &summary)
	if len(summary) != 3 || summary["_id"] != created.ID || summary["name"] != "Summer" {
		t.Errorf("unexpected summary %v", summary)
	}

	code, _ = do(t, h, http.MethodDelete, "/tags/"+created.ID, "")
	if code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", code)
	}

	code, env = do(t, h, http.MethodGet, "/tags/store/"+storeID, "")
	if code != http.StatusOK || string(env.Data) != "[]" || *env.Count != 0 {
		t.Fatalf("empty list should render [] with count 0, got %s / %v", env.Data, env.Count)
	}
}

func TestTagRoutes_EveryKindMounted(t *testing.T) {
	h := newRouter()
	storeID := ident.New()
	for _, route := range []string{"/tags", "/product-tags", "/vendors", "/product-types", "/purchase-order-tags", "/transfer-tags"} {
		t.Run(route, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, route, `{"storeId":"`+storeID+`","name":"Acme"}`)
			if code != http.StatusCreated {
				t.Fatalf("expected 201, got %d %+v", code, env)
			}
		})
	}
}

func TestTagRoutes_Validation(t *testing.T) {
	h := newRouter()
	storeID := ident.New()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"missing storeId", http.MethodPost, "/tags", `{"name":"x"}`, "storeId"},
		{"missing name", http.MethodPost, "/vendors", `{"storeId":"` + storeID + `"}`, "name"},
		{"malformed storeId", http.MethodPost, "/tags", `{"storeId":"abc","name":"x"}`, "storeId"},
		{"blank name", http.MethodPost, "/tags", `{"storeId":"` + storeID + `","name":"   "}`, "name"},
		{"too long", http.MethodPost, "/tags", `{"storeId":"` + storeID + `","name":"` + strings.Repeat("a", 51) + `"}`, "name"},
		{"malformed list store", http.MethodGet, "/tags/store/abc", "", ""},
		{"malformed delete id", http.MethodDelete, "/tags/abc", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, tt.method, tt.path, tt.body)
			if code != http.StatusBadRequest || env.Success {
				t.Fatalf("expected 400 failure, got %d %+v", code, env)
			}
			if tt.field != "" {
				if _, ok := env.Errors[tt.field]; !ok {
					t.Errorf("expected error for %s, got %v", tt.field, env.Errors)
				}
			}
		})
	}
}

func TestTagRoutes_StoreIsolation(t *testing.T) {
	h := newRouter()
	a, b := ident.New(), ident.New()
	do(t, h, http.MethodPost, "/product-types", `{"storeId":"`+a+`","name":"Shoes"}`)
	do(t, h, http.MethodPost, "/product-types", `{"storeId":"`+b+`","name":"Hats"}`)

	_, env := do(t, h, http.MethodGet, "/product-types/store/"+a, "")
	if *env.Count != 1 || !strings.Contains(string(env.Data), "Shoes") || strings.Contains(string(env.Data), "Hats") {
		t.Fatalf("store A list leaked or missing records: %s", env.Data)
	}
}

func TestTagRoutes_StoreScopedToken(t *testing.T) {
	tokens := auth.NewTokens("tag-routes-test-secret-at-least-32-bytes", time.Hour)
	h := auth.Protect(tokens, nil, logger.Discard())(newRouter())
	storeA, storeB := ident.New(), ident.New()

	scoped, err := tokens.Issue("user-1", []string{storeA})
	if err != nil {
		t.Fatal(err)
	}
	unscoped, err := tokens.Issue("admin", nil)
	if err != nil {
		t.Fatal(err)
	}

	send := func(token, method, path, body string) (int, envelope) {
		t.Helper()
		r := httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		var env envelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
		}
		return w.Code, env
	}

	if code, env := send(scoped, http.MethodPost, "/tags", `{"storeId":"`+storeA+`","name":"Own"}`); code != http.StatusCreated {
		t.Fatalf("own store create: %d %+v", code, env)
	}
	if code, env := send(scoped, http.MethodPost, "/tags", `{"storeId":"`+storeB+`","name":"Other"}`); code != http.StatusForbidden || env.Success {
		t.Fatalf("cross-store create: %d %+v", code, env)
	}
	if code, _ := send(scoped, http.MethodGet, "/tags/store/"+storeB, ""); code != http.StatusForbidden {
		t.Fatalf("cross-store list: %d", code)
	}
	if code, _ := send(scoped, http.MethodGet, "/tags/store/"+storeA, ""); code != http.StatusOK {
		t.Fatalf("own store list: %d", code)
	}

	code, env := send(unscoped, http.MethodPost, "/tags", `{"storeId":"`+storeB+`","name":"Other"}`)
	if code != http.StatusCreated {
		t.Fatalf("unscoped create: %d %+v", code, env)
	}
	var other struct {
		ID string `json:"_id"`
	}
	_ = json.Unmarshal(env.Data, &other)

	if code, _ := send(scoped, http.MethodDelete, "/tags/"+other.ID, ""); code != http.StatusForbidden {
		t.Fatalf("cross-store delete: %d", code)
	}
	if _, env := send(unscoped, http.MethodGet, "/tags/store/"+storeB, ""); env.Count == nil || *env.Count != 1 {
		t.Fatalf("cross-store delete must leave the tag in place, got %+v", env)
	}
}
