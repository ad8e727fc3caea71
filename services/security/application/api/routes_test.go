package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	appsvcs "github.com/ziplofy/storeconfig/services/security/application/services"
	"github.com/ziplofy/storeconfig/services/security/domain/models"
	"github.com/ziplofy/storeconfig/services/security/infrastructure/persistence/memory"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type settingsBody struct {
	ID              string  `json:"_id"`
	StoreID         string  `json:"storeId"`
	RequireCode     bool    `json:"requireCode"`
	Code            *string `json:"code"`
	CodeGeneratedAt *string `json:"codeGeneratedAt"`
}

func newRouter() http.Handler {
	a := &app.Application{
		Logger: logger.Discard(),
		Errors: errhttp.NewResponder(logger.Discard(), false),
	}
	svcs := &appsvcs.Services{
		Security: appsvcs.NewSecurityService(memory.NewSettingsRepository(), nil, a.Logger),
	}
	r := chi.NewRouter()
	Mount(r, svcs, a)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope, settingsBody) {
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
	var s settingsBody
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &s)
	}
	return w.Code, env, s
}

func validCode(c *string) bool {
	if c == nil || len(*c) != models.CodeLength {
		return false
	}
	for _, r := range *c {
		if !strings.ContainsRune(models.CodeAlphabet, r) {
			return false
		}
	}
	return true
}

func TestSecurityRoutes_Lifecycle(t *testing.T) {
	h := newRouter()
	base := "/store-security/store/" + ident.New()

	code, env, s := do(t, h, http.MethodGet, base, "")
	if code != http.StatusOK || s.RequireCode || s.Code != nil || s.ID != "" {
		t.Fatalf("defaults: %d %+v %+v", code, env, s)
	}

	code, env, _ = do(t, h, http.MethodPost, base+"/regenerate", "")
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("regenerate while disabled: %d %+v", code, env)
	}

	code, env, s = do(t, h, http.MethodPut, base, `{"requireCode":true}`)
	if code != http.StatusOK || !s.RequireCode || !validCode(s.Code) || s.CodeGeneratedAt == nil {
		t.Fatalf("enable: %d %+v %+v", code, env, s)
	}
	first := *s.Code

	_, _, s = do(t, h, http.MethodPut, base, `{"requireCode":true}`)
	if s.Code == nil || *s.Code != first {
		t.Fatalf("code changed without a regenerate request: %+v", s)
	}

	code, env, s = do(t, h, http.MethodPost, base+"/regenerate", "")
	if code != http.StatusOK || env.Message != "Security code regenerated successfully" || !validCode(s.Code) {
		t.Fatalf("regenerate: %d %+v %+v", code, env, s)
	}

	code, _, s = do(t, h, http.MethodPut, base, `{"requireCode":false}`)
	if code != http.StatusOK || s.RequireCode || s.Code != nil || s.CodeGeneratedAt != nil {
		t.Fatalf("disable: %d %+v", code, s)
	}
}

func TestSecurityRoutes_Validation(t *testing.T) {
	h := newRouter()

	code, env, _ := do(t, h, http.MethodPut, "/store-security/store/"+ident.New(), `{"regenerateCode":true}`)
	if code != http.StatusBadRequest {
		t.Fatalf("missing requireCode: %d %+v", code, env)
	}
	if _, ok := env.Errors["requireCode"]; !ok {
		t.Errorf("missing requireCode in %v", env.Errors)
	}

	code, _, _ = do(t, h, http.MethodGet, "/store-security/store/not-an-id", "")
	if code != http.StatusBadRequest {
		t.Errorf("malformed store id: %d", code)
	}
}
