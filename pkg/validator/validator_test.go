package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
)

type sampleStruct struct {
	StoreID string `validate:"required,objectid"`
	Name    string `validate:"required,min=1,max=10"`
	Email   string `validate:"omitempty,email"`
}

const validStoreID = "64b7f0c2a1e4d3b2c1a09f87"

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{StoreID: validStoreID, Name: "hello"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestVar_objectid(t *testing.T) {
	if err := pkgvalidator.Var(validStoreID, "objectid"); err != nil {
		t.Errorf("expected valid id, got %v", err)
	}
	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", validStoreID + "0", " " + validStoreID, validStoreID + "\n"} {
		if err := pkgvalidator.Var(bad, "objectid"); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["StoreID"] != "This field is required" {
		t.Errorf("unexpected StoreID message: %q", m["StoreID"])
	}
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_objectid(t *testing.T) {
	s := sampleStruct{StoreID: "not-an-id", Name: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["StoreID"] != "Must be a valid ID" {
		t.Errorf("unexpected StoreID message: %q", m["StoreID"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{StoreID: validStoreID, Name: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Maximum length is 10" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

type nested struct {
	Inner struct {
		Kind string `json:"kind" validate:"oneof=a b"`
	} `json:"inner"`
}

func TestFormatValidationErrors_nestedPath(t *testing.T) {
	var n nested
	n.Inner.Kind = "c"
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&n))
	if m["inner.kind"] != "Must be one of: a, b" {
		t.Errorf("unexpected nested message map: %v", m)
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type tagReq struct {
	StoreID string `json:"storeId" validate:"required,objectid"`
	Name    string `json:"name"    validate:"required,max=50"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"storeId":"` + validStoreID + `","name":"summer"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[tagReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "summer" {
		t.Errorf("unexpected Name: %q", req.Name)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[tagReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"name":"summer"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[tagReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing storeId")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	body2 := w.Body.String()
	if !strings.Contains(body2, `"success":false`) || !strings.Contains(body2, `"storeId":"This field is required"`) {
		t.Errorf("unexpected body: %s", body2)
	}
}

func TestValidateRequest_emptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	_, ok := pkgvalidator.ValidateRequest[tagReq](w, httptest.NewRequest(http.MethodPost, "/", http.NoBody))
	if ok || w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Request body is required") {
		t.Fatalf("ok=%v code=%d body=%s", ok, w.Code, w.Body.String())
	}
}

type toggleReq struct {
	Name string `json:"name" validate:"omitempty,notblank,max=20"`
}

func TestValidateOptionalRequest_emptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	req, ok := pkgvalidator.ValidateOptionalRequest[toggleReq](w, httptest.NewRequest(http.MethodPost, "/", http.NoBody))
	if !ok || req.Name != "" {
		t.Fatalf("ok=%v req=%+v body=%s", ok, req, w.Body.String())
	}
}

func TestValidateRequest_bodyTooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)
	if _, ok := pkgvalidator.ValidateRequest[tagReq](w, r); ok {
		t.Fatal("expected failure")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("code = %d, want 413", w.Code)
	}
}

type namedReq struct {
	Name string `json:"name" validate:"required,notblank"`
}

func TestValidate_notblank(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&namedReq{Name: "   "}))
	if m["name"] != "Must not be blank" {
		t.Errorf("messages = %v", m)
	}
}

func TestIsTheme(t *testing.T) {
	for _, ok := range []string{"default", "theme6", "Dawn2"} {
		if !pkgvalidator.IsTheme(ok) {
			t.Errorf("%q rejected", ok)
		}
	}
	for _, bad := range []string{"", "theme-6", "../etc", "thème", strings.Repeat("a", pkgvalidator.MaxThemeLength+1)} {
		if pkgvalidator.IsTheme(bad) {
			t.Errorf("%q accepted", bad)
		}
	}
	if err := pkgvalidator.Var("theme_6", "theme"); err == nil {
		t.Error("theme tag accepted underscore")
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{10, 0},
		{19.99, 2},
		{0.1, 1},
		{9999999999.99, 2},
		{12.345, 3},
	}
	for _, tt := range tests {
		if got := pkgvalidator.Decimals(tt.in); got != tt.want {
			t.Errorf("Decimals(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVar_decimals(t *testing.T) {
	for _, ok := range []float64{1, 19.99, 0.5} {
		if err := pkgvalidator.Var(ok, "decimals=2"); err != nil {
			t.Errorf("expected %v to pass, got %v", ok, err)
		}
	}
	if err := pkgvalidator.Var(12.345, "decimals=2"); err == nil {
		t.Error("expected 12.345 to be rejected")
	}
}
