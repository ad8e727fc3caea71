package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	pkgcache "github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	appsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
	"github.com/ziplofy/storeconfig/services/discount/infrastructure/persistence/memory"
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
		Discount: appsvcs.NewDiscountService(memory.NewDiscountRepository(), pkgcache.NewMemoryListCache(), nil, a.Logger),
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

const base = "/discounts/amount-off-products"

func codeBody(storeID, code string) string {
	return `{
		"storeId": "` + storeID + `",
		"method": "discount-code",
		"discountCode": "` + code + `",
		"valueType": "percentage",
		"percentage": 15,
		"appliesTo": {"type": "specific-products", "ids": ["` + ident.New() + `"]},
		"minimumPurchase": {"type": "minimum-amount", "amount": 50},
		"combinations": {"shippingDiscounts": true},
		"activeDates": {"startAt": "2030-01-01T00:00:00Z", "endAt": "2030-02-01T00:00:00Z"}
	}`
}

func TestDiscountRoutes_Lifecycle(t *testing.T) {
	h := newRouter()
	storeID := ident.New()

	code, env := do(t, h, http.MethodPost, base, codeBody(storeID, "SPRING15"))
	if code != http.StatusCreated || env.Message != "Discount created successfully" {
		t.Fatalf("create: %d %+v", code, env)
	}
	var created struct {
		ID              string `json:"_id"`
		DiscountCode    string `json:"discountCode"`
		Title           *string
		MinimumPurchase struct {
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"minimumPurchase"`
		Eligibility struct {
			Type string `json:"type"`
		} `json:"eligibility"`
		Combinations struct {
			ShippingDiscounts bool `json:"shippingDiscounts"`
		} `json:"combinations"`
	}
	_ = json.Unmarshal(env.Data, &created)
	if created.DiscountCode != "SPRING15" || created.MinimumPurchase.Amount != 50 || created.Eligibility.Type != "all-customers" || !created.Combinations.ShippingDiscounts {
		t.Fatalf("unexpected discount %+v", created)
	}
	if strings.Contains(string(env.Data), `"title"`) {
		t.Errorf("absent title should be omitted: %s", env.Data)
	}

	code, env = do(t, h, http.MethodPost, base, codeBody(storeID, "spring15"))
	if code != http.StatusConflict {
		t.Fatalf("duplicate code: expected 409, got %d %+v", code, env)
	}

	code, env = do(t, h, http.MethodGet, base+"/store/"+storeID, "")
	if code != http.StatusOK || env.Count == nil || *env.Count != 1 {
		t.Fatalf("list: %d %+v", code, env)
	}

	code, _ = do(t, h, http.MethodGet, base+"/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}

	code, env = do(t, h, http.MethodDelete, base+"/"+created.ID, "")
	if code != http.StatusOK || env.Message != "Discount deleted successfully" {
		t.Fatalf("delete: %d %+v", code, env)
	}

	code, env = do(t, h, http.MethodGet, base+"/"+created.ID, "")
	if code != http.StatusNotFound || env.Message != "Discount not found" {
		t.Fatalf("get after delete: %d %+v", code, env)
	}
}

func TestDiscountRoutes_Automatic(t *testing.T) {
	h := newRouter()
	body := `{
		"storeId": "` + ident.New() + `",
		"method": "automatic",
		"title": "Clearance",
		"valueType": "fixed-amount",
		"fixedAmount": 5,
		"appliesTo": {"type": "specific-collections", "ids": ["` + ident.New() + `"]}
	}`
	code, env := do(t, h, http.MethodPost, base, body)
	if code != http.StatusCreated {
		t.Fatalf("automatic: %d %+v", code, env)
	}
}

func TestDiscountRoutes_ValidationListsEveryField(t *testing.T) {
	h := newRouter()
	body := `{
		"storeId": "` + ident.New() + `",
		"method": "automatic",
		"discountCode": "NOPE",
		"valueType": "percentage",
		"fixedAmount": 5,
		"appliesTo": {"type": "specific-products", "ids": []},
		"maximumUses": {"limitTotalUses": true}
	}`
	code, env := do(t, h, http.MethodPost, base, body)
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("expected 400, got %d %+v", code, env)
	}
	for _, field := range []string{"discountCode", "title", "percentage", "fixedAmount", "appliesTo.ids", "maximumUses.totalUsesLimit"} {
		if _, ok := env.Errors[field]; !ok {
			t.Errorf("missing %s in %v", field, env.Errors)
		}
	}
}

func TestDiscountRoutes_StructuralValidation(t *testing.T) {
	h := newRouter()
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad method", `{"storeId":"` + ident.New() + `","method":"bogo","valueType":"percentage","percentage":5,"appliesTo":{"type":"specific-products","ids":["` + ident.New() + `"]}}`, "method"},
		{"percentage over 100", `{"storeId":"` + ident.New() + `","method":"discount-code","discountCode":"X","valueType":"percentage","percentage":150,"appliesTo":{"type":"specific-products","ids":["` + ident.New() + `"]}}`, "percentage"},
		{"missing appliesTo", `{"storeId":"` + ident.New() + `","method":"discount-code","discountCode":"X","valueType":"percentage","percentage":5}`, "appliesTo"},
		{"bad target id", `{"storeId":"` + ident.New() + `","method":"discount-code","discountCode":"X","valueType":"percentage","percentage":5,"appliesTo":{"type":"specific-products","ids":["nope"]}}`, "appliesTo.ids[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, base, tt.body)
			if code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d %+v", code, env)
			}
			if _, ok := env.Errors[tt.field]; !ok {
				t.Errorf("missing %s in %v", tt.field, env.Errors)
			}
		})
	}
}

func TestDiscountRoutes_AmountsFitStorage(t *testing.T) {
	h := newRouter()
	storeID := ident.New()
	body := func(value string) string {
		return `{
			"storeId": "` + storeID + `",
			"method": "automatic",
			"title": "Spring sale",
			` + value + `,
			"appliesTo": {"type": "specific-products", "ids": ["` + ident.New() + `"]},
			"activeDates": {"startAt": "2030-01-01T00:00:00Z"}
		}`
	}

	tests := []struct {
		name  string
		value string
		field string
	}{
		{"fixed amount above column range", `"valueType": "fixed-amount", "fixedAmount": 1000000000000`, "fixedAmount"},
		{"fixed amount with three decimals", `"valueType": "fixed-amount", "fixedAmount": 10.125`, "fixedAmount"},
		{"percentage with three decimals", `"valueType": "percentage", "percentage": 12.345`, "percentage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, base, body(tt.value))
			if code != http.StatusBadRequest || env.Success {
				t.Fatalf("expected 400, got %d %+v", code, env)
			}
			if _, ok := env.Errors[tt.field]; !ok {
				t.Errorf("expected an error on %s, got %v", tt.field, env.Errors)
			}
		})
	}

	code, env := do(t, h, http.MethodPost, base, body(`"valueType": "fixed-amount", "fixedAmount": 9999999999.99`))
	if code != http.StatusCreated {
		t.Fatalf("largest storable amount: %d %+v", code, env)
	}
}
