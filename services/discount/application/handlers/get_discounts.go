package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
)

// GetDiscountsByStoreHandler handles GET /discounts/amount-off-products/store/{storeId}.
type GetDiscountsByStoreHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetDiscountsByStoreHandler returns a GetDiscountsByStoreHandler.
func NewGetDiscountsByStoreHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetDiscountsByStoreHandler {
	return &GetDiscountsByStoreHandler{svc: svc, errs: errs}
}

// Execute lists a store's discounts, newest first.
//
//	@Summary	List a store's amount-off-products discounts
//	@Tags		discounts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=[]DiscountResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/discounts/amount-off-products/store/{storeId} [get]
func (h *GetDiscountsByStoreHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Discount.ListByStore(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	out := make([]DiscountResponse, len(ds))
	for i, d := range ds {
		out[i] = toResponse(d)
	}
	httpx.List(w, "Discounts fetched successfully", out)
}

// GetDiscountHandler handles GET /discounts/amount-off-products/{id}.
type GetDiscountHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetDiscountHandler returns a GetDiscountHandler.
func NewGetDiscountHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetDiscountHandler {
	return &GetDiscountHandler{svc: svc, errs: errs}
}

// Execute returns one discount.
//
//	@Summary	Get amount-off-products discount
//	@Tags		discounts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Discount ID"
//	@Success	200	{object}	httpx.Envelope{data=DiscountResponse}
//	@Failure	400	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/discounts/amount-off-products/{id} [get]
func (h *GetDiscountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Discount.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Discount fetched successfully", toResponse(d))
}
