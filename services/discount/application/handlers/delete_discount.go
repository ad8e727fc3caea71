package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
)

// DeleteDiscountHandler handles DELETE /discounts/amount-off-products/{id}.
type DeleteDiscountHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewDeleteDiscountHandler returns a DeleteDiscountHandler.
func NewDeleteDiscountHandler(svc *appsvcs.Services, errs *errhttp.Responder) *DeleteDiscountHandler {
	return &DeleteDiscountHandler{svc: svc, errs: errs}
}

// Execute deletes a discount and returns its summary.
//
//	@Summary	Delete amount-off-products discount
//	@Tags		discounts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Discount ID"
//	@Success	200	{object}	httpx.Envelope{data=DiscountSummary}
//	@Failure	400	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/discounts/amount-off-products/{id} [delete]
func (h *DeleteDiscountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Discount.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Discount deleted successfully", DiscountSummary{
		ID:           d.ID,
		StoreID:      d.StoreID,
		DiscountCode: d.DiscountCode,
		Title:        d.Title,
	})
}
