package handlers

import (
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
)

// PostDiscountHandler handles POST /discounts/amount-off-products.
type PostDiscountHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostDiscountHandler returns a PostDiscountHandler.
func NewPostDiscountHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostDiscountHandler {
	return &PostDiscountHandler{svc: svc, errs: errs}
}

// Execute creates a discount.
//
//	@Summary		Create amount-off-products discount
//	@Description	discountCode is required for method=discount-code, title for method=automatic; percentage or fixedAmount follows valueType
//	@Tags			discounts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateDiscountRequest	true	"Discount"
//	@Success		201		{object}	httpx.Envelope{data=DiscountResponse}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		409		{object}	httpx.Envelope
//	@Router			/discounts/amount-off-products [post]
func (h *PostDiscountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateDiscountRequest](w, r)
	if !ok {
		return
	}

	d, err := h.svc.Discount.Create(r.Context(), req.toModel())
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Discount created successfully", toResponse(d))
}
