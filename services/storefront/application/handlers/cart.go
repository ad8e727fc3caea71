package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/storefront/application/services"
	"github.com/ziplofy/storeconfig/services/storefront/domain/cart"
)

// GetCartHandler handles GET /storefront/{theme}/cart.
type GetCartHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetCartHandler returns a GetCartHandler.
func NewGetCartHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetCartHandler {
	return &GetCartHandler{svc: svc, errs: errs}
}

// Execute returns the visitor's cart with totals.
//
//	@Summary	Get cart
//	@Tags		storefront
//	@Produce	json
//	@Param		theme	path		string	true	"Theme name, or default"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/cart [get]
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Storefront.Cart(r.Context(), chi.URLParam(r, "theme"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Cart fetched successfully", view)
}

// AddCartItemHandler handles POST /storefront/{theme}/cart/items.
type AddCartItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewAddCartItemHandler returns an AddCartItemHandler.
func NewAddCartItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *AddCartItemHandler {
	return &AddCartItemHandler{svc: svc, errs: errs}
}

// Execute adds an item, merging quantities with an existing line.
//
//	@Summary	Add cart item
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		theme	path		string			true	"Theme name, or default"
//	@Param		request	body		AddItemRequest	true	"Item"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/cart/items [post]
func (h *AddCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}
	view, err := h.svc.Storefront.Dispatch(r.Context(), chi.URLParam(r, "theme"), cart.Add{Item: req.toItem()})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Item added to cart", view)
}

// UpdateCartItemHandler handles PATCH /storefront/{theme}/cart/items/{itemId}.
type UpdateCartItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewUpdateCartItemHandler returns an UpdateCartItemHandler.
func NewUpdateCartItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *UpdateCartItemHandler {
	return &UpdateCartItemHandler{svc: svc, errs: errs}
}

// Execute sets a line's quantity. Zero or less removes the line.
//
//	@Summary	Update cart item quantity
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		theme	path		string				true	"Theme name, or default"
//	@Param		itemId	path		string				true	"Item ID"
//	@Param		request	body		UpdateQtyRequest	true	"Quantity"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/cart/items/{itemId} [patch]
func (h *UpdateCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateQtyRequest](w, r)
	if !ok {
		return
	}
	action := cart.SetQty{ID: chi.URLParam(r, "itemId"), Qty: *req.Qty}
	view, err := h.svc.Storefront.Dispatch(r.Context(), chi.URLParam(r, "theme"), action)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Cart item updated", view)
}

// RemoveCartItemHandler handles DELETE /storefront/{theme}/cart/items/{itemId}.
type RemoveCartItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewRemoveCartItemHandler returns a RemoveCartItemHandler.
func NewRemoveCartItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *RemoveCartItemHandler {
	return &RemoveCartItemHandler{svc: svc, errs: errs}
}

// Execute removes a line.
//
//	@Summary	Remove cart item
//	@Tags		storefront
//	@Produce	json
//	@Param		theme	path		string	true	"Theme name, or default"
//	@Param		itemId	path		string	true	"Item ID"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/cart/items/{itemId} [delete]
func (h *RemoveCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Storefront.Dispatch(r.Context(), chi.URLParam(r, "theme"), cart.Remove{ID: chi.URLParam(r, "itemId")})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Item removed from cart", view)
}

// ApplyCouponHandler handles POST /storefront/{theme}/cart/coupon.
type ApplyCouponHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewApplyCouponHandler returns an ApplyCouponHandler.
func NewApplyCouponHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ApplyCouponHandler {
	return &ApplyCouponHandler{svc: svc, errs: errs}
}

// Execute applies a coupon, replacing any previous one.
//
//	@Summary	Apply coupon
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		theme	path		string			true	"Theme name, or default"
//	@Param		request	body		CouponRequest	true	"Coupon"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/cart/coupon [post]
func (h *ApplyCouponHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CouponRequest](w, r)
	if !ok {
		return
	}
	view, err := h.svc.Storefront.Dispatch(r.Context(), chi.URLParam(r, "theme"), cart.ApplyCoupon{Code: req.Code})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Coupon applied successfully", view)
}

// ClearCouponHandler handles DELETE /storefront/{theme}/cart/coupon.
type ClearCouponHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewClearCouponHandler returns a ClearCouponHandler.
func NewClearCouponHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ClearCouponHandler {
	return &ClearCouponHandler{svc: svc, errs: errs}
}

// Execute drops the applied coupon.
//
//	@Summary	Remove coupon
//	@Tags		storefront
//	@Produce	json
//	@Param		theme	path		string	true	"Theme name, or default"
//	@Success	200		{object}	httpx.Envelope{data=cart.View}
//	@Router		/storefront/{theme}/cart/coupon [delete]
func (h *ClearCouponHandler) Execute(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Storefront.Dispatch(r.Context(), chi.URLParam(r, "theme"), cart.ClearCoupon{})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Coupon removed", view)
}
