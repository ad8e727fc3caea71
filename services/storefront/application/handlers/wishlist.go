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

// GetWishlistHandler handles GET /storefront/{theme}/wishlist.
type GetWishlistHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetWishlistHandler returns a GetWishlistHandler.
func NewGetWishlistHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetWishlistHandler {
	return &GetWishlistHandler{svc: svc, errs: errs}
}

// Execute returns the visitor's wishlist.
//
//	@Summary	Get wishlist
//	@Tags		storefront
//	@Produce	json
//	@Param		theme	path		string	true	"Theme name, or default"
//	@Success	200		{object}	httpx.Envelope{data=[]cart.Item}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/wishlist [get]
func (h *GetWishlistHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Storefront.Wishlist(r.Context(), chi.URLParam(r, "theme"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.List(w, "Wishlist fetched successfully", items)
}

// AddWishlistItemHandler handles POST /storefront/{theme}/wishlist/items.
type AddWishlistItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewAddWishlistItemHandler returns an AddWishlistItemHandler.
func NewAddWishlistItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *AddWishlistItemHandler {
	return &AddWishlistItemHandler{svc: svc, errs: errs}
}

// Execute adds an item. Adding a wishlisted item again is a no-op.
//
//	@Summary	Add wishlist item
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		theme	path		string			true	"Theme name, or default"
//	@Param		request	body		AddItemRequest	true	"Item"
//	@Success	200		{object}	httpx.Envelope{data=[]cart.Item}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/wishlist/items [post]
func (h *AddWishlistItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}
	items, err := h.svc.Storefront.AddToWishlist(r.Context(), chi.URLParam(r, "theme"), req.toItem())
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.List(w, "Item added to wishlist", items)
}

// RemoveWishlistItemHandler handles DELETE /storefront/{theme}/wishlist/items/{itemId}.
type RemoveWishlistItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewRemoveWishlistItemHandler returns a RemoveWishlistItemHandler.
func NewRemoveWishlistItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *RemoveWishlistItemHandler {
	return &RemoveWishlistItemHandler{svc: svc, errs: errs}
}

// Execute removes an item.
//
//	@Summary	Remove wishlist item
//	@Tags		storefront
//	@Produce	json
//	@Param		theme	path		string	true	"Theme name, or default"
//	@Param		itemId	path		string	true	"Item ID"
//	@Success	200		{object}	httpx.Envelope{data=[]cart.Item}
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/wishlist/items/{itemId} [delete]
func (h *RemoveWishlistItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Storefront.RemoveFromWishlist(r.Context(), chi.URLParam(r, "theme"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.List(w, "Item removed from wishlist", items)
}

// ToggleWishlistItemHandler handles POST /storefront/{theme}/wishlist/items/{itemId}/toggle.
type ToggleWishlistItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewToggleWishlistItemHandler returns a ToggleWishlistItemHandler.
func NewToggleWishlistItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ToggleWishlistItemHandler {
	return &ToggleWishlistItemHandler{svc: svc, errs: errs}
}

// Execute removes a wishlisted item or adds it with the details in the body.
//
//	@Summary	Toggle wishlist item
//	@Tags		storefront
//	@Accept		json
//	@Produce	json
//	@Param		theme	path		string				true	"Theme name, or default"
//	@Param		itemId	path		string				true	"Item ID"
//	@Param		request	body		ToggleItemRequest	false	"Item details, needed when adding"
//	@Success	200		{object}	httpx.Envelope{data=ToggleResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/storefront/{theme}/wishlist/items/{itemId}/toggle [post]
func (h *ToggleWishlistItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateOptionalRequest[ToggleItemRequest](w, r)
	if !ok {
		return
	}

	item := cart.Item{ID: chi.URLParam(r, "itemId"), Name: req.Name, Price: req.Price, Image: req.Image}
	items, added, err := h.svc.Storefront.ToggleWishlist(r.Context(), chi.URLParam(r, "theme"), item)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	msg := "Item removed from wishlist"
	if added {
		msg = "Item added to wishlist"
	}
	httpx.OK(w, http.StatusOK, msg, ToggleResponse{Items: items, Added: added})
}
