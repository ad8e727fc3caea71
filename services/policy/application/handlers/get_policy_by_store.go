package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/policy/application/services"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// GetPolicyByStoreHandler handles GET /<kind>/store/{storeId}.
type GetPolicyByStoreHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewGetPolicyByStoreHandler returns a GetPolicyByStoreHandler for kind.
func NewGetPolicyByStoreHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *GetPolicyByStoreHandler {
	return &GetPolicyByStoreHandler{svc: svc, kind: kind, errs: errs}
}

// Execute returns the store's document, or null data when none exists.
//
//	@Summary	Get a store's policy document
//	@Tags		policies
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=PolicyResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-privacy-policy/store/{storeId} [get]
func (h *GetPolicyByStoreHandler) Execute(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Policy.GetByStore(r.Context(), h.kind, chi.URLParam(r, "storeId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	if p == nil {
		httpx.NullData(w, "No "+h.kind.Lower()+" configured for this store")
		return
	}
	httpx.OK(w, http.StatusOK, h.kind.Label+" fetched successfully", toResponse(h.kind, p))
}
