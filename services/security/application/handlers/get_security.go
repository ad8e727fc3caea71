package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/security/application/services"
)

// GetSecurityHandler handles GET /store-security/store/{storeId}.
type GetSecurityHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetSecurityHandler returns a GetSecurityHandler.
func NewGetSecurityHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetSecurityHandler {
	return &GetSecurityHandler{svc: svc, errs: errs}
}

// Execute returns the store's settings, falling back to the defaults.
//
//	@Summary	Get store security settings
//	@Tags		store-security
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=SecurityResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-security/store/{storeId} [get]
func (h *GetSecurityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Security.Get(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Store security settings fetched successfully", toResponse(s))
}
