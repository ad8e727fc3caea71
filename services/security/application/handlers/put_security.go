package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/security/application/services"
)

// PutSecurityHandler handles PUT /store-security/store/{storeId}.
type PutSecurityHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPutSecurityHandler returns a PutSecurityHandler.
func NewPutSecurityHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PutSecurityHandler {
	return &PutSecurityHandler{svc: svc, errs: errs}
}

// Execute turns the access code requirement on or off.
//
//	@Summary	Update store security settings
//	@Tags		store-security
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string					true	"Store ID"
//	@Param		request	body		UpdateSecurityRequest	true	"Desired state"
//	@Success	200		{object}	httpx.Envelope{data=SecurityResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-security/store/{storeId} [put]
func (h *PutSecurityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateSecurityRequest](w, r)
	if !ok {
		return
	}
	s, err := h.svc.Security.Update(r.Context(), chi.URLParam(r, "storeId"), *req.RequireCode, req.RegenerateCode)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Store security settings updated successfully", toResponse(s))
}

// RegenerateCodeHandler handles POST /store-security/store/{storeId}/regenerate.
type RegenerateCodeHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewRegenerateCodeHandler returns a RegenerateCodeHandler.
func NewRegenerateCodeHandler(svc *appsvcs.Services, errs *errhttp.Responder) *RegenerateCodeHandler {
	return &RegenerateCodeHandler{svc: svc, errs: errs}
}

// Execute replaces the store's access code.
//
//	@Summary	Regenerate the store access code
//	@Tags		store-security
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=SecurityResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-security/store/{storeId}/regenerate [post]
func (h *RegenerateCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Security.Regenerate(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Security code regenerated successfully", toResponse(s))
}
