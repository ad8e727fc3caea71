package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/policy/application/services"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// PutPolicyHandler handles PUT /<kind>/{id}.
type PutPolicyHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewPutPolicyHandler returns a PutPolicyHandler for kind.
func NewPutPolicyHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *PutPolicyHandler {
	return &PutPolicyHandler{svc: svc, kind: kind, errs: errs}
}

// Execute replaces the content of an existing document.
//
//	@Summary	Update a policy document by ID
//	@Tags		policies
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Document ID"
//	@Param		request	body		UpdatePolicyRequest	true	"New content"
//	@Success	200		{object}	httpx.Envelope{data=PolicyResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/store-privacy-policy/{id} [put]
func (h *PutPolicyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdatePolicyRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Policy.Update(r.Context(), h.kind, chi.URLParam(r, "id"), req.Get(h.kind))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, h.kind.Label+" updated successfully", toResponse(h.kind, p))
}

// PutPolicyByStoreHandler handles PUT /<kind>/store/{storeId}.
type PutPolicyByStoreHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewPutPolicyByStoreHandler returns a PutPolicyByStoreHandler for kind.
func NewPutPolicyByStoreHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *PutPolicyByStoreHandler {
	return &PutPolicyByStoreHandler{svc: svc, kind: kind, errs: errs}
}

// Execute is the idempotent form of POST: it always answers 200.
//
//	@Summary	Save a store's policy document
//	@Tags		policies
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string				true	"Store ID"
//	@Param		request	body		UpdatePolicyRequest	true	"Document"
//	@Success	200		{object}	httpx.Envelope{data=PolicyResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-privacy-policy/store/{storeId} [put]
func (h *PutPolicyByStoreHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdatePolicyRequest](w, r)
	if !ok {
		return
	}

	p, _, err := h.svc.Policy.Upsert(r.Context(), h.kind, chi.URLParam(r, "storeId"), req.Get(h.kind))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, h.kind.Label+" saved successfully", toResponse(h.kind, p))
}
