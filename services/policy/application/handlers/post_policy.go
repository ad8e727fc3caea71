package handlers

import (
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/policy/application/services"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// PostPolicyHandler handles POST /<kind>.
type PostPolicyHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewPostPolicyHandler returns a PostPolicyHandler for kind.
func NewPostPolicyHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *PostPolicyHandler {
	return &PostPolicyHandler{svc: svc, kind: kind, errs: errs}
}

// Execute creates or overwrites the store's document. The status code tells
// the two apart: 201 for a new document, 200 for an overwrite.
//
//	@Summary		Create or overwrite a policy document
//	@Description	Upserts the contact info, privacy, shipping, return or terms document of a store
//	@Tags			policies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		UpsertPolicyRequest	true	"Document"
//	@Success		200		{object}	httpx.Envelope{data=PolicyResponse}
//	@Success		201		{object}	httpx.Envelope{data=PolicyResponse}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/store-privacy-policy [post]
func (h *PostPolicyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpsertPolicyRequest](w, r)
	if !ok {
		return
	}

	p, created, err := h.svc.Policy.Upsert(r.Context(), h.kind, req.StoreID, req.Get(h.kind))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	if created {
		httpx.OK(w, http.StatusCreated, h.kind.Label+" created successfully", toResponse(h.kind, p))
		return
	}
	httpx.OK(w, http.StatusOK, h.kind.Label+" updated successfully", toResponse(h.kind, p))
}
