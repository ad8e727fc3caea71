package handlers

import (
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/tag/application/services"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// PostTagHandler handles POST /<kind> for one tag-family kind.
type PostTagHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewPostTagHandler returns a PostTagHandler for kind.
func NewPostTagHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *PostTagHandler {
	return &PostTagHandler{svc: svc, kind: kind, errs: errs}
}

// Execute creates a record.
//
//	@Summary		Create tag-family record
//	@Description	Creates a tag, product tag, vendor, product type, purchase-order tag or transfer tag for a store
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateTagRequest	true	"Record to create"
//	@Success		201		{object}	httpx.Envelope{data=TagResponse}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		409		{object}	httpx.Envelope
//	@Router			/tags [post]
func (h *PostTagHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateTagRequest](w, r)
	if !ok {
		return
	}

	tag, err := h.svc.Tag.Create(r.Context(), h.kind, req.StoreID, req.Name)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	httpx.OK(w, http.StatusCreated, h.kind.Label+" created successfully", toResponse(tag))
}
