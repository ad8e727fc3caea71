package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/tag/application/services"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// DeleteTagHandler handles DELETE /<kind>/{id}.
type DeleteTagHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewDeleteTagHandler returns a DeleteTagHandler for kind.
func NewDeleteTagHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *DeleteTagHandler {
	return &DeleteTagHandler{svc: svc, kind: kind, errs: errs}
}

// Execute deletes a record and returns its summary.
//
//	@Summary	Delete tag-family record
//	@Tags		tags
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Record ID"
//	@Success	200	{object}	httpx.Envelope{data=TagSummary}
//	@Failure	400	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/tags/{id} [delete]
func (h *DeleteTagHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tag, err := h.svc.Tag.Delete(r.Context(), h.kind, chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, h.kind.Label+" deleted successfully", TagSummary{
		ID:      tag.ID,
		StoreID: tag.StoreID,
		Name:    tag.Name.String(),
	})
}
