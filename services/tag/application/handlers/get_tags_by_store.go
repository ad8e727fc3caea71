package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/tag/application/services"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// GetTagsByStoreHandler handles GET /<kind>/store/{storeId}.
type GetTagsByStoreHandler struct {
	svc  *appsvcs.Services
	kind models.Kind
	errs *errhttp.Responder
}

// NewGetTagsByStoreHandler returns a GetTagsByStoreHandler for kind.
func NewGetTagsByStoreHandler(svc *appsvcs.Services, kind models.Kind, errs *errhttp.Responder) *GetTagsByStoreHandler {
	return &GetTagsByStoreHandler{svc: svc, kind: kind, errs: errs}
}

// Execute lists a store's records.
//
//	@Summary	List tag-family records of a store
//	@Tags		tags
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	path		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=[]TagResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/tags/store/{storeId} [get]
func (h *GetTagsByStoreHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tag.ListByStore(r.Context(), h.kind, chi.URLParam(r, "storeId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = toResponse(t)
	}
	httpx.List(w, h.kind.Plural+" fetched successfully", out)
}
