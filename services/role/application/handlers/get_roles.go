package handlers

import (
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
)

var errStoreIDRequired = apperr.InvalidFields("Validation failed", map[string]string{"storeId": "This field is required"})

// GetRolesHandler handles GET /store-roles?storeId=.
type GetRolesHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetRolesHandler returns a GetRolesHandler.
func NewGetRolesHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetRolesHandler {
	return &GetRolesHandler{svc: svc, errs: errs}
}

// Execute lists a store's roles ordered by name.
//
//	@Summary	List store roles
//	@Tags		store-roles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		storeId	query		string	true	"Store ID"
//	@Success	200		{object}	httpx.Envelope{data=[]RoleResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Router		/store-roles [get]
func (h *GetRolesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("storeId")
	if storeID == "" {
		h.errs.Error(w, r, errStoreIDRequired)
		return
	}
	roles, err := h.svc.Role.ListByStore(r.Context(), storeID)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	out := make([]RoleResponse, len(roles))
	for i, role := range roles {
		out[i] = toResponse(role)
	}
	httpx.List(w, "Store roles fetched successfully", out)
}
