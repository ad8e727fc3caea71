package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
)

// DeleteRoleHandler handles DELETE /store-roles/{roleId}.
type DeleteRoleHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewDeleteRoleHandler returns a DeleteRoleHandler.
func NewDeleteRoleHandler(svc *appsvcs.Services, errs *errhttp.Responder) *DeleteRoleHandler {
	return &DeleteRoleHandler{svc: svc, errs: errs}
}

// Execute deletes a custom role.
//
//	@Summary	Delete store role
//	@Tags		store-roles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		roleId	path		string	true	"Role ID"
//	@Success	200		{object}	httpx.Envelope{data=RoleSummary}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/store-roles/{roleId} [delete]
func (h *DeleteRoleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	role, err := h.svc.Role.Delete(r.Context(), chi.URLParam(r, "roleId"))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Store role deleted successfully", RoleSummary{
		ID:      role.ID,
		StoreID: role.StoreID,
		Name:    role.Name,
	})
}
