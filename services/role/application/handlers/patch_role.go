package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
)

// PatchRoleHandler handles PATCH /store-roles/{roleId}.
type PatchRoleHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPatchRoleHandler returns a PatchRoleHandler.
func NewPatchRoleHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PatchRoleHandler {
	return &PatchRoleHandler{svc: svc, errs: errs}
}

// Execute partially updates a role. System roles accept a description only.
//
//	@Summary	Update store role
//	@Tags		store-roles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		roleId	path		string				true	"Role ID"
//	@Param		request	body		UpdateRoleRequest	true	"Fields to change"
//	@Success	200		{object}	httpx.Envelope{data=RoleResponse}
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Failure	409		{object}	httpx.Envelope
//	@Router		/store-roles/{roleId} [patch]
func (h *PatchRoleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateRoleRequest](w, r)
	if !ok {
		return
	}
	role, err := h.svc.Role.Update(r.Context(), chi.URLParam(r, "roleId"), appsvcs.RolePatch{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Store role updated successfully", toResponse(role))
}
