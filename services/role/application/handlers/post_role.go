package handlers

import (
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	pkgvalidator "github.com/ziplofy/storeconfig/pkg/validator"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
)

// PostRoleHandler handles POST /store-roles.
type PostRoleHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostRoleHandler returns a PostRoleHandler.
func NewPostRoleHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostRoleHandler {
	return &PostRoleHandler{svc: svc, errs: errs}
}

// Execute creates a custom store role.
//
//	@Summary		Create store role
//	@Description	Permissions must come from the permission catalog; duplicates are collapsed
//	@Tags			store-roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateRoleRequest	true	"Role"
//	@Success		201		{object}	httpx.Envelope{data=RoleResponse}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		409		{object}	httpx.Envelope
//	@Router			/store-roles [post]
func (h *PostRoleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateRoleRequest](w, r)
	if !ok {
		return
	}
	role, err := h.svc.Role.Create(r.Context(), req.StoreID, req.Name, req.Description, req.Permissions)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Store role created successfully", toResponse(role))
}
