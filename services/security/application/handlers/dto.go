package handlers

import (
	"time"

	"github.com/ziplofy/storeconfig/services/security/domain/models"
)

// UpdateSecurityRequest is the body of PUT /store-security/store/{storeId}.
type UpdateSecurityRequest struct {
	RequireCode    *bool `json:"requireCode" validate:"required"`
	RegenerateCode bool  `json:"regenerateCode"`
}

// SecurityResponse is the API shape of a store's security settings. ID is
// empty until the store saves settings for the first time.
type SecurityResponse struct {
	ID              string     `json:"_id,omitempty"`
	StoreID         string     `json:"storeId"`
	RequireCode     bool       `json:"requireCode"`
	Code            *string    `json:"code"`
	CodeGeneratedAt *time.Time `json:"codeGeneratedAt"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(s *models.Settings) SecurityResponse {
	resp := SecurityResponse{
		ID:              s.ID,
		StoreID:         s.StoreID,
		RequireCode:     s.RequireCode,
		CodeGeneratedAt: s.CodeGeneratedAt,
	}
	if s.Code != "" {
		code := s.Code
		resp.Code = &code
	}
	if s.Persisted() {
		created, updated := s.CreatedAt, s.UpdatedAt
		resp.CreatedAt, resp.UpdatedAt = &created, &updated
	}
	return resp
}
