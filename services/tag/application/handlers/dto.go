package handlers

import (
	"time"

	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// CreateTagRequest is the request body for POST /<kind>.
type CreateTagRequest struct {
	StoreID string `json:"storeId" validate:"required,objectid" example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name    string `json:"name"    validate:"required,notblank" example:"Summer Sale"`
} // @name CreateTagRequest

// TagResponse is the JSON shape of a tag-family record.
type TagResponse struct {
	ID        string    `json:"_id"       example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID   string    `json:"storeId"   example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name      string    `json:"name"      example:"Summer Sale"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
} // @name TagResponse

// TagSummary is returned by DELETE.
type TagSummary struct {
	ID      string `json:"_id"     example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID string `json:"storeId" example:"64b7f0c2a1e4d3b2c1a09f87"`
	Name    string `json:"name"    example:"Summer Sale"`
} // @name TagSummary

func toResponse(t *models.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		StoreID:   t.StoreID,
		Name:      t.Name.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
