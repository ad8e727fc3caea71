package handlers

import (
	"time"

	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// PolicyFields holds the body of each policy kind under its own JSON field.
// Only the field of the route's kind is read or written.
type PolicyFields struct {
	ContactInfo    string `json:"contactInfo,omitempty"    example:"Email support@example.com"`
	PrivacyPolicy  string `json:"privacyPolicy,omitempty"  example:"We never sell your data."`
	ShippingPolicy string `json:"shippingPolicy,omitempty" example:"Orders ship within 2 business days."`
	ReturnPolicy   string `json:"returnPolicy,omitempty"   example:"Returns accepted within 30 days."`
	TermsOfService string `json:"termsOfService,omitempty" example:"By using this store you agree..."`
} // @name PolicyFields

// Get returns the body stored under kind's field.
func (f PolicyFields) Get(k models.Kind) string {
	switch k.Name {
	case models.Contact.Name:
		return f.ContactInfo
	case models.Privacy.Name:
		return f.PrivacyPolicy
	case models.Shipping.Name:
		return f.ShippingPolicy
	case models.Return.Name:
		return f.ReturnPolicy
	case models.Terms.Name:
		return f.TermsOfService
	}
	return ""
}

// Set stores v under kind's field.
func (f *PolicyFields) Set(k models.Kind, v string) {
	switch k.Name {
	case models.Contact.Name:
		f.ContactInfo = v
	case models.Privacy.Name:
		f.PrivacyPolicy = v
	case models.Shipping.Name:
		f.ShippingPolicy = v
	case models.Return.Name:
		f.ReturnPolicy = v
	case models.Terms.Name:
		f.TermsOfService = v
	}
}

// UpsertPolicyRequest is the request body for POST /<kind>.
type UpsertPolicyRequest struct {
	StoreID string `json:"storeId" validate:"required,objectid" example:"64b7f0c2a1e4d3b2c1a09f87"`
	PolicyFields
} // @name UpsertPolicyRequest

// UpdatePolicyRequest is the request body for PUT /<kind>/{id} and
// PUT /<kind>/store/{storeId}.
type UpdatePolicyRequest struct {
	PolicyFields
} // @name UpdatePolicyRequest

// PolicyResponse is the JSON shape of a policy document.
type PolicyResponse struct {
	ID      string `json:"_id"     example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID string `json:"storeId" example:"64b7f0c2a1e4d3b2c1a09f87"`
	PolicyFields
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
} // @name PolicyResponse

func toResponse(k models.Kind, p *models.Policy) PolicyResponse {
	out := PolicyResponse{
		ID:        p.ID,
		StoreID:   p.StoreID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	out.Set(k, p.Content)
	return out
}
