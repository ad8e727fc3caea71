package handlers

import (
	"time"

	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

// CreateDiscountRequest is the request body for POST /discounts/amount-off-products.
// Tags check shape and ranges. Which fields must be present for a given
// method and valueType is decided by the domain rules.
type CreateDiscountRequest struct {
	StoreID         string                 `json:"storeId"         validate:"required,objectid"                            example:"64b7f0c2a1e4d3b2c1a09f87"`
	Method          string                 `json:"method"          validate:"required,oneof=discount-code automatic"       example:"discount-code"`
	DiscountCode    *string                `json:"discountCode"    validate:"omitempty,max=64"                             example:"SUMMER10"`
	Title           *string                `json:"title"           validate:"omitempty,max=255"`
	ValueType       string                 `json:"valueType"       validate:"required,oneof=percentage fixed-amount"       example:"percentage"`
	Percentage      *float64               `json:"percentage"      validate:"omitempty,gt=0,lte=100,decimals=2"            example:"10"`
	FixedAmount     *float64               `json:"fixedAmount"     validate:"omitempty,gt=0,lte=9999999999.99,decimals=2"`
	AppliesTo       AppliesToRequest       `json:"appliesTo"       validate:"required"`
	MinimumPurchase MinimumPurchaseRequest `json:"minimumPurchase"`
	Eligibility     EligibilityRequest     `json:"eligibility"`
	Combinations    models.Combinations    `json:"combinations"`
	MaximumUses     MaximumUsesRequest     `json:"maximumUses"`
	ActiveDates     ActiveDatesRequest     `json:"activeDates"`
} // @name CreateDiscountRequest

// AppliesToRequest is the targeting block.
type AppliesToRequest struct {
	Type string   `json:"type" validate:"required,oneof=specific-collections specific-products" example:"specific-products"`
	IDs  []string `json:"ids"  validate:"dive,objectid"`
} // @name AppliesToRequest

// MinimumPurchaseRequest is the order threshold block. Type defaults to none.
type MinimumPurchaseRequest struct {
	Type     string   `json:"type"     validate:"omitempty,oneof=none minimum-amount minimum-quantity" example:"none"`
	Amount   *float64 `json:"amount"   validate:"omitempty,gt=0,lte=9999999999.99,decimals=2"`
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
} // @name MinimumPurchaseRequest

// EligibilityRequest is the customer restriction block. Type defaults to all-customers.
type EligibilityRequest struct {
	Type string   `json:"type" validate:"omitempty,oneof=all-customers specific-customer-segments specific-customers" example:"all-customers"`
	IDs  []string `json:"ids"  validate:"dive,objectid"`
} // @name EligibilityRequest

// MaximumUsesRequest is the redemption cap block.
type MaximumUsesRequest struct {
	LimitTotalUses bool `json:"limitTotalUses"`
	TotalUsesLimit *int `json:"totalUsesLimit" validate:"omitempty,gt=0"`
	OnePerCustomer bool `json:"onePerCustomer"`
} // @name MaximumUsesRequest

// ActiveDatesRequest is the validity window. StartAt defaults to now.
type ActiveDatesRequest struct {
	StartAt *time.Time `json:"startAt" example:"2024-06-01T00:00:00Z"`
	EndAt   *time.Time `json:"endAt"`
} // @name ActiveDatesRequest

func (r *CreateDiscountRequest) toModel() *models.Discount {
	d := &models.Discount{
		StoreID:      r.StoreID,
		Method:       models.Method(r.Method),
		DiscountCode: r.DiscountCode,
		Title:        r.Title,
		ValueType:    models.ValueType(r.ValueType),
		Percentage:   r.Percentage,
		FixedAmount:  r.FixedAmount,
		AppliesTo:    models.AppliesTo{Type: r.AppliesTo.Type, IDs: r.AppliesTo.IDs},
		MinimumPurchase: models.MinimumPurchase{
			Type:     r.MinimumPurchase.Type,
			Amount:   r.MinimumPurchase.Amount,
			Quantity: r.MinimumPurchase.Quantity,
		},
		Eligibility:  models.Eligibility{Type: r.Eligibility.Type, IDs: r.Eligibility.IDs},
		Combinations: r.Combinations,
		MaximumUses: models.MaximumUses{
			LimitTotalUses: r.MaximumUses.LimitTotalUses,
			TotalUsesLimit: r.MaximumUses.TotalUsesLimit,
			OnePerCustomer: r.MaximumUses.OnePerCustomer,
		},
		ActiveDates: models.ActiveDates{EndAt: r.ActiveDates.EndAt},
	}
	if r.ActiveDates.StartAt != nil {
		d.ActiveDates.StartAt = r.ActiveDates.StartAt.UTC()
	}
	return d
}

// DiscountResponse is the JSON shape of a discount.
type DiscountResponse struct {
	ID              string                 `json:"_id"                    example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID         string                 `json:"storeId"                example:"64b7f0c2a1e4d3b2c1a09f87"`
	Method          string                 `json:"method"                 example:"discount-code"`
	DiscountCode    *string                `json:"discountCode,omitempty" example:"SUMMER10"`
	Title           *string                `json:"title,omitempty"`
	ValueType       string                 `json:"valueType"              example:"percentage"`
	Percentage      *float64               `json:"percentage,omitempty"   example:"10"`
	FixedAmount     *float64               `json:"fixedAmount,omitempty"`
	AppliesTo       models.AppliesTo       `json:"appliesTo"`
	MinimumPurchase models.MinimumPurchase `json:"minimumPurchase"`
	Eligibility     models.Eligibility     `json:"eligibility"`
	Combinations    models.Combinations    `json:"combinations"`
	MaximumUses     models.MaximumUses     `json:"maximumUses"`
	ActiveDates     models.ActiveDates     `json:"activeDates"`
	CreatedAt       time.Time              `json:"createdAt"              example:"2024-01-15T10:30:00Z"`
	UpdatedAt       time.Time              `json:"updatedAt"              example:"2024-01-15T10:30:00Z"`
} // @name DiscountResponse

// DiscountSummary is returned by DELETE.
type DiscountSummary struct {
	ID           string  `json:"_id"                    example:"64b7f0c2a1e4d3b2c1a09f88"`
	StoreID      string  `json:"storeId"                example:"64b7f0c2a1e4d3b2c1a09f87"`
	DiscountCode *string `json:"discountCode,omitempty" example:"SUMMER10"`
	Title        *string `json:"title,omitempty"`
} // @name DiscountSummary

func toResponse(d *models.Discount) DiscountResponse {
	return DiscountResponse{
		ID:              d.ID,
		StoreID:         d.StoreID,
		Method:          string(d.Method),
		DiscountCode:    d.DiscountCode,
		Title:           d.Title,
		ValueType:       string(d.ValueType),
		Percentage:      d.Percentage,
		FixedAmount:     d.FixedAmount,
		AppliesTo:       d.AppliesTo,
		MinimumPurchase: d.MinimumPurchase,
		Eligibility:     d.Eligibility,
		Combinations:    d.Combinations,
		MaximumUses:     d.MaximumUses,
		ActiveDates:     d.ActiveDates,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
