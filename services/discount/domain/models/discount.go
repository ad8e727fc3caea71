package models

import (
	"strings"
	"time"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

// Method decides how a discount is redeemed.
type Method string

const (
	MethodDiscountCode Method = "discount-code"
	MethodAutomatic    Method = "automatic"
)

// ValueType decides whether Percentage or FixedAmount carries the value.
type ValueType string

const (
	ValuePercentage  ValueType = "percentage"
	ValueFixedAmount ValueType = "fixed-amount"
)

// Block discriminators.
const (
	AppliesToCollections = "specific-collections"
	AppliesToProducts    = "specific-products"

	MinimumNone     = "none"
	MinimumAmount   = "minimum-amount"
	MinimumQuantity = "minimum-quantity"

	EligibilityAll      = "all-customers"
	EligibilitySegments = "specific-customer-segments"
	EligibilityCustomer = "specific-customers"
)

// The blocks below are persisted as JSONB; their tags are the storage format.

// AppliesTo selects the collections or products the discount targets.
type AppliesTo struct {
	Type string   `json:"type"`
	IDs  []string `json:"ids"`
}

// MinimumPurchase is the order threshold for the discount.
type MinimumPurchase struct {
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
}

// Eligibility restricts which customers may use the discount.
type Eligibility struct {
	Type string   `json:"type"`
	IDs  []string `json:"ids"`
}

// Combinations lists the discount classes this one stacks with.
type Combinations struct {
	ProductDiscounts  bool `json:"productDiscounts"`
	OrderDiscounts    bool `json:"orderDiscounts"`
	ShippingDiscounts bool `json:"shippingDiscounts"`
}

// MaximumUses caps redemptions.
type MaximumUses struct {
	LimitTotalUses bool `json:"limitTotalUses"`
	TotalUsesLimit *int `json:"totalUsesLimit,omitempty"`
	OnePerCustomer bool `json:"onePerCustomer"`
}

// ActiveDates is the window the discount is valid in. A nil EndAt never expires.
type ActiveDates struct {
	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
}

// Discount is an amount-off-products discount owned by one store.
type Discount struct {
	ID              string
	StoreID         string
	Method          Method
	DiscountCode    *string
	Title           *string
	ValueType       ValueType
	Percentage      *float64
	FixedAmount     *float64
	AppliesTo       AppliesTo
	MinimumPurchase MinimumPurchase
	Eligibility     Eligibility
	Combinations    Combinations
	MaximumUses     MaximumUses
	ActiveDates     ActiveDates
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Normalize trims free-text fields, turns blank strings into absent values
// and fills the defaults of omitted blocks.
func (d *Discount) Normalize(now time.Time) {
	d.DiscountCode = trimmed(d.DiscountCode)
	d.Title = trimmed(d.Title)
	if d.MinimumPurchase.Type == "" {
		d.MinimumPurchase.Type = MinimumNone
	}
	if d.Eligibility.Type == "" {
		d.Eligibility.Type = EligibilityAll
	}
	if d.AppliesTo.IDs == nil {
		d.AppliesTo.IDs = []string{}
	}
	if d.Eligibility.IDs == nil {
		d.Eligibility.IDs = []string{}
	}
	if d.ActiveDates.StartAt.IsZero() {
		d.ActiveDates.StartAt = now
	}
}

// Stamp assigns a fresh ID and timestamps.
func (d *Discount) Stamp(now time.Time) {
	d.ID = ident.New()
	d.CreatedAt = now
	d.UpdatedAt = now
}

// Code returns the discount code, or "" for automatic discounts.
func (d *Discount) Code() string {
	if d.DiscountCode == nil {
		return ""
	}
	return *d.DiscountCode
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
