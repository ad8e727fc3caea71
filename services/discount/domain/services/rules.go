// Package services holds the discount's conditional field rules.
package services

import (
	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

// rule ties a field's presence to a discriminator. When required reports
// true the field must be present, otherwise it must be absent.
type rule struct {
	field    string
	required func(d *models.Discount) bool
	present  func(d *models.Discount) bool
	missing  string
	extra    string
}

var rules = []rule{
	{
		field:    "discountCode",
		required: func(d *models.Discount) bool { return d.Method == models.MethodDiscountCode },
		present:  func(d *models.Discount) bool { return d.DiscountCode != nil },
		missing:  "Required when method is discount-code",
		extra:    "Only allowed when method is discount-code",
	},
	{
		field:    "title",
		required: func(d *models.Discount) bool { return d.Method == models.MethodAutomatic },
		present:  func(d *models.Discount) bool { return d.Title != nil },
		missing:  "Required when method is automatic",
		extra:    "Only allowed when method is automatic",
	},
	{
		field:    "percentage",
		required: func(d *models.Discount) bool { return d.ValueType == models.ValuePercentage },
		present:  func(d *models.Discount) bool { return d.Percentage != nil },
		missing:  "Required when valueType is percentage",
		extra:    "Only allowed when valueType is percentage",
	},
	{
		field:    "fixedAmount",
		required: func(d *models.Discount) bool { return d.ValueType == models.ValueFixedAmount },
		present:  func(d *models.Discount) bool { return d.FixedAmount != nil },
		missing:  "Required when valueType is fixed-amount",
		extra:    "Only allowed when valueType is fixed-amount",
	},
	{
		field:    "minimumPurchase.amount",
		required: func(d *models.Discount) bool { return d.MinimumPurchase.Type == models.MinimumAmount },
		present:  func(d *models.Discount) bool { return d.MinimumPurchase.Amount != nil },
		missing:  "Required when type is minimum-amount",
		extra:    "Only allowed when type is minimum-amount",
	},
	{
		field:    "minimumPurchase.quantity",
		required: func(d *models.Discount) bool { return d.MinimumPurchase.Type == models.MinimumQuantity },
		present:  func(d *models.Discount) bool { return d.MinimumPurchase.Quantity != nil },
		missing:  "Required when type is minimum-quantity",
		extra:    "Only allowed when type is minimum-quantity",
	},
	{
		field:    "eligibility.ids",
		required: func(d *models.Discount) bool { return d.Eligibility.Type != models.EligibilityAll },
		present:  func(d *models.Discount) bool { return len(d.Eligibility.IDs) > 0 },
		missing:  "Must contain at least 1 item when customers are restricted",
		extra:    "Only allowed when customers are restricted",
	},
	{
		field:    "maximumUses.totalUsesLimit",
		required: func(d *models.Discount) bool { return d.MaximumUses.LimitTotalUses },
		present:  func(d *models.Discount) bool { return d.MaximumUses.TotalUsesLimit != nil },
		missing:  "Required when limitTotalUses is set",
		extra:    "Only allowed when limitTotalUses is set",
	},
	{
		field:    "appliesTo.ids",
		required: func(*models.Discount) bool { return true },
		present:  func(d *models.Discount) bool { return len(d.AppliesTo.IDs) > 0 },
		missing:  "Must contain at least 1 item",
	},
}

// Validate evaluates every rule and returns the failing fields, or nil.
func Validate(d *models.Discount) map[string]string {
	failed := make(map[string]string)
	for _, r := range rules {
		required, present := r.required(d), r.present(d)
		switch {
		case required && !present:
			failed[r.field] = r.missing
		case !required && present:
			failed[r.field] = r.extra
		}
	}
	if end := d.ActiveDates.EndAt; end != nil && !end.After(d.ActiveDates.StartAt) {
		failed["activeDates.endAt"] = "Must be after startAt"
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}
