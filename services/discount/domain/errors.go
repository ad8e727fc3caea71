package domain

import "github.com/ziplofy/storeconfig/pkg/apperr"

// Sentinel errors for the discount domain. Use errors.Is() to check them.
var (
	ErrDiscountNotFound   = apperr.NotFound("Discount not found")
	ErrDiscountCodeExists = apperr.Conflict("Discount code already exists for this store")
)

// InvalidDiscount reports every failing field of a discount at once.
func InvalidDiscount(fields map[string]string) error {
	return apperr.InvalidFields("Discount validation failed", fields)
}
