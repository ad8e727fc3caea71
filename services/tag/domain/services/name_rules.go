// Package services contains stateless domain services for the tag family.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// ValidateName enforces rules beyond the TagName constructor (trim, length):
// no control characters and no line breaks, since names render inline in the
// admin UI and storefront filters.
func ValidateName(name models.TagName) error {
	s := name.String()
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("name must be a single line")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}
	return nil
}
