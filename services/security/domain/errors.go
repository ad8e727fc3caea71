package domain

import "github.com/ziplofy/storeconfig/pkg/apperr"

// Sentinel errors for the security settings domain.
var (
	ErrSettingsNotFound = apperr.NotFound("Store security settings not found")
	ErrCodeNotRequired  = apperr.Validation("Enable requireCode before regenerating the access code")
)
