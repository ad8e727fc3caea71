// Package services holds the access code state transitions.
package services

import (
	"time"

	"github.com/ziplofy/storeconfig/services/security/domain/models"
)

// Request is the desired state sent by the admin.
type Request struct {
	RequireCode bool
	Regenerate  bool
}

// CodeSource issues a new access code.
type CodeSource func() (string, error)

// Apply returns the settings that result from req. It issues a code when the
// requirement is switched on without one or when a regeneration is asked
// for while enabled, and clears the code when the requirement is off. issued
// reports whether a new code was drawn. cur is not modified.
func Apply(cur models.Settings, req Request, now time.Time, gen CodeSource) (next models.Settings, issued bool, err error) {
	next = cur
	next.UpdatedAt = now

	if !req.RequireCode {
		next.RequireCode = false
		next.Code = ""
		next.CodeGeneratedAt = nil
		return next, false, nil
	}

	next.RequireCode = true
	if cur.Code != "" && !req.Regenerate {
		return next, false, nil
	}

	code, err := gen()
	if err != nil {
		return cur, false, err
	}
	stamped := now
	next.Code = code
	next.CodeGeneratedAt = &stamped
	return next, true, nil
}
