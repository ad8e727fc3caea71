package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TagName is a value object holding a trimmed, non-empty name.
type TagName string

// NewTagName trims s and checks it against the kind's maximum length,
// counted in characters.
func NewTagName(s string, max int) (TagName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("name is required")
	}
	if n := utf8.RuneCountInString(s); n > max {
		return "", fmt.Errorf("name must not exceed %d characters", max)
	}
	return TagName(s), nil
}

// String returns the underlying string value.
func (n TagName) String() string {
	return string(n)
}
