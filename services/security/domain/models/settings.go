package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

const (
	// CodeAlphabet is the symbol set of access codes.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength is the number of symbols in an access code.
	CodeLength = 8
)

// Settings is a store's storefront access configuration. Code is empty and
// CodeGeneratedAt nil whenever RequireCode is false.
type Settings struct {
	ID              string
	StoreID         string
	RequireCode     bool
	Code            string
	CodeGeneratedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Defaults returns the unsaved settings of a store that never configured
// them: no code required.
func Defaults(storeID string) *Settings {
	return &Settings{StoreID: storeID}
}

// Persisted reports whether s was loaded from storage.
func (s *Settings) Persisted() bool { return s.ID != "" }

// EnsureID assigns an ID and creation time to settings saved for the first time.
func (s *Settings) EnsureID(now time.Time) {
	if s.ID == "" {
		s.ID = ident.New()
		s.CreatedAt = now
	}
}

// GenerateCode draws CodeLength symbols uniformly from CodeAlphabet.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		buf[i] = CodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
