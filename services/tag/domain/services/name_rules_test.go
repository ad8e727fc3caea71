package services

import (
	"testing"

	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		in      models.TagName
		wantErr bool
	}{
		{"plain", "Summer Sale", false},
		{"unicode", "Été 2024", false},
		{"inner spaces kept", "a  b", false},
		{"newline", "a\nb", true},
		{"carriage return", "a\rb", true},
		{"control char", "a\x07b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateName(tt.in); (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
