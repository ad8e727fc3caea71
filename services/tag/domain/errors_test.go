package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

func TestSentinels_StablePerKind(t *testing.T) {
	for _, k := range models.Kinds {
		if NotFound(k) != NotFound(k) {
			t.Errorf("%s: NotFound is not stable", k.Name)
		}
		if !errors.Is(fmt.Errorf("wrap: %w", NotFound(k)), apperr.ErrNotFound) {
			t.Errorf("%s: NotFound is not an apperr.ErrNotFound", k.Name)
		}
		if !errors.Is(AlreadyExists(k), apperr.ErrConflict) {
			t.Errorf("%s: AlreadyExists is not an apperr.ErrConflict", k.Name)
		}
	}
	if errors.Is(NotFound(models.TagKind), NotFound(models.Vendor)) {
		t.Error("kinds must not share sentinels")
	}
}

func TestMessages(t *testing.T) {
	if got := NotFound(models.Vendor).Error(); got != "Vendor not found" {
		t.Errorf("unexpected message %q", got)
	}
	if got := AlreadyExists(models.ProductType).Error(); got != "Product type with this name already exists for this store" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestInvalidName_CarriesField(t *testing.T) {
	err := InvalidName(models.TagKind, errors.New("name is required"))
	ae, ok := apperr.As(err)
	if !ok || !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation apperr, got %v", err)
	}
	if ae.Fields["name"] != "name is required" {
		t.Errorf("unexpected fields %v", ae.Fields)
	}
}
