package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ziplofy/storeconfig/migrations"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/migrator"
	discountdomain "github.com/ziplofy/storeconfig/services/discount/domain"
	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

func ptr[T any](v T) *T { return &v }

func TestMarshalBlocks_ColumnOrder(t *testing.T) {
	d := &models.Discount{
		AppliesTo:       models.AppliesTo{Type: models.AppliesToProducts, IDs: []string{"a"}},
		MinimumPurchase: models.MinimumPurchase{Type: models.MinimumQuantity, Quantity: ptr(3)},
		Eligibility:     models.Eligibility{Type: models.EligibilityAll, IDs: []string{}},
		Combinations:    models.Combinations{OrderDiscounts: true},
		MaximumUses:     models.MaximumUses{OnePerCustomer: true},
	}
	blocks, err := marshalBlocks(d)
	if err != nil {
		t.Fatal(err)
	}
	want := [5]string{
		`{"type":"specific-products","ids":["a"]}`,
		`{"type":"minimum-quantity","quantity":3}`,
		`{"type":"all-customers","ids":[]}`,
		`{"productDiscounts":false,"orderDiscounts":true,"shippingDiscounts":false}`,
		`{"limitTotalUses":false,"onePerCustomer":true}`,
	}
	for i := range want {
		if string(blocks[i]) != want[i] {
			t.Errorf("block %d = %s, want %s", i, blocks[i], want[i])
		}
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestDiscountRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	if err := migrator.Up(ctx, url, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.New(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close() //nolint:errcheck

	repo := NewDiscountRepository(db, nil)
	storeID := ident.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	d := &models.Discount{
		StoreID:      storeID,
		Method:       models.MethodDiscountCode,
		DiscountCode: ptr("WELCOME"),
		ValueType:    models.ValuePercentage,
		Percentage:   ptr(12.5),
		AppliesTo:    models.AppliesTo{Type: models.AppliesToCollections, IDs: []string{ident.New()}},
		ActiveDates:  models.ActiveDates{StartAt: now, EndAt: ptr(now.Add(24 * time.Hour))},
	}
	d.Normalize(now)
	d.Stamp(now)
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := *d
	dup.DiscountCode = ptr("welcome")
	dup.Stamp(now)
	if err := repo.Create(ctx, &dup); !errors.Is(err, discountdomain.ErrDiscountCodeExists) {
		t.Fatalf("expected code conflict, got %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Delete(ctx, d.ID); !errors.Is(err, discountdomain.ErrDiscountNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}
