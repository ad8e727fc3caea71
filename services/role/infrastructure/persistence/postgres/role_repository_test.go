package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ziplofy/storeconfig/migrations"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/migrator"
	roledomain "github.com/ziplofy/storeconfig/services/role/domain"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

// Integration tests: skipped unless DATABASE_URL is set.
func TestRoleRepositoryIntegration(t *testing.T) {
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

	repo := NewRoleRepository(db)
	storeID := ident.New()

	out, err := repo.InsertMissing(ctx, models.DefaultRoles(storeID))
	if err != nil || out.Inserted != 4 {
		t.Fatalf("InsertMissing = %+v, %v", out, err)
	}
	if out, err := repo.InsertMissing(ctx, models.DefaultRoles(storeID)); err != nil || out.Inserted != 0 || len(out.Shadowed) != 0 {
		t.Fatalf("reseed = %+v, %v", out, err)
	}

	other := ident.New()
	if err := repo.Create(ctx, models.NewRole(other, "viewer", "", nil)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	out, err = repo.InsertMissing(ctx, models.DefaultRoles(other))
	if err != nil || out.Inserted != 3 || len(out.Shadowed) != 1 || out.Shadowed[0] != "Viewer" {
		t.Fatalf("seed over custom role = %+v, %v", out, err)
	}

	custom := models.NewRole(storeID, "Packer", "", []models.Permission{models.OrdersRead})
	if err := repo.Create(ctx, custom); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, models.NewRole(storeID, "OWNER", "", nil)); !errors.Is(err, roledomain.ErrRoleAlreadyExists) {
		t.Fatalf("expected conflict with system role name, got %v", err)
	}

	custom.Permissions = []models.Permission{models.OrdersWrite, models.ProductsRead}
	if err := repo.Update(ctx, custom); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, custom.ID)
	if err != nil || len(got.Permissions) != 2 || !got.Has(models.ProductsRead) {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	roles, err := repo.ListByStore(ctx, storeID)
	if err != nil || len(roles) != 5 || roles[0].Name != "Admin" {
		t.Fatalf("ListByStore = %d roles, %v", len(roles), err)
	}

	var owner *models.Role
	for _, r := range roles {
		if r.Name == "Owner" {
			owner = r
		}
	}
	if err := repo.Delete(ctx, owner.ID); !errors.Is(err, roledomain.ErrRoleNotFound) {
		t.Fatalf("system role delete should affect no rows, got %v", err)
	}
	if err := repo.Delete(ctx, custom.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
