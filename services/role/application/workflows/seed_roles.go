// Package workflows runs store role seeding on Temporal so a new store gets
// its system roles even if the caller disappears mid-request.
package workflows

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

const errTypeInvalidStore = "InvalidStore"

// SeedInput is the argument of SeedStoreRolesWorkflow.
type SeedInput struct {
	StoreID string `json:"storeId"`
}

// SeedResult reports how many system roles were inserted and which were
// not, because a custom role already holds the name.
type SeedResult struct {
	Inserted int      `json:"inserted"`
	Shadowed []string `json:"shadowed,omitempty"`
}

// WorkflowID is the ID used to start seeding for a store. One seeding run
// per store can be in flight at a time.
func WorkflowID(storeID string) string {
	return "seed-store-roles-" + storeID
}

// SeedStoreRolesWorkflow inserts the store's missing system roles. The
// activity is idempotent, so retries are safe.
func SeedStoreRolesWorkflow(ctx workflow.Context, in SeedInput) (SeedResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{errTypeInvalidStore},
		},
	})

	var acts *Activities
	var res SeedResult
	if err := workflow.ExecuteActivity(ctx, acts.SeedStoreRoles, in).Get(ctx, &res); err != nil {
		return SeedResult{}, err
	}
	workflow.GetLogger(ctx).Info("store roles seeded", "store_id", in.StoreID, "inserted", res.Inserted, "shadowed", res.Shadowed)
	return res, nil
}

// Seeder is the part of RoleService the activity needs.
type Seeder interface {
	SeedDefaults(ctx context.Context, storeID string) (models.SeedOutcome, error)
}

var _ Seeder = (*appsvcs.RoleService)(nil)

// Activities holds the seeding activity.
type Activities struct {
	seeder Seeder
}

// NewActivities returns Activities backed by seeder.
func NewActivities(seeder Seeder) *Activities {
	return &Activities{seeder: seeder}
}

// SeedStoreRoles inserts the missing system roles. A malformed store ID
// fails without retry.
func (a *Activities) SeedStoreRoles(ctx context.Context, in SeedInput) (SeedResult, error) {
	out, err := a.seeder.SeedDefaults(ctx, in.StoreID)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return SeedResult{}, temporal.NewNonRetryableApplicationError(err.Error(), errTypeInvalidStore, err)
		}
		return SeedResult{}, err
	}
	return SeedResult{Inserted: out.Inserted, Shadowed: out.Shadowed}, nil
}

// Registrar registers the role workflows with a Temporal worker.
type Registrar struct {
	acts *Activities
}

// NewRegistrar returns a Registrar serving activities backed by seeder.
func NewRegistrar(seeder Seeder) *Registrar {
	return &Registrar{acts: NewActivities(seeder)}
}

// Register implements workflows.Registrar.
func (r *Registrar) Register(w worker.Registry) {
	w.RegisterWorkflow(SeedStoreRolesWorkflow)
	w.RegisterActivity(r.acts)
}
