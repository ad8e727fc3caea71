package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.temporal.io/sdk/testsuite"

	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/logger"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
	"github.com/ziplofy/storeconfig/services/role/infrastructure/persistence/memory"
)

func newEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *appsvcs.RoleService) {
	t.Helper()
	var s testsuite.WorkflowTestSuite
	env := s.NewTestWorkflowEnvironment()
	svc := appsvcs.NewRoleService(memory.NewRoleRepository(), nil, logger.Discard())
	env.RegisterWorkflow(SeedStoreRolesWorkflow)
	env.RegisterActivity(NewActivities(svc))
	return env, svc
}

func TestSeedStoreRolesWorkflow(t *testing.T) {
	env, svc := newEnv(t)
	storeID := ident.New()

	env.ExecuteWorkflow(SeedStoreRolesWorkflow, SeedInput{StoreID: storeID})
	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	var res SeedResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 4 {
		t.Errorf("inserted %d roles, want 4", res.Inserted)
	}

	roles, _ := svc.ListByStore(context.Background(), storeID)
	if len(roles) != 4 {
		t.Errorf("store has %d roles", len(roles))
	}
}

func TestSeedStoreRolesWorkflow_ReportsShadowedNames(t *testing.T) {
	env, svc := newEnv(t)
	storeID := ident.New()
	if _, err := svc.Create(context.Background(), storeID, "admin", "", nil); err != nil {
		t.Fatal(err)
	}

	env.ExecuteWorkflow(SeedStoreRolesWorkflow, SeedInput{StoreID: storeID})
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	var res SeedResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(SeedResult{Inserted: 3, Shadowed: []string{"Admin"}}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedStoreRolesWorkflow_InvalidStoreNotRetried(t *testing.T) {
	env, _ := newEnv(t)
	env.ExecuteWorkflow(SeedStoreRolesWorkflow, SeedInput{StoreID: "not-a-store"})
	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected workflow error for malformed store id")
	}
}

type flakySeeder struct{ calls int }

func (f *flakySeeder) SeedDefaults(context.Context, string) (models.SeedOutcome, error) {
	f.calls++
	if f.calls < 3 {
		return models.SeedOutcome{}, errors.New("connection reset")
	}
	return models.SeedOutcome{Inserted: 2}, nil
}

func TestSeedStoreRolesWorkflow_RetriesTransientErrors(t *testing.T) {
	var s testsuite.WorkflowTestSuite
	env := s.NewTestWorkflowEnvironment()
	seeder := &flakySeeder{}
	env.RegisterWorkflow(SeedStoreRolesWorkflow)
	env.RegisterActivity(NewActivities(seeder))

	env.ExecuteWorkflow(SeedStoreRolesWorkflow, SeedInput{StoreID: ident.New()})
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	if seeder.calls != 3 {
		t.Errorf("activity ran %d times, want 3", seeder.calls)
	}
}

func TestWorkflowID(t *testing.T) {
	if got := WorkflowID("abc"); got != "seed-store-roles-abc" {
		t.Errorf("WorkflowID = %q", got)
	}
}
