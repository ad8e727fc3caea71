package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/ident"
	"github.com/ziplofy/storeconfig/pkg/workflows"
	roleServices "github.com/ziplofy/storeconfig/services/role/application/services"
	roleWorkflows "github.com/ziplofy/storeconfig/services/role/application/workflows"
	"github.com/ziplofy/storeconfig/services/role/domain/models"
)

func newSeedRolesCmd(c *cli) *cobra.Command {
	var storeID string
	cmd := &cobra.Command{
		Use:   "seed-roles",
		Short: "Create the Owner, Admin, Staff and Viewer roles of a store",
		Long: `Inserts the system roles a store is missing. Running it again is a no-op.

With TEMPORAL_ENABLED=true the seeding runs as a workflow on the worker's
task queue and this command waits for its result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := ident.ParseStore(storeID)
			if err != nil {
				return err
			}

			var out models.SeedOutcome
			if c.cfg.TemporalEnabled {
				out, err = c.seedViaWorkflow(cmd, id)
			} else {
				out, err = c.seedDirect(cmd, id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d role(s) for store %s\n", out.Inserted, id)
			if len(out.Shadowed) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "not created, a custom role already uses the name: %s\n", strings.Join(out.Shadowed, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&storeID, "store", "", "store ID to seed (required)")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

func (c *cli) seedDirect(cmd *cobra.Command, storeID string) (models.SeedOutcome, error) {
	db, err := database.New(cmd.Context(), c.cfg.DatabaseURL, c.log)
	if err != nil {
		return models.SeedOutcome{}, err
	}
	defer db.Close() //nolint:errcheck

	svcs := roleServices.New(&app.Application{Config: c.cfg, Db: db, Logger: c.log})
	return svcs.Role.SeedDefaults(cmd.Context(), storeID)
}

func (c *cli) seedViaWorkflow(cmd *cobra.Command, storeID string) (models.SeedOutcome, error) {
	ctx := cmd.Context()
	tc, err := workflows.NewTemporalClient(ctx, c.cfg, c.log)
	if err != nil {
		return models.SeedOutcome{}, err
	}
	defer tc.Close()

	run, err := tc.Start(ctx, roleWorkflows.WorkflowID(storeID), roleWorkflows.SeedStoreRolesWorkflow,
		roleWorkflows.SeedInput{StoreID: storeID})
	if err != nil {
		return models.SeedOutcome{}, err
	}

	var res roleWorkflows.SeedResult
	if err := run.Get(ctx, &res); err != nil {
		return models.SeedOutcome{}, fmt.Errorf("seed workflow %s: %w", run.GetID(), err)
	}
	return models.SeedOutcome{Inserted: res.Inserted, Shadowed: res.Shadowed}, nil
}
