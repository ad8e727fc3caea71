package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziplofy/storeconfig/migrations"
	"github.com/ziplofy/storeconfig/pkg/migrator"
)

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := migrator.Up(cmd.Context(), c.cfg.DatabaseURL, migrations.FS); err != nil {
				return err
			}
			c.log.Info("migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			if err := migrator.Down(cmd.Context(), c.cfg.DatabaseURL, migrations.FS, steps); err != nil {
				return err
			}
			c.log.Info("migrations rolled back", "steps", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := migrator.Version(cmd.Context(), c.cfg.DatabaseURL, migrations.FS)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.AddCommand(down, version)
	return cmd
}
