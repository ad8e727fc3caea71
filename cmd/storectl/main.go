// Command storectl runs operational tasks against the store configuration
// database: schema migrations, system role seeding and development tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(config.LoadFromEnv).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

// newRootCmd builds the command tree. load supplies the configuration once
// a subcommand is about to run.
func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Operate the store configuration service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(c),
		newSeedRolesCmd(c),
		newTokenCmd(c),
	)
	return root
}
