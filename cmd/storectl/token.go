package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziplofy/storeconfig/pkg/auth"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		userID string
		stores []string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.IsProduction() {
				return fmt.Errorf("token minting is disabled in production")
			}
			raw, err := auth.NewTokens(c.cfg.JWTSecret, c.cfg.JWTTokenTTL).Issue(userID, stores)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user ID placed in the sub claim (required)")
	cmd.Flags().StringSliceVar(&stores, "store", nil, "store IDs the token is scoped to")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
