package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/trialbook_backend/internal/repo/postgres"
	"github.com/Alijeyrad/trialbook_backend/pkg/database"
)

func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo slots, users and FAQs into Postgres",
		Long: `Load the demo booking slots, participants and frequently asked questions.

Rows that already exist are left untouched, so the command is safe to re-run.
Run "system migrate" first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
			defer cancel()

			pool, err := database.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Seed(ctx, pool, time.Now().UTC()); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			fmt.Println("Demo data loaded.")
			return nil
		},
	}
}
