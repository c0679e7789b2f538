package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fertitrack/fertitrack/internal/database"
	"github.com/fertitrack/fertitrack/internal/seed"
	"github.com/fertitrack/fertitrack/internal/store"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo user, articles and recommendations",
		Long: `Load a demo user, the article library and sample recommendations.
Safe to run repeatedly; existing rows are left as they are.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close(db)

			res, err := seed.Demo(cmd.Context(), store.New(db))
			if err != nil {
				return err
			}
			a.log.Info("seeded",
				zap.Int64("user_id", res.User.ID),
				zap.String("email", res.User.Email),
				zap.Int("articles", res.Articles),
				zap.Int64("recommendations", res.Recommendations),
			)
			return nil
		},
	}
}
