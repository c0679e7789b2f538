package main

import (
	"github.com/spf13/cobra"

	"github.com/fertitrack/fertitrack/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Info("schema up to date")
			return database.Close(db)
		},
	}
}
