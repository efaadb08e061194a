package main

import (
	"github.com/spf13/cobra"

	"github.com/xorpse/sourcetrail"
)

var clearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Remove all recorded data from a project database",
	Long: `Clear deletes every recorded symbol, reference and source location
from the database while keeping the project settings intact.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath(args)

		db, err := sourcetrail.Open(cmd.Context(), path, false)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Clear(cmd.Context()); err != nil {
			return err
		}

		logger.WithField("path", db.Path()).Info("Cleared project database")
		return nil
	},
}
