package main

import (
	"github.com/spf13/cobra"

	"github.com/xorpse/sourcetrail"
)

var createCmd = &cobra.Command{
	Use:   "create [path]",
	Short: "Create a new project database",
	Long: `Create initializes an empty Sourcetrail project database and its
.srctrlprj project file. It refuses to overwrite an existing database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath(args)

		db, err := sourcetrail.Create(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.WithField("path", db.Path()).Info("Created project database")
		return nil
	},
}
