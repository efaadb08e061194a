package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xorpse/sourcetrail"
	"github.com/xorpse/sourcetrail/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show row counts for a project database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath(args)

		if !sourcetrail.Exists(path) {
			return fmt.Errorf("no database at %s", path)
		}

		db, err := sourcetrail.Open(cmd.Context(), path, false)
		if err != nil {
			return err
		}
		defer db.Close()

		store, ok := db.Store().(*storage.SQLiteStore)
		if !ok {
			return fmt.Errorf("unsupported backend for stats")
		}

		counts, err := store.Counts(cmd.Context())
		if err != nil {
			return err
		}

		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)

		for _, table := range tables {
			fmt.Printf("%-18s %d\n", table, counts[table])
		}
		return nil
	},
}
