package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	mongodoc "github.com/sngm3741/doner-finder/api/internal/infrastructure/mongo"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create unique and query indexes",
	RunE:  runIndexes,
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongodoc.EnsureIndexes(ctx, db, collections()); err != nil {
		return err
	}
	log.Printf("indexes ready on %s", storage.MongoDatabase)
	return nil
}
