package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/doner-finder/api/internal/config"
	mongodoc "github.com/sngm3741/doner-finder/api/internal/infrastructure/mongo"
)

var storage config.Storage

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Operator tasks for the döner finder database",
	Long:  "Creates MongoDB indexes and loads demo fixtures for local development.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		config.LoadDotEnv()
		storage = config.StorageFromEnv()
		if v, _ := cmd.Flags().GetString("mongo-uri"); v != "" {
			storage.MongoURI = v
		}
		if v, _ := cmd.Flags().GetString("db"); v != "" {
			storage.MongoDatabase = v
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("mongo-uri", "", "MongoDB URI (overrides MONGO_URI)")
	rootCmd.PersistentFlags().String("db", "", "Database name (overrides MONGO_DB)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func collections() mongodoc.Collections {
	return mongodoc.Collections{
		Shops:     storage.ShopCollection,
		Reviews:   storage.ReviewCollection,
		Favorites: storage.FavoriteCollection,
	}
}

// connect opens a client and returns the configured database. Callers disconnect the client.
func connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, storage.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(storage.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("MongoDB 接続に失敗: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB ping に失敗: %w", err)
	}
	return client, client.Database(storage.MongoDatabase), nil
}
