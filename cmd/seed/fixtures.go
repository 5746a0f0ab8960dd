package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
	mongodoc "github.com/sngm3741/doner-finder/api/internal/infrastructure/mongo"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Load demo shops and reviews for Freiberg and Chemnitz",
	RunE:  runFixtures,
}

func init() {
	fixturesCmd.Flags().Bool("drop", false, "Drop shop, review and favorite collections first")
	fixturesCmd.Flags().Bool("publish", true, "Publish the created shops")
	rootCmd.AddCommand(fixturesCmd)
}

func runFixtures(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	drop, _ := cmd.Flags().GetBool("drop")
	publish, _ := cmd.Flags().GetBool("publish")

	client, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	cols := collections()
	if drop {
		for _, name := range []string{cols.Shops, cols.Reviews, cols.Favorites} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
			}
		}
	}
	if err := mongodoc.EnsureIndexes(ctx, db, cols); err != nil {
		return err
	}

	reviewRepo := mongodoc.NewReviewRepository(db, cols.Reviews)
	favoriteRepo := mongodoc.NewFavoriteRepository(db, cols.Favorites)
	shopRepo := mongodoc.NewShopRepository(db, cols.Shops, cols.Reviews)
	adminShops := adminapp.NewShopService(mongodoc.NewAdminShopRepository(db, cols.Shops, reviewRepo, favoriteRepo), nil)
	reviews := publicapp.NewReviewService(shopRepo, reviewRepo, publicapp.Options{})

	for _, fx := range demoShops() {
		shop, err := adminShops.Create(ctx, fx.shop)
		if err != nil {
			return fmt.Errorf("create %q: %w", fx.shop.Name, err)
		}
		if _, err := adminShops.ReplaceOpeningHours(ctx, shop.ID, fx.hours); err != nil {
			return fmt.Errorf("hours %q: %w", shop.Slug, err)
		}
		for _, photo := range fx.photos {
			if _, err := adminShops.AddPhoto(ctx, shop.ID, photo); err != nil {
				return fmt.Errorf("photo %q: %w", shop.Slug, err)
			}
		}
		if !publish {
			log.Printf("created %s (unpublished)", shop.Slug)
			continue
		}
		if _, err := adminShops.SetPublished(ctx, shop.ID, true); err != nil {
			return fmt.Errorf("publish %q: %w", shop.Slug, err)
		}
		for i, r := range fx.reviews {
			author := domain.AnonymousAuthor(fmt.Sprintf("seed-%s-%d", shop.Slug, i))
			if r.userID != "" {
				author = domain.AuthenticatedAuthor(r.userID)
			}
			if _, err := reviews.Create(ctx, publicapp.CreateReviewCommand{
				ShopID: shop.ID,
				Rating: r.rating,
				Text:   r.text,
				Author: author,
			}); err != nil {
				return fmt.Errorf("review for %q: %w", shop.Slug, err)
			}
		}
		log.Printf("created %s with %d reviews", shop.Slug, len(fx.reviews))
	}
	return nil
}
