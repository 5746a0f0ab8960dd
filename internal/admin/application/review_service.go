package application

import (
	"context"

	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

type reviewModerationService struct {
	shops   ShopRepository
	reviews ReviewRepository
}

func NewReviewModerationService(shops ShopRepository, reviews ReviewRepository) ReviewModerationService {
	return &reviewModerationService{shops: shops, reviews: reviews}
}

func (s *reviewModerationService) ListForShop(ctx context.Context, shopID string) ([]publicdomain.Review, error) {
	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.reviews.ListForShop(ctx, shopID)
}

// Delete removes any review regardless of author.
func (s *reviewModerationService) Delete(ctx context.Context, reviewID string) error {
	return s.reviews.Delete(ctx, reviewID)
}
