package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// reviewService implements ReviewService.
type reviewService struct {
	shops   ShopRepository
	reviews ReviewRepository
	opts    Options
}

// NewReviewService creates a new ReviewService.
func NewReviewService(shops ShopRepository, reviews ReviewRepository, opts Options) ReviewService {
	return &reviewService{shops: shops, reviews: reviews, opts: opts.withDefaults()}
}

// Create stores a review. Authenticated authors get a pre-check; the storage unique index
// is the final guard and its conflict surfaces as ErrDuplicateReview as well.
func (s *reviewService) Create(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error) {
	if !cmd.Author.Valid() {
		return nil, domain.ErrInvalidReview
	}
	if err := domain.ValidateRating(cmd.Rating); err != nil {
		return nil, err
	}
	text, err := domain.NormalizeReviewText(cmd.Text)
	if err != nil {
		return nil, err
	}

	shopID := strings.TrimSpace(cmd.ShopID)
	if _, err := s.shops.FindPublishedByID(ctx, shopID); err != nil {
		return nil, err
	}

	if userID, ok := cmd.Author.UserID(); ok {
		existing, err := s.UserReviewForShop(ctx, userID, shopID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateReview
		}
	}

	now := s.opts.Now().UTC()
	review := &domain.Review{
		ShopID:    shopID,
		Author:    cmd.Author,
		Rating:    cmd.Rating,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, reviewID, ownerID string, patch domain.ReviewPatch) (*domain.Review, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, domain.ErrNotFoundOrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.reviews.UpdateOwned(ctx, reviewID, ownerID, patch, s.opts.Now().UTC())
}

func (s *reviewService) Delete(ctx context.Context, reviewID, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return domain.ErrNotFoundOrUnauthorized
	}
	return s.reviews.DeleteOwned(ctx, reviewID, ownerID)
}

// UserReviewForShop returns nil without error when the user has not reviewed the shop.
func (s *reviewService) UserReviewForShop(ctx context.Context, userID, shopID string) (*domain.Review, error) {
	review, err := s.reviews.FindByUserAndShop(ctx, userID, shopID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}
