package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinRating and MaxRating bound a review rating.
	MinRating = 1
	MaxRating = 5
	// MaxReviewTextRunes bounds review text length.
	MaxReviewTextRunes = 2000
)

// Review is a rating with optional text for one shop.
type Review struct {
	ID        string
	ShopID    string
	Author    Author
	Rating    int
	Text      string
	IsEdited  bool
	EditedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewPatch carries the mutable review fields; nil fields stay unchanged.
type ReviewPatch struct {
	Rating *int
	Text   *string
}

type authorKind int

const (
	authorUnknown authorKind = iota
	authorAuthenticated
	authorAnonymous
)

// Author identifies who wrote a review: either an authenticated user or an anonymous fingerprint.
type Author struct {
	kind  authorKind
	value string
}

// AuthenticatedAuthor builds an author backed by a user id.
func AuthenticatedAuthor(userID string) Author {
	return Author{kind: authorAuthenticated, value: strings.TrimSpace(userID)}
}

// AnonymousAuthor builds an author backed by a client fingerprint hash.
func AnonymousAuthor(fingerprint string) Author {
	return Author{kind: authorAnonymous, value: strings.TrimSpace(fingerprint)}
}

// UserID returns the user id for authenticated authors.
func (a Author) UserID() (string, bool) {
	return a.value, a.kind == authorAuthenticated
}

// Fingerprint returns the hash for anonymous authors.
func (a Author) Fingerprint() (string, bool) {
	return a.value, a.kind == authorAnonymous
}

// IsAuthenticated reports whether the author is a signed-in user.
func (a Author) IsAuthenticated() bool {
	return a.kind == authorAuthenticated
}

// Valid reports whether the author carries a non-empty identity.
func (a Author) Valid() bool {
	return a.kind != authorUnknown && a.value != ""
}

// ValidateRating checks the 1..5 range.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidReview
	}
	return nil
}

// NormalizeReviewText trims and bounds review text.
func NormalizeReviewText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) > MaxReviewTextRunes {
		return "", ErrInvalidReview
	}
	return trimmed, nil
}

// Validate normalizes the patch in place and rejects empty or out-of-range patches.
func (p *ReviewPatch) Validate() error {
	if p.Rating == nil && p.Text == nil {
		return ErrInvalidReview
	}
	if p.Rating != nil {
		if err := ValidateRating(*p.Rating); err != nil {
			return err
		}
	}
	if p.Text != nil {
		text, err := NormalizeReviewText(*p.Text)
		if err != nil {
			return err
		}
		p.Text = &text
	}
	return nil
}
