package domain

import "errors"

var (
	// ErrNotFound is returned when a shop, review or photo does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotFoundOrUnauthorized covers review mutations on missing or foreign reviews alike.
	ErrNotFoundOrUnauthorized = errors.New("review not found or not owned by requester")
	// ErrDuplicateReview is returned when an authenticated user already reviewed the shop.
	ErrDuplicateReview = errors.New("user already reviewed this shop")
	// ErrInvalidFilter is returned for filter input that cannot be coerced.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidReview is returned for out-of-range ratings or oversized text.
	ErrInvalidReview = errors.New("invalid review")
)
