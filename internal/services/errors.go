// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map them to HTTP
// statuses; anything else is treated as a storage failure and reported as an
// opaque 500.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrReviewNotFound = errors.New("review not found")

	ErrNotReviewOwner  = errors.New("not authorized to modify this review")
	ErrDuplicateReview = errors.New("you have already reviewed this book")
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
)
