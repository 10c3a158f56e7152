// internal/services/review_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readloop/bookreview-backend/internal/models"
)

func TestCreateReview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")
	book := createTestBook(t, db, "Reviewable Book")

	review, err := svc.CreateReview(user.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  4,
		Comment: "This book was a genuinely good read.",
	})
	require.NoError(t, err)
	assert.Equal(t, book.ID, review.BookID)
	assert.Equal(t, user.ID, review.UserID)
	assert.Equal(t, 4, review.Rating)
	require.NotNil(t, review.User)
	assert.Equal(t, "reviewer", review.User.Username)

	// Creation recomputes the book's aggregates in the same transaction.
	var got models.Book
	require.NoError(t, db.First(&got, "id = ?", book.ID).Error)
	assert.Equal(t, 4.0, got.AverageRating)
	assert.Equal(t, int64(1), got.TotalReviews)
}

func TestCreateReviewInvalidRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")
	book := createTestBook(t, db, "Reviewable Book")

	for _, rating := range []int{-1, 6, 100} {
		_, err := svc.CreateReview(user.ID, &CreateReviewRequest{
			BookID:  book.ID,
			Rating:  rating,
			Comment: "This comment is long enough to pass.",
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestCreateReviewShortComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")
	book := createTestBook(t, db, "Reviewable Book")

	_, err := svc.CreateReview(user.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  3,
		Comment: "too short",
	})
	assert.Error(t, err)
}

func TestCreateReviewUnknownBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")

	_, err := svc.CreateReview(user.ID, &CreateReviewRequest{
		BookID:  uuid.New(),
		Rating:  3,
		Comment: "This comment is long enough to pass.",
	})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCreateReviewDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")
	book := createTestBook(t, db, "Reviewable Book")

	_, err := svc.CreateReview(user.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  4,
		Comment: "This book was a genuinely good read.",
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(user.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  5,
		Comment: "Trying to sneak in a second opinion.",
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// A different user reviewing the same book is fine.
	other := createTestUser(t, db, "otherreviewer")
	_, err = svc.CreateReview(other.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  2,
		Comment: "A different take on the same book.",
	})
	assert.NoError(t, err)
}

func TestUpdateReview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")
	book := createTestBook(t, db, "Reviewable Book")
	review := createTestReview(t, db, book, user, 2)
	require.NoError(t, NewStatsService(db).RecomputeBookRating(book.ID))

	updated, err := svc.UpdateReview(review.ID, user.ID, &UpdateReviewRequest{
		Rating:  5,
		Comment: "Changed my mind on a second reading.",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Changed my mind on a second reading.", updated.Comment)

	var got models.Book
	require.NoError(t, db.First(&got, "id = ?", book.ID).Error)
	assert.Equal(t, 5.0, got.AverageRating)
	assert.Equal(t, int64(1), got.TotalReviews)
}

func TestUpdateReviewNotOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	book := createTestBook(t, db, "Reviewable Book")
	review := createTestReview(t, db, book, owner, 3)

	_, err := svc.UpdateReview(review.ID, intruder.ID, &UpdateReviewRequest{
		Rating:  1,
		Comment: "Attempting to vandalize this review.",
	})
	assert.ErrorIs(t, err, ErrNotReviewOwner)
}

func TestUpdateReviewNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "reviewer")

	_, err := svc.UpdateReview(uuid.New(), user.ID, &UpdateReviewRequest{
		Rating:  3,
		Comment: "This comment is long enough to pass.",
	})
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	stats := NewStatsService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db, "Reviewable Book")
	review := createTestReview(t, db, book, alice, 5)
	createTestReview(t, db, book, bob, 2)
	require.NoError(t, stats.RecomputeBookRating(book.ID))

	require.NoError(t, svc.DeleteReview(review.ID, alice.ID))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Deletion feeds back into the book's aggregates.
	var got models.Book
	require.NoError(t, db.First(&got, "id = ?", book.ID).Error)
	assert.Equal(t, 2.0, got.AverageRating)
	assert.Equal(t, int64(1), got.TotalReviews)

	// A user may review again after deleting their review.
	_, err := svc.CreateReview(alice.ID, &CreateReviewRequest{
		BookID:  book.ID,
		Rating:  3,
		Comment: "Giving this book a fresh assessment.",
	})
	assert.NoError(t, err)
}

func TestDeleteReviewNotOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	book := createTestBook(t, db, "Reviewable Book")
	review := createTestReview(t, db, book, owner, 3)

	err := svc.DeleteReview(review.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetBookReviewsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	book := createTestBook(t, db, "Reviewable Book")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	oldest := createTestReview(t, db, book, alice, 3)
	middle := createTestReview(t, db, book, bob, 4)
	newest := createTestReview(t, db, book, carol, 5)
	backdate(t, db, &models.Review{}, oldest.ID, 2*time.Hour)
	backdate(t, db, &models.Review{}, middle.ID, time.Hour)

	reviews, err := svc.GetBookReviews(book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, newest.ID, reviews[0].ID)
	assert.Equal(t, middle.ID, reviews[1].ID)
	assert.Equal(t, oldest.ID, reviews[2].ID)

	// Author username rides along for display.
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "carol", reviews[0].User.Username)
}

func TestGetBookReviewsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	book := createTestBook(t, db, "Lonely Book")

	reviews, err := svc.GetBookReviews(book.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
