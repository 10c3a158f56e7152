// internal/services/user_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/models"
	"github.com/readloop/bookreview-backend/internal/utils"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(db, NewStatsService(db))
}

func TestGetCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, "Read Book")
	createTestReview(t, db, book, user, 4)

	got, stats, err := svc.GetCurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader", got.Username)
	assert.Equal(t, int64(1), stats.TotalReviews)
	assert.Equal(t, 4.0, stats.AverageRating)

	_, _, err = svc.GetCurrentUser(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user := createTestUser(t, db, "prolific")

	// Twelve reviews across twelve books; the profile carries only the ten
	// most recent.
	var newestBook *models.Book
	for i := 0; i < 12; i++ {
		book := createTestBook(t, db, "Book "+strings.Repeat("I", i+1))
		review := createTestReview(t, db, book, user, 3)
		backdate(t, db, &models.Review{}, review.ID, time.Duration(12-i)*time.Hour)
		newestBook = book
	}

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "prolific", profile.User.Username)
	require.Len(t, profile.Reviews, 10)
	assert.Equal(t, int64(12), profile.Stats.TotalReviews)
	assert.Equal(t, int64(12), profile.Stats.UniqueBooksReviewed)

	// Newest first, with the book attached for title/author/cover display.
	require.NotNil(t, profile.Reviews[0].Book)
	assert.Equal(t, newestBook.ID, profile.Reviews[0].Book.ID)
}

func TestGetProfileNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user := createTestUser(t, db, "reader")

	_, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{
		Name: "  Jane Reader  ",
		Bio:  "I read a lot.",
	})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, "Jane Reader", got.Name)
	assert.Equal(t, "I read a lot.", got.Bio)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user := createTestUser(t, db, "reader")

	_, err := svc.UpdateProfile(user.ID, &UpdateProfileRequest{Name: "J"})
	assert.Error(t, err)

	_, err = svc.UpdateProfile(user.ID, &UpdateProfileRequest{
		Bio: strings.Repeat("x", 501),
	})
	assert.Error(t, err)
}

func TestGetUserReviewsPaginated(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "prolific")
	for i := 0; i < 5; i++ {
		book := createTestBook(t, db, "Book "+strings.Repeat("V", i+1))
		review := createTestReview(t, db, book, user, 4)
		backdate(t, db, &models.Review{}, review.ID, time.Duration(5-i)*time.Hour)
	}

	reviews, total, err := svc.GetUserReviews(user.ID, utils.PaginationParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, reviews, 3)
	require.NotNil(t, reviews[0].Book)

	reviews, total, err = svc.GetUserReviews(user.ID, utils.PaginationParams{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, reviews, 2)
}
