// internal/services/services_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readloop/bookreview-backend/internal/config"
	"github.com/readloop/bookreview-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey: "test-secret",
			TokenTTL:  168,
		},
		Admin: config.AdminConfig{
			RegistrationCode: "letmein",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, title string, mutate ...func(*models.Book)) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:  title,
		Author: "Test Author",
		Genre:  models.StringList{"Fiction"},
	}
	for _, fn := range mutate {
		fn(book)
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestReview(t *testing.T, db *gorm.DB, book *models.Book, user *models.User, rating int) *models.Review {
	t.Helper()

	review := &models.Review{
		BookID:  book.ID,
		UserID:  user.ID,
		Rating:  rating,
		Comment: "A sufficiently long test comment.",
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

// backdate shifts a row's created_at so ordering tests do not depend on
// sub-millisecond timestamp resolution.
func backdate(t *testing.T, db *gorm.DB, model interface{}, id interface{}, ago time.Duration) {
	t.Helper()

	require.NoError(t, db.Model(model).
		Where("id = ?", id).
		Update("created_at", time.Now().Add(-ago)).Error)
}
