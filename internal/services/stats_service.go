// internal/services/stats_service.go
package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/models"
)

// StatsService derives per-user and per-book review aggregates. User stats
// are computed on demand and never persisted; book aggregates are written
// back onto the Book row by RecomputeBookRating.
type StatsService struct {
	db *gorm.DB
}

type UserStats struct {
	TotalReviews        int64   `json:"totalReviews"`
	UniqueBooksReviewed int64   `json:"uniqueBooksReviewed"`
	AverageRating       float64 `json:"averageRating"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RoundRating rounds to one decimal place, half up. Displayed and persisted
// ratings always go through this; values are never truncated.
func RoundRating(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ComputeUserStats returns all-zero stats for a user with no reviews,
// including unknown user ids.
func (s *StatsService) ComputeUserStats(userID uuid.UUID) (*UserStats, error) {
	stats := &UserStats{}

	if err := s.db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	if stats.TotalReviews == 0 {
		return stats, nil
	}

	if err := s.db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Distinct("book_id").
		Count(&stats.UniqueBooksReviewed).Error; err != nil {
		return nil, fmt.Errorf("failed to count distinct books: %w", err)
	}

	var avg float64
	if err := s.db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	stats.AverageRating = RoundRating(avg)

	return stats, nil
}

// RecomputeBookRating recomputes and persists the book's averageRating and
// totalReviews from its current reviews. Idempotent: recomputing twice from
// the same review set yields the same result.
func (s *StatsService) RecomputeBookRating(bookID uuid.UUID) error {
	return recomputeBookRating(s.db, bookID)
}

// recomputeBookRating runs against the given handle so review mutations can
// invoke it inside their own transaction.
func recomputeBookRating(db *gorm.DB, bookID uuid.UUID) error {
	var agg struct {
		Total     int64
		RatingSum float64
	}

	if err := db.Model(&models.Review{}).
		Where("book_id = ?", bookID).
		Select("COUNT(*) AS total, COALESCE(SUM(rating), 0) AS rating_sum").
		Scan(&agg).Error; err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	average := 0.0
	if agg.Total > 0 {
		average = RoundRating(agg.RatingSum / float64(agg.Total))
	}

	if err := db.Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  agg.Total,
		}).Error; err != nil {
		return fmt.Errorf("failed to update book rating: %w", err)
	}

	return nil
}
