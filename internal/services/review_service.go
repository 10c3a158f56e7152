// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/database"
	"github.com/readloop/bookreview-backend/internal/models"
	"github.com/readloop/bookreview-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	BookID  uuid.UUID `json:"bookId" validate:"required"`
	Rating  int       `json:"rating" validate:"required"`
	Comment string    `json:"comment" validate:"required,min=10"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"required,min=10"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview stores a new review and recomputes the book's aggregates in
// the same transaction. The composite unique index on (book_id, user_id) is
// the enforcement; the pre-check only gives a deterministic error without a
// needless insert attempt.
func (s *ReviewService) CreateReview(userID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var book models.Book
	if err := s.db.First(&book, "id = ?", req.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing int64
	if err := s.db.Model(&models.Review{}).
		Where("book_id = ? AND user_id = ?", req.BookID, userID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		BookID:  req.BookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeBookRating(tx, req.BookID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent creation.
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.db.Preload("User").First(review, "id = ?", review.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	return review, nil
}

// UpdateReview changes rating/comment on the caller's own review and
// recomputes the book's aggregates in the same transaction.
func (s *ReviewService) UpdateReview(id, userID uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  req.Rating,
			"comment": req.Comment,
		}).Error; err != nil {
			return err
		}
		return recomputeBookRating(tx, review.BookID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if err := s.db.Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	return &review, nil
}

// DeleteReview removes the caller's own review. The book's aggregates are
// recomputed in the same transaction so deletions are never left out of the
// average.
func (s *ReviewService) DeleteReview(id, userID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeBookRating(tx, review.BookID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

// GetBookReviews lists a book's reviews newest first with the author
// attached for username display.
func (s *ReviewService) GetBookReviews(bookID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// GetUserReviews lists a user's reviews newest first with book details
// attached, paginated.
func (s *ReviewService) GetUserReviews(userID uuid.UUID, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	if err := utils.ApplyPagination(query, params).
		Preload("Book").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}
