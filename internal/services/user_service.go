// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/models"
	"github.com/readloop/bookreview-backend/internal/utils"
)

type UserService struct {
	db    *gorm.DB
	stats *StatsService
}

type UpdateProfileRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio  string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// UserProfile is the public profile view: the user, their most recent
// reviews with book details, and derived stats.
type UserProfile struct {
	User    *models.User    `json:"user"`
	Reviews []models.Review `json:"reviews"`
	Stats   *UserStats      `json:"stats"`
}

const profileRecentReviews = 10

func NewUserService(db *gorm.DB, stats *StatsService) *UserService {
	return &UserService{db: db, stats: stats}
}

// GetCurrentUser returns the authenticated user together with their stats.
func (s *UserService) GetCurrentUser(userID uuid.UUID) (*models.User, *UserStats, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.stats.ComputeUserStats(userID)
	if err != nil {
		return nil, nil, err
	}

	return user, stats, nil
}

// GetProfile is the public profile for any user id.
func (s *UserService) GetProfile(userID uuid.UUID) (*UserProfile, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(profileRecentReviews).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	stats, err := s.stats.ComputeUserStats(userID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:    user,
		Reviews: reviews,
		Stats:   stats,
	}, nil
}

// UpdateProfile changes the display name and bio of the authenticated user.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	// Only supplied fields change; an omitted field keeps its value.
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return user, nil
}

func (s *UserService) findUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
