// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

// Review holds a single user's rating and comment for a book. The composite
// unique index enforces at most one review per (book, user) pair at the
// storage layer, so concurrent creations cannot both succeed.
type Review struct {
	BaseModel
	BookID  uuid.UUID `json:"bookId" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_book_user"`
	UserID  uuid.UUID `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_book_user"`
	Rating  int       `json:"rating" gorm:"not null"`
	Comment string    `json:"comment" gorm:"type:text;not null"`

	// Relationships
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
