// internal/models/book.go
package models

import (
	"time"
)

type Book struct {
	BaseModel
	Title           string     `json:"title" gorm:"size:255;not null"`
	Author          string     `json:"author" gorm:"size:255;not null;index"`
	Description     string     `json:"description" gorm:"type:text"`
	ISBN            string     `json:"isbn" gorm:"size:20"`
	CoverImage      string     `json:"coverImage" gorm:"size:512"`
	PublicationDate *time.Time `json:"publicationDate"`
	Genre           StringList `json:"genre" gorm:"type:text"`
	Pages           int        `json:"pages" gorm:"default:0"`
	Language        string     `json:"language" gorm:"size:50;default:'English'"`
	Featured        bool       `json:"featured" gorm:"default:false;index"`

	// Derived from reviews, maintained by rating recomputation only.
	AverageRating float64 `json:"averageRating" gorm:"type:decimal(3,1);default:0"`
	TotalReviews  int64   `json:"totalReviews" gorm:"default:0"`

	// Relationships
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:BookID"`
}
