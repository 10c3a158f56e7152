// internal/services/book_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/models"
	"github.com/readloop/bookreview-backend/internal/utils"
)

type BookService struct {
	db *gorm.DB
}

type CreateBookRequest struct {
	Title           string     `json:"title" validate:"required,min=1,max=255"`
	Author          string     `json:"author" validate:"required,min=1,max=255"`
	Description     string     `json:"description,omitempty"`
	ISBN            string     `json:"isbn,omitempty" validate:"omitempty,max=20"`
	CoverImage      string     `json:"coverImage,omitempty" validate:"omitempty,url"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	Genre           []string   `json:"genre,omitempty"`
	Pages           int        `json:"pages,omitempty" validate:"omitempty,min=1"`
	Language        string     `json:"language,omitempty" validate:"omitempty,max=50"`
	Featured        bool       `json:"featured,omitempty"`
}

// BookSearchParams combine with logical AND. Search and Author are
// case-insensitive substring matches; Genre is an exact element match
// against the book's genre set; Featured is an exact match.
type BookSearchParams struct {
	utils.PaginationParams
	Genre    string `json:"genre,omitempty"`
	Author   string `json:"author,omitempty"`
	Featured *bool  `json:"featured,omitempty"`
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

func (s *BookService) ListBooks(params BookSearchParams) ([]models.Book, int64, error) {
	query := s.db.Model(&models.Book{})

	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like,
		)
	}
	if params.Genre != "" {
		// Genre is stored as a JSON array, so a quoted LIKE is an exact
		// element match rather than a substring match.
		query = query.Where("genre LIKE ?", `%"`+params.Genre+`"%`)
	}
	if params.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(params.Author)+"%")
	}
	if params.Featured != nil {
		query = query.Where("featured = ?", *params.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	var books []models.Book
	if err := utils.ApplyPagination(query, params.PaginationParams).
		Order("created_at DESC").
		Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch books: %w", err)
	}

	return books, total, nil
}

func (s *BookService) GetBook(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &book, nil
}

func (s *BookService) CreateBook(req *CreateBookRequest) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "English"
	}

	book := &models.Book{
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		ISBN:            req.ISBN,
		CoverImage:      req.CoverImage,
		PublicationDate: req.PublicationDate,
		Genre:           models.StringList(req.Genre),
		Pages:           req.Pages,
		Language:        language,
		Featured:        req.Featured,
	}

	if err := s.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// SearchBooks is the free-text endpoint behind /books/search. Capped at 20
// results, matching the behavior the client expects.
func (s *BookService) SearchBooks(q string) ([]models.Book, error) {
	like := "%" + strings.ToLower(q) + "%"

	var books []models.Book
	if err := s.db.
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(20).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	return books, nil
}

// ListGenres returns the distinct non-empty genre values across the catalog,
// sorted. Genre lists are JSON-encoded in a text column, so the set is
// assembled here rather than with a DISTINCT query.
func (s *BookService) ListGenres() ([]string, error) {
	var lists []models.StringList
	if err := s.db.Model(&models.Book{}).Pluck("genre", &lists).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	seen := make(map[string]struct{})
	var genres []string
	for _, list := range lists {
		for _, genre := range list {
			if genre == "" {
				continue
			}
			if _, ok := seen[genre]; !ok {
				seen[genre] = struct{}{}
				genres = append(genres, genre)
			}
		}
	}

	sort.Strings(genres)
	return genres, nil
}
