// internal/services/book_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/models"
	"github.com/readloop/bookreview-backend/internal/utils"
)

func seedCatalog(t *testing.T, db *gorm.DB) (dune, emma, gatsby *models.Book) {
	t.Helper()

	dune = createTestBook(t, db, "Dune", func(b *models.Book) {
		b.Author = "Frank Herbert"
		b.Description = "Desert planet politics"
		b.Genre = models.StringList{"Science Fiction", "Adventure"}
		b.Featured = true
	})
	emma = createTestBook(t, db, "Emma", func(b *models.Book) {
		b.Author = "Jane Austen"
		b.Description = "A novel of manners"
		b.Genre = models.StringList{"Romance", "Fiction"}
	})
	gatsby = createTestBook(t, db, "The Great Gatsby", func(b *models.Book) {
		b.Author = "F. Scott Fitzgerald"
		b.Description = "Jazz age tragedy"
		b.Genre = models.StringList{"Fiction"}
		b.Featured = true
	})

	backdate(t, db, &models.Book{}, dune.ID, 3*time.Hour)
	backdate(t, db, &models.Book{}, emma.ID, 2*time.Hour)
	backdate(t, db, &models.Book{}, gatsby.ID, time.Hour)

	return dune, emma, gatsby
}

func TestListBooksNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	dune, emma, gatsby := seedCatalog(t, db)

	books, total, err := svc.ListBooks(BookSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 3)
	assert.Equal(t, gatsby.ID, books[0].ID)
	assert.Equal(t, emma.ID, books[1].ID)
	assert.Equal(t, dune.ID, books[2].ID)
}

func TestListBooksSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	dune, _, _ := seedCatalog(t, db)

	// Case-insensitive, matches title, author, or description.
	for _, q := range []string{"dune", "herbert", "DESERT"} {
		books, total, err := svc.ListBooks(BookSearchParams{
			PaginationParams: utils.PaginationParams{Search: q},
		})
		require.NoError(t, err, "query %q", q)
		require.Equal(t, int64(1), total, "query %q", q)
		assert.Equal(t, dune.ID, books[0].ID, "query %q", q)
	}
}

func TestListBooksGenreExactMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	_, emma, gatsby := seedCatalog(t, db)

	books, total, err := svc.ListBooks(BookSearchParams{Genre: "Fiction"})
	require.NoError(t, err)
	// "Fiction" must not match "Science Fiction".
	assert.Equal(t, int64(2), total)
	ids := []uuid.UUID{books[0].ID, books[1].ID}
	assert.Contains(t, ids, emma.ID)
	assert.Contains(t, ids, gatsby.ID)
}

func TestListBooksFeatured(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	seedCatalog(t, db)

	featured := true
	books, total, err := svc.ListBooks(BookSearchParams{Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, b := range books {
		assert.True(t, b.Featured)
	}

	notFeatured := false
	_, total, err = svc.ListBooks(BookSearchParams{Featured: &notFeatured})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestListBooksFiltersCombineWithAND(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	_, _, gatsby := seedCatalog(t, db)

	featured := true
	books, total, err := svc.ListBooks(BookSearchParams{
		Genre:    "Fiction",
		Featured: &featured,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, gatsby.ID, books[0].ID)

	// A filter combination no book satisfies yields an empty page, not an
	// error.
	books, total, err = svc.ListBooks(BookSearchParams{
		Genre:  "Romance",
		Author: "Herbert",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, books)
}

func TestListBooksPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	seedCatalog(t, db)

	books, total, err := svc.ListBooks(BookSearchParams{
		PaginationParams: utils.PaginationParams{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, books, 1)
}

func TestGetBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	dune, _, _ := seedCatalog(t, db)

	book, err := svc.GetBook(dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = svc.GetBook(uuid.New())
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCreateBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	book, err := svc.CreateBook(&CreateBookRequest{
		Title:  "New Arrival",
		Author: "Somebody New",
		Genre:  []string{"Mystery"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, "English", book.Language)
	assert.Equal(t, 0.0, book.AverageRating)
	assert.Equal(t, int64(0), book.TotalReviews)

	_, err = svc.CreateBook(&CreateBookRequest{Author: "No Title"})
	assert.Error(t, err)
}

func TestSearchBooks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	seedCatalog(t, db)

	books, err := svc.SearchBooks("gatsby")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Great Gatsby", books[0].Title)

	books, err = svc.SearchBooks("no such book anywhere")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestListGenres(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookService(db)

	seedCatalog(t, db)

	genres, err := svc.ListGenres()
	require.NoError(t, err)
	// Deduplicated and sorted.
	assert.Equal(t, []string{"Adventure", "Fiction", "Romance", "Science Fiction"}, genres)
}
