// internal/handlers/book.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readloop/bookreview-backend/internal/services"
	"github.com/readloop/bookreview-backend/internal/utils"
)

type BookHandler struct {
	bookService    *services.BookService
	storageService *services.StorageService
}

func NewBookHandler(bookService *services.BookService, storageService *services.StorageService) *BookHandler {
	return &BookHandler{
		bookService:    bookService,
		storageService: storageService,
	}
}

// GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := services.BookSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Genre:            c.Query("genre"),
		Author:           c.Query("author"),
	}

	if featuredStr := c.Query("featured"); featuredStr != "" {
		if featured, err := strconv.ParseBool(featuredStr); err == nil {
			params.Featured = &featured
		}
	}

	books, total, err := h.bookService.ListBooks(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(books, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid book ID", nil)
		return
	}

	book, err := h.bookService.GetBook(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"book": book,
	})
}

// POST /books (admin only, enforced by middleware)
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	book, err := h.bookService.CreateBook(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Book created successfully",
		"book":    book,
	})
}

// GET /books/search?q=
func (h *BookHandler) SearchBooks(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.BadRequestResponse(c, "Search query is required", nil)
		return
	}

	books, err := h.bookService.SearchBooks(q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"books": books,
	})
}

// GET /books/genres
func (h *BookHandler) ListGenres(c *gin.Context) {
	genres, err := h.bookService.ListGenres()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"genres": genres,
	})
}

// POST /books/upload-cover (admin only, enforced by middleware)
func (h *BookHandler) UploadCover(c *gin.Context) {
	file, header, err := c.Request.FormFile("cover")
	if err != nil {
		utils.BadRequestResponse(c, "Cover image file is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadCover(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Cover uploaded successfully",
		"cover":   result,
	})
}
