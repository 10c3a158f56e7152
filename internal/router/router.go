// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/readloop/bookreview-backend/internal/config"
	"github.com/readloop/bookreview-backend/internal/handlers"
	"github.com/readloop/bookreview-backend/internal/middleware"
	"github.com/readloop/bookreview-backend/internal/services"
	"github.com/readloop/bookreview-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	statsService := services.NewStatsService(db)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	bookService := services.NewBookService(db)
	reviewService := services.NewReviewService(db)
	userService := services.NewUserService(db, statsService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(bookService, storageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService, reviewService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Book routes
	books := r.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.GET("/search", bookHandler.SearchBooks)
		books.GET("/genres", bookHandler.ListGenres)
		books.GET("/:id", bookHandler.GetBook)
		books.POST("", middleware.AuthRequired(), middleware.AdminRequired(), bookHandler.CreateBook)
		books.POST("/upload-cover",
			middleware.AuthRequired(),
			middleware.AdminRequired(),
			middleware.UploadRateLimit(),
			bookHandler.UploadCover)
	}

	// Review routes
	reviews := r.Group("/reviews")
	{
		reviews.GET("/book/:bookId", reviewHandler.GetBookReviews)
		reviews.POST("", middleware.AuthRequired(), reviewHandler.CreateReview)
		reviews.PUT("/:id", middleware.AuthRequired(), reviewHandler.UpdateReview)
		reviews.DELETE("/:id", middleware.AuthRequired(), reviewHandler.DeleteReview)
	}

	// User routes
	users := r.Group("/users")
	{
		users.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
		users.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		users.GET("/me", middleware.AuthRequired(), userHandler.GetCurrentUser)
		users.PUT("/me", middleware.AuthRequired(), userHandler.UpdateProfile)
		users.GET("/profile/:id", userHandler.GetProfile)
		users.GET("/profile/:id/reviews", userHandler.GetUserReviews)
	}

	return r
}
