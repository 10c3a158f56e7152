// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readloop/bookreview-backend/internal/config"
	"github.com/readloop/bookreview-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error

	gormConfig := &gorm.Config{
		// Unique-key violations surface as gorm.ErrDuplicatedKey, which the
		// review service maps to the duplicate-review error.
		TranslateError: true,
	}
	if cfg.LogLevel == "silent" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedSampleBooks loads a small featured catalog when the books table is
// empty, so a fresh install has something to browse.
func SeedSampleBooks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding sample books...")

	books := []models.Book{
		{
			Title:       "The Midnight Library",
			Author:      "Matt Haig",
			Description: "Between life and death there is a library, and within that library, the shelves go on forever.",
			Genre:       models.StringList{"Fiction", "Fantasy"},
			Pages:       304,
			Featured:    true,
		},
		{
			Title:       "Project Hail Mary",
			Author:      "Andy Weir",
			Description: "A lone astronaut must save the earth from disaster in this cinematic thriller.",
			Genre:       models.StringList{"Fiction", "Science Fiction"},
			Pages:       496,
			Featured:    true,
		},
		{
			Title:       "The Thursday Murder Club",
			Author:      "Richard Osman",
			Description: "Four unlikely friends meet weekly to investigate unsolved killings.",
			Genre:       models.StringList{"Fiction", "Mystery"},
			Pages:       382,
			Featured:    true,
		},
		{
			Title:       "Klara and the Sun",
			Author:      "Kazuo Ishiguro",
			Description: "An Artificial Friend observes the world, hoping a customer will soon choose her.",
			Genre:       models.StringList{"Fiction", "Science Fiction"},
			Pages:       320,
			Featured:    true,
		},
		{
			Title:       "Circe",
			Author:      "Madeline Miller",
			Description: "The story of the goddess who transforms from an awkward nymph to a formidable witch.",
			Genre:       models.StringList{"Fiction", "Fantasy", "Mythology"},
			Pages:       393,
			Featured:    true,
		},
	}

	if err := db.Create(&books).Error; err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}

	log.Printf("Seeded %d sample books", len(books))
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
