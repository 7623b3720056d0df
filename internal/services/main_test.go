// internal/services/main_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookloft/bookstore-backend/internal/config"
	"github.com/bookloft/bookstore-backend/internal/models"
)

// newTestDB opens a fresh in-memory database per test so cases never share
// state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.BookFormat{},
		&models.AudiobookChapter{},
		&models.Genre{},
		&models.Order{},
		&models.SiteSettings{},
		&models.Blog{},
		&models.BlogComment{},
		&models.PageContent{},
		&models.CarouselSlide{},
		&models.MenuSetting{},
		&models.UITranslation{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Shipping: config.ShippingConfig{
			HomeRegion:    "tamil nadu",
			InRegionCost:  decimal.NewFromInt(50),
			OutRegionCost: decimal.NewFromInt(100),
		},
		WhatsApp: config.WhatsAppConfig{
			Host:   "wa.me",
			Number: "+91 98765 43210",
		},
	}
}

// seedPhysicalBook creates a book with an available physical format.
func seedPhysicalBook(t *testing.T, db *gorm.DB, title, author string, price int64) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: author, Genre: "Fiction"}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	format := &models.BookFormat{
		BookID:      book.ID,
		FormatType:  models.FormatTypePhysical,
		Price:       decimal.NewFromInt(price),
		IsAvailable: true,
	}
	if err := db.Create(format).Error; err != nil {
		t.Fatalf("failed to seed format: %v", err)
	}

	book.Formats = []models.BookFormat{*format}
	return book
}

// seedEbookOnly creates a book with no physical format.
func seedEbookOnly(t *testing.T, db *gorm.DB, title, author string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: author}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	format := &models.BookFormat{
		BookID:      book.ID,
		FormatType:  models.FormatTypeEbook,
		Price:       decimal.NewFromInt(99),
		IsAvailable: true,
	}
	if err := db.Create(format).Error; err != nil {
		t.Fatalf("failed to seed format: %v", err)
	}

	return book
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validDetails() ShippingDetails {
	return ShippingDetails{
		CustomerName:     "Priya Raman",
		CustomerEmail:    "priya@example.com",
		CustomerPhone:    "+91 9876543210",
		CustomerWhatsApp: "+91 9876543210",
		ShippingAddress:  "12 Gandhi Street, Mylapore, Chennai",
		ShippingPincode:  "600004",
		ShippingState:    "Tamil Nadu",
	}
}
