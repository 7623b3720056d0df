// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrFormatNotFound  = errors.New("format not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrDuplicateFormat = errors.New("book already has a format of this type")
)

// CatalogService owns books, their formats, audiobook chapters and genres.
type CatalogService struct {
	db *gorm.DB
}

type CreateBookRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=255"`
	Author        string     `json:"author" validate:"required,min=1,max=255"`
	Description   string     `json:"description" validate:"max=10000"`
	Publisher     string     `json:"publisher" validate:"max=255"`
	ISBN          string     `json:"isbn" validate:"max=20"`
	SKU           string     `json:"sku" validate:"max=50"`
	Genre         string     `json:"genre" validate:"max=100"`
	CoverImageURL string     `json:"cover_image_url" validate:"omitempty,url"`
	PublishedDate *time.Time `json:"published_date"`
}

type UpdateBookRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Author        *string    `json:"author" validate:"omitempty,min=1,max=255"`
	Description   *string    `json:"description" validate:"omitempty,max=10000"`
	Publisher     *string    `json:"publisher" validate:"omitempty,max=255"`
	ISBN          *string    `json:"isbn" validate:"omitempty,max=20"`
	SKU           *string    `json:"sku" validate:"omitempty,max=50"`
	Genre         *string    `json:"genre" validate:"omitempty,max=100"`
	CoverImageURL *string    `json:"cover_image_url" validate:"omitempty,url"`
	PublishedDate *time.Time `json:"published_date"`
}

type CreateFormatRequest struct {
	FormatType    models.FormatType `json:"format_type" validate:"required,oneof=physical ebook audiobook"`
	Price         decimal.Decimal   `json:"price"`
	FileURL       string            `json:"file_url" validate:"omitempty,url"`
	FileFormat    string            `json:"file_format" validate:"max=20"`
	FileSize      int64             `json:"file_size" validate:"min=0"`
	StockQuantity *int              `json:"stock_quantity" validate:"omitempty,min=0"`
	IsAvailable   *bool             `json:"is_available"`
	LicenseInfo   string            `json:"license_info" validate:"max=10000"`
}

type UpdateFormatRequest struct {
	Price         *decimal.Decimal `json:"price"`
	FileURL       *string          `json:"file_url" validate:"omitempty,url"`
	FileFormat    *string          `json:"file_format" validate:"omitempty,max=20"`
	FileSize      *int64           `json:"file_size" validate:"omitempty,min=0"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	IsAvailable   *bool            `json:"is_available"`
	LicenseInfo   *string          `json:"license_info" validate:"omitempty,max=10000"`
}

type CreateChapterRequest struct {
	ChapterNumber   int    `json:"chapter_number" validate:"required,min=1"`
	ChapterTitle    string `json:"chapter_title" validate:"required,min=1,max=255"`
	FileURL         string `json:"file_url" validate:"required,url"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=0"`
}

type BookSearchParams struct {
	Query      string
	Genre      string
	FormatType string
	Pagination utils.PaginationParams
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListBooks serves both the storefront grid and the admin table. The free-text
// query matches title and author; genre and format narrow the result.
func (s *CatalogService) ListBooks(params BookSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Book{}).Preload("Formats")

	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", like, like)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}
	if params.FormatType != "" {
		query = query.Where(
			"id IN (?)",
			s.db.Model(&models.BookFormat{}).Select("book_id").Where("format_type = ?", params.FormatType),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	var books []models.Book
	query = utils.ApplySort(query, params.Pagination, []string{"title", "author", "genre", "created_at"})
	if err := utils.ApplyPagination(query, params.Pagination).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	result := utils.CreatePaginationResult(books, total, params.Pagination)
	return &result, nil
}

func (s *CatalogService) GetBook(id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := s.db.Preload("Formats").Preload("Formats.Chapters", func(db *gorm.DB) *gorm.DB {
		return db.Order("chapter_number ASC")
	}).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &book, nil
}

func (s *CatalogService) CreateBook(req *CreateBookRequest) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		SKU:           req.SKU,
		Genre:         req.Genre,
		CoverImageURL: req.CoverImageURL,
		PublishedDate: req.PublishedDate,
	}

	if err := s.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

func (s *CatalogService) UpdateBook(id uuid.UUID, req *UpdateBookRequest) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Publisher != nil {
		updates["publisher"] = *req.Publisher
	}
	if req.ISBN != nil {
		updates["isbn"] = *req.ISBN
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.PublishedDate != nil {
		updates["published_date"] = *req.PublishedDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(book).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
	}
	return s.GetBook(id)
}

// DeleteBook removes the book together with its formats and chapters. Orders
// keep their own snapshot of the book, so order history survives deletion.
func (s *CatalogService) DeleteBook(id uuid.UUID) error {
	book, err := s.GetBook(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range book.Formats {
			if err := tx.Where("format_id = ?", book.Formats[i].ID).Unscoped().Delete(&models.AudiobookChapter{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("book_id = ?", id).Unscoped().Delete(&models.BookFormat{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Book{}, "id = ?", id).Error
	})
}

// AddFormat attaches a format to a book. A book carries at most one format of
// each type, which the checkout guard for physical copies relies on.
func (s *CatalogService) AddFormat(bookID uuid.UUID, req *CreateFormatRequest) (*models.BookFormat, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.GetBook(bookID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.BookFormat{}).
		Where("book_id = ? AND format_type = ?", bookID, req.FormatType).
		Count(&count)
	if count > 0 {
		return nil, ErrDuplicateFormat
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	format := &models.BookFormat{
		BookID:        bookID,
		FormatType:    req.FormatType,
		Price:         req.Price,
		FileURL:       req.FileURL,
		FileFormat:    req.FileFormat,
		FileSize:      req.FileSize,
		StockQuantity: req.StockQuantity,
		IsAvailable:   available,
		LicenseInfo:   req.LicenseInfo,
	}

	if err := s.db.Create(format).Error; err != nil {
		return nil, fmt.Errorf("failed to create format: %w", err)
	}
	return format, nil
}

func (s *CatalogService) UpdateFormat(formatID uuid.UUID, req *UpdateFormatRequest) (*models.BookFormat, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var format models.BookFormat
	if err := s.db.First(&format, "id = ?", formatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormatNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.FileURL != nil {
		updates["file_url"] = *req.FileURL
	}
	if req.FileFormat != nil {
		updates["file_format"] = *req.FileFormat
	}
	if req.FileSize != nil {
		updates["file_size"] = *req.FileSize
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.LicenseInfo != nil {
		updates["license_info"] = *req.LicenseInfo
	}

	if len(updates) > 0 {
		if err := s.db.Model(&format).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update format: %w", err)
		}
	}
	return &format, nil
}

func (s *CatalogService) DeleteFormat(formatID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("format_id = ?", formatID).Unscoped().Delete(&models.AudiobookChapter{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.BookFormat{}, "id = ?", formatID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFormatNotFound
		}
		return nil
	})
}

// AddChapter appends a chapter to an audiobook format. Chapter numbers are
// unique per format.
func (s *CatalogService) AddChapter(formatID uuid.UUID, req *CreateChapterRequest) (*models.AudiobookChapter, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var format models.BookFormat
	if err := s.db.First(&format, "id = ?", formatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormatNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if format.FormatType != models.FormatTypeAudiobook {
		return nil, errors.New("chapters can only be added to audiobook formats")
	}

	chapter := &models.AudiobookChapter{
		FormatID:        formatID,
		ChapterNumber:   req.ChapterNumber,
		ChapterTitle:    req.ChapterTitle,
		FileURL:         req.FileURL,
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.db.Create(chapter).Error; err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}
	return chapter, nil
}

func (s *CatalogService) DeleteChapter(chapterID uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.AudiobookChapter{}, "id = ?", chapterID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChapterNotFound
	}
	return nil
}

func (s *CatalogService) ListGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := s.db.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}
	return genres, nil
}

func (s *CatalogService) CreateGenre(name, nameTamil string) (*models.Genre, error) {
	if name == "" {
		return nil, errors.New("genre name is required")
	}

	genre := &models.Genre{Name: name, NameTamil: nameTamil}
	if err := s.db.Create(genre).Error; err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

func (s *CatalogService) DeleteGenre(id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.Genre{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("genre not found")
	}
	return nil
}
