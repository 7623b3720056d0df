// internal/models/book.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Book struct {
	BaseModel
	Title         string     `json:"title" gorm:"size:255;not null;index"`
	Author        string     `json:"author" gorm:"size:255;not null;index"`
	Description   string     `json:"description" gorm:"type:text"`
	Publisher     string     `json:"publisher" gorm:"size:255"`
	ISBN          string     `json:"isbn,omitempty" gorm:"size:20"`
	SKU           string     `json:"sku,omitempty" gorm:"size:50"`
	Genre         string     `json:"genre,omitempty" gorm:"size:100;index"`
	CoverImageURL string     `json:"cover_image_url" gorm:"size:1024"`
	PublishedDate *time.Time `json:"published_date,omitempty" gorm:"type:date"`

	// Relationships
	Formats []BookFormat `json:"formats,omitempty" gorm:"foreignKey:BookID"`
}

// PhysicalFormat returns the purchasable physical format, if the book has one.
// A book carries at most one physical format; its price drives checkout.
func (b *Book) PhysicalFormat() *BookFormat {
	for i := range b.Formats {
		if b.Formats[i].FormatType == FormatTypePhysical {
			return &b.Formats[i]
		}
	}
	return nil
}

type BookFormat struct {
	BaseModel
	BookID        uuid.UUID       `json:"book_id" gorm:"type:uuid;not null;index"`
	FormatType    FormatType      `json:"format_type" gorm:"type:varchar(20);not null;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);default:0"`
	FileURL       string          `json:"file_url,omitempty" gorm:"size:1024"`
	FileFormat    string          `json:"file_format,omitempty" gorm:"size:20"`
	FileSize      int64           `json:"file_size,omitempty"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	IsAvailable   bool            `json:"is_available"`
	LicenseInfo   string          `json:"license_info,omitempty" gorm:"type:text"`

	// Relationships
	Book     *Book              `json:"book,omitempty" gorm:"foreignKey:BookID"`
	Chapters []AudiobookChapter `json:"chapters,omitempty" gorm:"foreignKey:FormatID"`
}

type AudiobookChapter struct {
	BaseModel
	FormatID        uuid.UUID `json:"format_id" gorm:"type:uuid;not null;index:idx_chapters_format_number,unique"`
	ChapterNumber   int       `json:"chapter_number" gorm:"not null;index:idx_chapters_format_number,unique"`
	ChapterTitle    string    `json:"chapter_title" gorm:"size:255;not null"`
	FileURL         string    `json:"file_url" gorm:"size:1024;not null"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`

	// Relationships
	Format *BookFormat `json:"format,omitempty" gorm:"foreignKey:FormatID"`
}

type Genre struct {
	BaseModel
	Name      string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	NameTamil string `json:"name_tamil,omitempty" gorm:"size:100"`
}
