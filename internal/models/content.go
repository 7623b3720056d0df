// internal/models/content.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Blog struct {
	BaseModel
	Title         string         `json:"title" gorm:"size:255;not null"`
	Slug          string         `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Excerpt       string         `json:"excerpt" gorm:"type:text"`
	CoverImageURL string         `json:"cover_image_url" gorm:"size:1024"`
	AuthorName    string         `json:"author_name" gorm:"size:255"`
	Tags          pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	IsPublished   bool           `json:"is_published" gorm:"default:false;index"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`

	// Relationships
	Comments []BlogComment `json:"comments,omitempty" gorm:"foreignKey:BlogID"`
}

// BlogComment rows enter moderation unapproved; public reads only ever see
// approved comments.
type BlogComment struct {
	BaseModel
	BlogID     uuid.UUID `json:"blog_id" gorm:"type:uuid;not null;index"`
	UserName   string    `json:"user_name" gorm:"size:255;not null"`
	UserEmail  string    `json:"user_email" gorm:"size:255"`
	Comment    string    `json:"comment" gorm:"type:text;not null"`
	IsApproved bool      `json:"is_approved" gorm:"default:false;index"`

	// Relationships
	Blog *Blog `json:"blog,omitempty" gorm:"foreignKey:BlogID"`
}

type PageContent struct {
	BaseModel
	PageKey     string `json:"page_key" gorm:"size:100;uniqueIndex;not null"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Content     string `json:"content" gorm:"type:text"`
	IsPublished bool   `json:"is_published"`
}

type CarouselSlide struct {
	BaseModel
	ImageURL   string `json:"image_url" gorm:"size:1024;not null"`
	Title      string `json:"title,omitempty" gorm:"size:255"`
	Subtitle   string `json:"subtitle,omitempty" gorm:"size:255"`
	OrderIndex int    `json:"order_index" gorm:"default:0;index"`
	IsActive   bool   `json:"is_active" gorm:"index"`
}

type MenuSetting struct {
	BaseModel
	MenuKey    string `json:"menu_key" gorm:"size:50;uniqueIndex;not null"`
	MenuLabel  string `json:"menu_label" gorm:"size:100;not null"`
	IsEnabled  bool   `json:"is_enabled"`
	OrderIndex int    `json:"order_index" gorm:"default:0;index"`
}

// UITranslation is storefront display text managed in the admin console,
// distinct from the server's own API-message locales.
type UITranslation struct {
	BaseModel
	Key      string `json:"key" gorm:"size:100;not null;index:idx_translations_category_key,unique"`
	Category string `json:"category" gorm:"size:50;not null;index:idx_translations_category_key,unique"`
	English  string `json:"english" gorm:"type:text;not null"`
	Tamil    string `json:"tamil" gorm:"type:text"`
}
