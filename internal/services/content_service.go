// internal/services/content_service.go
package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

var (
	ErrBlogNotFound    = errors.New("blog post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrPageNotFound    = errors.New("page not found")
	ErrSlideNotFound   = errors.New("slide not found")
	ErrMenuNotFound    = errors.New("menu entry not found")
	ErrDuplicateSlug   = errors.New("slug already in use")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ContentService owns the blog, comment moderation, static pages, the hero
// carousel and navigation menu toggles.
type ContentService struct {
	db *gorm.DB
}

type CreateBlogRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=255"`
	Slug          string   `json:"slug" validate:"omitempty,max=255"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt" validate:"max=1000"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url"`
	AuthorName    string   `json:"author_name" validate:"max=255"`
	Tags          []string `json:"tags" validate:"max=20,dive,max=50"`
	IsPublished   bool     `json:"is_published"`
}

type UpdateBlogRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt" validate:"omitempty,max=1000"`
	CoverImageURL *string  `json:"cover_image_url" validate:"omitempty,url"`
	AuthorName    *string  `json:"author_name" validate:"omitempty,max=255"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsPublished   *bool    `json:"is_published"`
}

type CreateCommentRequest struct {
	UserName  string `json:"user_name" validate:"required,min=1,max=255"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
	Comment   string `json:"comment" validate:"required,min=1,max=5000"`
}

type UpsertPageRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

type CreateSlideRequest struct {
	ImageURL   string `json:"image_url" validate:"required,url"`
	Title      string `json:"title" validate:"max=255"`
	Subtitle   string `json:"subtitle" validate:"max=255"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
	IsActive   *bool  `json:"is_active"`
}

type UpdateSlideRequest struct {
	ImageURL   *string `json:"image_url" validate:"omitempty,url"`
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Subtitle   *string `json:"subtitle" validate:"omitempty,max=255"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
	IsActive   *bool   `json:"is_active"`
}

type UpdateMenuRequest struct {
	MenuLabel  *string `json:"menu_label" validate:"omitempty,min=1,max=100"`
	IsEnabled  *bool   `json:"is_enabled"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// Slugify collapses a title into a URL slug: lowercase, non-alphanumerics
// folded into single hyphens.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ListBlogs returns published posts for the storefront; admins pass
// includeDrafts to see everything.
func (s *ContentService) ListBlogs(includeDrafts bool, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Blog{})
	if !includeDrafts {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count blogs: %w", err)
	}

	var blogs []models.Blog
	query = utils.ApplySort(query, params, []string{"created_at", "published_at", "title"})
	if err := utils.ApplyPagination(query, params).Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch blogs: %w", err)
	}

	result := utils.CreatePaginationResult(blogs, total, params)
	return &result, nil
}

// GetBlogBySlug serves the public post page. Unpublished posts are invisible
// here; drafts only resolve through GetBlog for admins.
func (s *ContentService) GetBlogBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &blog, nil
}

func (s *ContentService) GetBlog(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &blog, nil
}

func (s *ContentService) CreateBlog(req *CreateBlogRequest) (*models.Blog, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	var count int64
	s.db.Model(&models.Blog{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateSlug
	}

	blog := &models.Blog{
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
		AuthorName:    req.AuthorName,
		Tags:          pq.StringArray(req.Tags),
		IsPublished:   req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := s.db.Create(blog).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

func (s *ContentService) UpdateBlog(id uuid.UUID, req *UpdateBlogRequest) (*models.Blog, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	blog, err := s.GetBlog(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.AuthorName != nil {
		updates["author_name"] = *req.AuthorName
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
		if *req.IsPublished && blog.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(blog).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update blog: %w", err)
		}
	}
	return s.GetBlog(id)
}

func (s *ContentService) DeleteBlog(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Unscoped().Delete(&models.BlogComment{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Blog{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBlogNotFound
		}
		return nil
	})
}

// SubmitComment stores a visitor comment awaiting moderation. It only attaches
// to published posts.
func (s *ContentService) SubmitComment(blogID uuid.UUID, req *CreateCommentRequest) (*models.BlogComment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var blog models.Blog
	err := s.db.Where("id = ? AND is_published = ?", blogID, true).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	comment := &models.BlogComment{
		BlogID:    blogID,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Comment:   req.Comment,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns approved comments for the public post page, or the full
// moderation queue when approvedOnly is false.
func (s *ContentService) ListComments(blogID *uuid.UUID, approvedOnly bool) ([]models.BlogComment, error) {
	query := s.db.Model(&models.BlogComment{}).Order("created_at DESC")
	if blogID != nil {
		query = query.Where("blog_id = ?", *blogID)
	}
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var comments []models.BlogComment
	if err := query.Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

func (s *ContentService) ApproveComment(id uuid.UUID) (*models.BlogComment, error) {
	var comment models.BlogComment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&comment).Update("is_approved", true).Error; err != nil {
		return nil, fmt.Errorf("failed to approve comment: %w", err)
	}
	comment.IsApproved = true
	return &comment, nil
}

func (s *ContentService) DeleteComment(id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.BlogComment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *ContentService) GetPage(pageKey string) (*models.PageContent, error) {
	var page models.PageContent
	err := s.db.Where("page_key = ? AND is_published = ?", pageKey, true).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &page, nil
}

func (s *ContentService) ListPages() ([]models.PageContent, error) {
	var pages []models.PageContent
	if err := s.db.Order("page_key ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pages: %w", err)
	}
	return pages, nil
}

// UpsertPage creates or replaces the page stored under pageKey.
func (s *ContentService) UpsertPage(pageKey string, req *UpsertPageRequest) (*models.PageContent, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	var page models.PageContent
	err := s.db.Where("page_key = ?", pageKey).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		page = models.PageContent{
			PageKey:     pageKey,
			Title:       req.Title,
			Content:     req.Content,
			IsPublished: published,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
		return &page, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"title":        req.Title,
		"content":      req.Content,
		"is_published": published,
	}
	if err := s.db.Model(&page).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	page.Title = req.Title
	page.Content = req.Content
	page.IsPublished = published
	return &page, nil
}

// ListSlides returns active slides ordered for display; admins pass
// includeInactive to manage the full carousel.
func (s *ContentService) ListSlides(includeInactive bool) ([]models.CarouselSlide, error) {
	query := s.db.Model(&models.CarouselSlide{}).Order("order_index ASC, created_at ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var slides []models.CarouselSlide
	if err := query.Find(&slides).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch slides: %w", err)
	}
	return slides, nil
}

func (s *ContentService) CreateSlide(req *CreateSlideRequest) (*models.CarouselSlide, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	slide := &models.CarouselSlide{
		ImageURL:   req.ImageURL,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		OrderIndex: req.OrderIndex,
		IsActive:   active,
	}

	if err := s.db.Create(slide).Error; err != nil {
		return nil, fmt.Errorf("failed to create slide: %w", err)
	}
	return slide, nil
}

func (s *ContentService) UpdateSlide(id uuid.UUID, req *UpdateSlideRequest) (*models.CarouselSlide, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var slide models.CarouselSlide
	if err := s.db.First(&slide, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlideNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&slide).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update slide: %w", err)
		}
	}
	return &slide, nil
}

func (s *ContentService) DeleteSlide(id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.CarouselSlide{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlideNotFound
	}
	return nil
}

func (s *ContentService) ListMenus(includeDisabled bool) ([]models.MenuSetting, error) {
	query := s.db.Model(&models.MenuSetting{}).Order("order_index ASC")
	if !includeDisabled {
		query = query.Where("is_enabled = ?", true)
	}

	var menus []models.MenuSetting
	if err := query.Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch menus: %w", err)
	}
	return menus, nil
}

func (s *ContentService) UpdateMenu(menuKey string, req *UpdateMenuRequest) (*models.MenuSetting, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var menu models.MenuSetting
	if err := s.db.Where("menu_key = ?", menuKey).First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.MenuLabel != nil {
		updates["menu_label"] = *req.MenuLabel
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}

	if len(updates) > 0 {
		if err := s.db.Model(&menu).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update menu: %w", err)
		}
	}
	return &menu, nil
}
