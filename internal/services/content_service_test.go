// internal/services/content_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type ContentTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *ContentService
}

func (s *ContentTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewContentService(s.db)
}

func TestContentTestSuite(t *testing.T) {
	suite.Run(t, new(ContentTestSuite))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":                "hello-world",
		"  Tamil Books: A Guide!  ":  "tamil-books-a-guide",
		"already-slugged":            "already-slugged",
		"MULTIPLE   spaces &symbols": "multiple-spaces-symbols",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input))
	}
}

func (s *ContentTestSuite) createPublishedBlog(title string) *models.Blog {
	blog, err := s.svc.CreateBlog(&CreateBlogRequest{
		Title:       title,
		Content:     "Some long-form content about Tamil literature.",
		AuthorName:  "Editor",
		IsPublished: true,
	})
	require.NoError(s.T(), err)
	return blog
}

func (s *ContentTestSuite) TestCreateBlogGeneratesSlug() {
	blog := s.createPublishedBlog("Reading Kalki Today")
	assert.Equal(s.T(), "reading-kalki-today", blog.Slug)
	assert.NotNil(s.T(), blog.PublishedAt)
}

func (s *ContentTestSuite) TestCreateBlogRejectsDuplicateSlug() {
	s.createPublishedBlog("Reading Kalki Today")

	_, err := s.svc.CreateBlog(&CreateBlogRequest{
		Title:   "Reading Kalki Today",
		Content: "Different content, same title.",
	})
	assert.ErrorIs(s.T(), err, ErrDuplicateSlug)
}

func (s *ContentTestSuite) TestDraftsHiddenFromPublicListing() {
	s.createPublishedBlog("Published Post")
	_, err := s.svc.CreateBlog(&CreateBlogRequest{
		Title:   "Draft Post",
		Content: "Not ready yet.",
	})
	require.NoError(s.T(), err)

	public, err := s.svc.ListBlogs(false, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), public.Total)

	all, err := s.svc.ListBlogs(true, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), all.Total)

	_, err = s.svc.GetBlogBySlug("draft-post")
	assert.ErrorIs(s.T(), err, ErrBlogNotFound)
}

func (s *ContentTestSuite) TestPublishingSetsTimestampOnce() {
	blog, err := s.svc.CreateBlog(&CreateBlogRequest{
		Title:   "Draft Post",
		Content: "Not ready yet.",
	})
	require.NoError(s.T(), err)
	assert.Nil(s.T(), blog.PublishedAt)

	published := true
	updated, err := s.svc.UpdateBlog(blog.ID, &UpdateBlogRequest{IsPublished: &published})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated.PublishedAt)
	firstPublish := *updated.PublishedAt

	// Republishing keeps the original timestamp
	again, err := s.svc.UpdateBlog(blog.ID, &UpdateBlogRequest{IsPublished: &published})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), firstPublish.Unix(), again.PublishedAt.Unix())
}

func (s *ContentTestSuite) TestCommentsEnterModerationUnapproved() {
	blog := s.createPublishedBlog("Reading Kalki Today")

	comment, err := s.svc.SubmitComment(blog.ID, &CreateCommentRequest{
		UserName: "Reader",
		Comment:  "Wonderful post!",
	})
	require.NoError(s.T(), err)
	assert.False(s.T(), comment.IsApproved)

	// Public view is empty until approval
	blogID := blog.ID
	visible, err := s.svc.ListComments(&blogID, true)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), visible)

	_, err = s.svc.ApproveComment(comment.ID)
	require.NoError(s.T(), err)

	visible, err = s.svc.ListComments(&blogID, true)
	require.NoError(s.T(), err)
	assert.Len(s.T(), visible, 1)
}

func (s *ContentTestSuite) TestSubmitCommentRejectsDraftBlog() {
	blog, err := s.svc.CreateBlog(&CreateBlogRequest{
		Title:   "Draft Post",
		Content: "Not ready yet.",
	})
	require.NoError(s.T(), err)

	_, err = s.svc.SubmitComment(blog.ID, &CreateCommentRequest{
		UserName: "Reader",
		Comment:  "First!",
	})
	assert.ErrorIs(s.T(), err, ErrBlogNotFound)
}

func (s *ContentTestSuite) TestDeleteBlogRemovesComments() {
	blog := s.createPublishedBlog("Reading Kalki Today")
	_, err := s.svc.SubmitComment(blog.ID, &CreateCommentRequest{
		UserName: "Reader",
		Comment:  "Wonderful post!",
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.DeleteBlog(blog.ID))

	var count int64
	s.db.Model(&models.BlogComment{}).Count(&count)
	assert.Equal(s.T(), int64(0), count)
}

func (s *ContentTestSuite) TestUpsertPageCreatesThenUpdates() {
	page, err := s.svc.UpsertPage("about", &UpsertPageRequest{
		Title:   "About Us",
		Content: "We sell Tamil books.",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "about", page.PageKey)

	page, err = s.svc.UpsertPage("about", &UpsertPageRequest{
		Title:   "About the Store",
		Content: "Updated copy.",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "About the Store", page.Title)

	var count int64
	s.db.Model(&models.PageContent{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *ContentTestSuite) TestCarouselOrderingAndVisibility() {
	inactive := false
	_, err := s.svc.CreateSlide(&CreateSlideRequest{
		ImageURL:   "https://cdn.example.com/second.jpg",
		OrderIndex: 2,
	})
	require.NoError(s.T(), err)
	_, err = s.svc.CreateSlide(&CreateSlideRequest{
		ImageURL:   "https://cdn.example.com/first.jpg",
		OrderIndex: 1,
	})
	require.NoError(s.T(), err)
	_, err = s.svc.CreateSlide(&CreateSlideRequest{
		ImageURL:   "https://cdn.example.com/hidden.jpg",
		OrderIndex: 0,
		IsActive:   &inactive,
	})
	require.NoError(s.T(), err)

	visible, err := s.svc.ListSlides(false)
	require.NoError(s.T(), err)
	require.Len(s.T(), visible, 2)
	assert.Equal(s.T(), "https://cdn.example.com/first.jpg", visible[0].ImageURL)

	all, err := s.svc.ListSlides(true)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 3)
}

func (s *ContentTestSuite) TestMenuToggle() {
	require.NoError(s.T(), s.db.Create(&models.MenuSetting{
		MenuKey:   "blog",
		MenuLabel: "Blog",
		IsEnabled: true,
	}).Error)

	disabled := false
	_, err := s.svc.UpdateMenu("blog", &UpdateMenuRequest{IsEnabled: &disabled})
	require.NoError(s.T(), err)

	enabled, err := s.svc.ListMenus(false)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), enabled)

	all, err := s.svc.ListMenus(true)
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 1)
}

func (s *ContentTestSuite) TestUpdateMenuUnknownKey() {
	_, err := s.svc.UpdateMenu("no-such-menu", &UpdateMenuRequest{})
	assert.ErrorIs(s.T(), err, ErrMenuNotFound)
}
