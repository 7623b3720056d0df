// internal/handlers/blog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type BlogHandler struct {
	contentService *services.ContentService
}

func NewBlogHandler(contentService *services.ContentService) *BlogHandler {
	return &BlogHandler{
		contentService: contentService,
	}
}

// GET /blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	result, err := h.contentService.ListBlogs(false, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch blogs")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /blogs/:slug
func (h *BlogHandler) GetBlogBySlug(c *gin.Context) {
	blog, err := h.contentService.GetBlogBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.NotFoundResponse(c, "Blog post")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch blog post")
		return
	}

	blogID := blog.ID
	comments, err := h.contentService.ListComments(&blogID, true)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch comments")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"blog":     blog,
		"comments": comments,
	})
}

// POST /blogs/:slug/comments
func (h *BlogHandler) SubmitComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	blog, err := h.contentService.GetBlogBySlug(c.Param("slug"))
	if err != nil {
		utils.NotFoundResponse(c, "Blog post")
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	comment, err := h.contentService.SubmitComment(blog.ID, &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentSubmitted),
		"comment": comment,
	})
}

// GET /admin/blogs
func (h *BlogHandler) ListAllBlogs(c *gin.Context) {
	result, err := h.contentService.ListBlogs(true, utils.GetPaginationParams(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch blogs")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /admin/blogs
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	blog, err := h.contentService.CreateBlog(&req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateSlug) {
			utils.ConflictResponse(c, "DUPLICATE_SLUG", err.Error())
			return
		}
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBlogCreated),
		"blog":    blog,
	})
}

// PUT /admin/blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "blog id"), nil)
		return
	}

	var req services.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	blog, err := h.contentService.UpdateBlog(blogID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.NotFoundResponse(c, "Blog post")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBlogUpdated),
		"blog":    blog,
	})
}

// DELETE /admin/blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "blog id"), nil)
		return
	}

	if err := h.contentService.DeleteBlog(blogID); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.NotFoundResponse(c, "Blog post")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete blog")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBlogDeleted),
	})
}

// GET /admin/comments
func (h *BlogHandler) ListComments(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var blogID *uuid.UUID
	if idStr := c.Query("blog_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "blog id"), nil)
			return
		}
		blogID = &id
	}

	approvedOnly := c.Query("approved") == "true"

	comments, err := h.contentService.ListComments(blogID, approvedOnly)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch comments")
		return
	}

	utils.SuccessResponse(c, comments)
}

// PUT /admin/comments/:id/approve
func (h *BlogHandler) ApproveComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "comment id"), nil)
		return
	}

	comment, err := h.contentService.ApproveComment(commentID)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			utils.NotFoundResponse(c, "Comment")
			return
		}
		utils.InternalErrorResponse(c, "Failed to approve comment")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentApproved),
		"comment": comment,
	})
}

// DELETE /admin/comments/:id
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "comment id"), nil)
		return
	}

	if err := h.contentService.DeleteComment(commentID); err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			utils.NotFoundResponse(c, "Comment")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete comment")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentDeleted),
	})
}
