// internal/handlers/content.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

// ContentHandler covers static pages, the hero carousel and menu toggles.
type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// GET /pages/:key
func (h *ContentHandler) GetPage(c *gin.Context) {
	page, err := h.contentService.GetPage(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			utils.NotFoundResponse(c, "Page")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch page")
		return
	}

	utils.SuccessResponse(c, page)
}

// GET /admin/pages
func (h *ContentHandler) ListPages(c *gin.Context) {
	pages, err := h.contentService.ListPages()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch pages")
		return
	}

	utils.SuccessResponse(c, pages)
}

// PUT /admin/pages/:key
func (h *ContentHandler) UpsertPage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpsertPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	page, err := h.contentService.UpsertPage(c.Param("key"), &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageSaved),
		"page":    page,
	})
}

// GET /carousel
func (h *ContentHandler) ListSlides(c *gin.Context) {
	slides, err := h.contentService.ListSlides(false)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch slides")
		return
	}

	utils.SuccessResponse(c, slides)
}

// GET /admin/carousel
func (h *ContentHandler) ListAllSlides(c *gin.Context) {
	slides, err := h.contentService.ListSlides(true)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch slides")
		return
	}

	utils.SuccessResponse(c, slides)
}

// POST /admin/carousel
func (h *ContentHandler) CreateSlide(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	slide, err := h.contentService.CreateSlide(&req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySlideSaved),
		"slide":   slide,
	})
}

// PUT /admin/carousel/:id
func (h *ContentHandler) UpdateSlide(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "slide id"), nil)
		return
	}

	var req services.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	slide, err := h.contentService.UpdateSlide(slideID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSlideNotFound) {
			utils.NotFoundResponse(c, "Slide")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySlideSaved),
		"slide":   slide,
	})
}

// DELETE /admin/carousel/:id
func (h *ContentHandler) DeleteSlide(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "slide id"), nil)
		return
	}

	if err := h.contentService.DeleteSlide(slideID); err != nil {
		if errors.Is(err, services.ErrSlideNotFound) {
			utils.NotFoundResponse(c, "Slide")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete slide")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySlideDeleted),
	})
}

// GET /menus
func (h *ContentHandler) ListMenus(c *gin.Context) {
	menus, err := h.contentService.ListMenus(false)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch menus")
		return
	}

	utils.SuccessResponse(c, menus)
}

// GET /admin/menus
func (h *ContentHandler) ListAllMenus(c *gin.Context) {
	menus, err := h.contentService.ListMenus(true)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch menus")
		return
	}

	utils.SuccessResponse(c, menus)
}

// PUT /admin/menus/:key
func (h *ContentHandler) UpdateMenu(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	menu, err := h.contentService.UpdateMenu(c.Param("key"), &req)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			utils.NotFoundResponse(c, "Menu entry")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMenuSaved),
		"menu":    menu,
	})
}
