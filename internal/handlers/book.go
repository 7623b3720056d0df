// internal/handlers/book.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type BookHandler struct {
	catalogService *services.CatalogService
}

func NewBookHandler(catalogService *services.CatalogService) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
	}
}

// GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := services.BookSearchParams{
		Query:      c.Query("q"),
		Genre:      c.Query("genre"),
		FormatType: c.Query("format"),
		Pagination: utils.GetPaginationParams(c),
	}

	result, err := h.catalogService.ListBooks(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch books")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	book, err := h.catalogService.GetBook(bookID)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.NotFoundResponse(c, "Book")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch book")
		return
	}

	// Download pointers are only exposed for formats that are available.
	for i := range book.Formats {
		if !book.Formats[i].IsAvailable {
			book.Formats[i].FileURL = ""
		}
	}

	utils.SuccessResponse(c, book)
}

// POST /admin/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	book, err := h.catalogService.CreateBook(&req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookCreated),
		"book":    book,
	})
}

// PUT /admin/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	var req services.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	book, err := h.catalogService.UpdateBook(bookID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.NotFoundResponse(c, "Book")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookUpdated),
		"book":    book,
	})
}

// DELETE /admin/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	if err := h.catalogService.DeleteBook(bookID); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.NotFoundResponse(c, "Book")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete book")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBookDeleted),
	})
}

// POST /admin/books/:id/formats
func (h *BookHandler) AddFormat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	var req services.CreateFormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	format, err := h.catalogService.AddFormat(bookID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			utils.NotFoundResponse(c, "Book")
		case errors.Is(err, services.ErrDuplicateFormat):
			utils.ConflictResponse(c, "DUPLICATE_FORMAT", err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormatCreated),
		"format":  format,
	})
}

// PUT /admin/formats/:id
func (h *BookHandler) UpdateFormat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	formatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "format id"), nil)
		return
	}

	var req services.UpdateFormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	format, err := h.catalogService.UpdateFormat(formatID, &req)
	if err != nil {
		if errors.Is(err, services.ErrFormatNotFound) {
			utils.NotFoundResponse(c, "Format")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormatUpdated),
		"format":  format,
	})
}

// DELETE /admin/formats/:id
func (h *BookHandler) DeleteFormat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	formatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "format id"), nil)
		return
	}

	if err := h.catalogService.DeleteFormat(formatID); err != nil {
		if errors.Is(err, services.ErrFormatNotFound) {
			utils.NotFoundResponse(c, "Format")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete format")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormatDeleted),
	})
}

// POST /admin/formats/:id/chapters
func (h *BookHandler) AddChapter(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	formatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "format id"), nil)
		return
	}

	var req services.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	chapter, err := h.catalogService.AddChapter(formatID, &req)
	if err != nil {
		if errors.Is(err, services.ErrFormatNotFound) {
			utils.NotFoundResponse(c, "Format")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChapterCreated),
		"chapter": chapter,
	})
}

// DELETE /admin/chapters/:id
func (h *BookHandler) DeleteChapter(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "chapter id"), nil)
		return
	}

	if err := h.catalogService.DeleteChapter(chapterID); err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
			utils.NotFoundResponse(c, "Chapter")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete chapter")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChapterDeleted),
	})
}

// GET /genres
func (h *BookHandler) ListGenres(c *gin.Context) {
	genres, err := h.catalogService.ListGenres()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch genres")
		return
	}

	utils.SuccessResponse(c, genres)
}

// POST /admin/genres
func (h *BookHandler) CreateGenre(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Name      string `json:"name" binding:"required"`
		NameTamil string `json:"name_tamil"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	genre, err := h.catalogService.CreateGenre(req.Name, req.NameTamil)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, genre)
}

// DELETE /admin/genres/:id
func (h *BookHandler) DeleteGenre(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	genreID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "genre id"), nil)
		return
	}

	if err := h.catalogService.DeleteGenre(genreID); err != nil {
		utils.NotFoundResponse(c, "Genre")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Genre deleted"})
}
