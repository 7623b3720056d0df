// internal/handlers/translation.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type TranslationHandler struct {
	translationService *services.TranslationService
}

func NewTranslationHandler(translationService *services.TranslationService) *TranslationHandler {
	return &TranslationHandler{
		translationService: translationService,
	}
}

// GET /translations
//
// Public dictionary for the storefront, flattened for the requested language.
func (h *TranslationHandler) GetDictionary(c *gin.Context) {
	lang := c.DefaultQuery("language", utils.GetLangFromContext(c))

	dict, err := h.translationService.Dictionary(lang)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch translations")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"language":     lang,
		"translations": dict,
	})
}

// GET /admin/translations
func (h *TranslationHandler) ListTranslations(c *gin.Context) {
	translations, err := h.translationService.ListTranslations(c.Query("category"))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch translations")
		return
	}

	utils.SuccessResponse(c, translations)
}

// PUT /admin/translations
func (h *TranslationHandler) UpsertTranslation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	translation, err := h.translationService.UpsertTranslation(&req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyTranslationSaved),
		"translation": translation,
	})
}

// DELETE /admin/translations/:id
func (h *TranslationHandler) DeleteTranslation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	translationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "translation id"), nil)
		return
	}

	if err := h.translationService.DeleteTranslation(translationID); err != nil {
		if errors.Is(err, services.ErrTranslationNotFound) {
			utils.NotFoundResponse(c, "Translation")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete translation")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTranslationDeleted),
	})
}
