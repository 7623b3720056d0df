// internal/services/translation_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

var ErrTranslationNotFound = errors.New("translation not found")

// TranslationService manages the storefront display strings edited in the
// admin console. These are data, not the server's own locale files.
type TranslationService struct {
	db *gorm.DB
}

type UpsertTranslationRequest struct {
	Key      string `json:"key" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"required,min=1,max=50"`
	English  string `json:"english" validate:"required"`
	Tamil    string `json:"tamil"`
}

func NewTranslationService(db *gorm.DB) *TranslationService {
	return &TranslationService{db: db}
}

func (s *TranslationService) ListTranslations(category string) ([]models.UITranslation, error) {
	query := s.db.Model(&models.UITranslation{}).Order("category ASC, key ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var translations []models.UITranslation
	if err := query.Find(&translations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch translations: %w", err)
	}
	return translations, nil
}

// Dictionary flattens translations for one language into key -> text, keyed as
// "category.key". A missing Tamil value falls back to the English text, so the
// storefront never renders an empty label.
func (s *TranslationService) Dictionary(language string) (map[string]string, error) {
	translations, err := s.ListTranslations("")
	if err != nil {
		return nil, err
	}

	dict := make(map[string]string, len(translations))
	for i := range translations {
		t := &translations[i]
		text := t.English
		if language == "ta" && t.Tamil != "" {
			text = t.Tamil
		}
		dict[t.Category+"."+t.Key] = text
	}
	return dict, nil
}

// UpsertTranslation writes the value stored under (category, key), creating
// the row when it does not exist yet.
func (s *TranslationService) UpsertTranslation(req *UpsertTranslationRequest) (*models.UITranslation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var translation models.UITranslation
	err := s.db.Where("category = ? AND key = ?", req.Category, req.Key).First(&translation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		translation = models.UITranslation{
			Key:      req.Key,
			Category: req.Category,
			English:  req.English,
			Tamil:    req.Tamil,
		}
		if err := s.db.Create(&translation).Error; err != nil {
			return nil, fmt.Errorf("failed to create translation: %w", err)
		}
		return &translation, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"english": req.English,
		"tamil":   req.Tamil,
	}
	if err := s.db.Model(&translation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update translation: %w", err)
	}
	translation.English = req.English
	translation.Tamil = req.Tamil
	return &translation, nil
}

func (s *TranslationService) DeleteTranslation(id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.UITranslation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTranslationNotFound
	}
	return nil
}
