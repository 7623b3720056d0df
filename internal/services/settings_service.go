// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

// SettingsService manages the site settings singleton. GetSettings creates the
// row on first access, so callers never see a missing-row error.
type SettingsService struct {
	db *gorm.DB
}

type UpdateSettingsRequest struct {
	AboutUsTitle     *string `json:"about_us_title" validate:"omitempty,max=255"`
	AboutUsContent   *string `json:"about_us_content"`
	ContactUsTitle   *string `json:"contact_us_title" validate:"omitempty,max=255"`
	ContactUsContent *string `json:"contact_us_content"`
	ContactEmail     *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone     *string `json:"contact_phone" validate:"omitempty,phone"`

	WhatsAppNumber      *string `json:"whatsapp_number" validate:"omitempty,phone"`
	PaymentQRCodeURL    *string `json:"payment_qr_code_url" validate:"omitempty,url"`
	PaymentInstructions *string `json:"payment_instructions"`

	FacebookURL  *string `json:"facebook_url" validate:"omitempty,url"`
	TwitterURL   *string `json:"twitter_url" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url" validate:"omitempty,url"`
	LinkedInURL  *string `json:"linkedin_url" validate:"omitempty,url"`
	YouTubeURL   *string `json:"youtube_url" validate:"omitempty,url"`
	GitHubURL    *string `json:"github_url" validate:"omitempty,url"`
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) GetSettings() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &settings, nil
}

func (s *SettingsService) UpdateSettings(req *UpdateSettingsRequest) (*models.SiteSettings, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.AboutUsTitle != nil {
		updates["about_us_title"] = *req.AboutUsTitle
	}
	if req.AboutUsContent != nil {
		updates["about_us_content"] = *req.AboutUsContent
	}
	if req.ContactUsTitle != nil {
		updates["contact_us_title"] = *req.ContactUsTitle
	}
	if req.ContactUsContent != nil {
		updates["contact_us_content"] = *req.ContactUsContent
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.WhatsAppNumber != nil {
		updates["whats_app_number"] = *req.WhatsAppNumber
	}
	if req.PaymentQRCodeURL != nil {
		updates["payment_qr_code_url"] = *req.PaymentQRCodeURL
	}
	if req.PaymentInstructions != nil {
		updates["payment_instructions"] = *req.PaymentInstructions
	}
	if req.FacebookURL != nil {
		updates["facebook_url"] = *req.FacebookURL
	}
	if req.TwitterURL != nil {
		updates["twitter_url"] = *req.TwitterURL
	}
	if req.InstagramURL != nil {
		updates["instagram_url"] = *req.InstagramURL
	}
	if req.LinkedInURL != nil {
		updates["linked_in_url"] = *req.LinkedInURL
	}
	if req.YouTubeURL != nil {
		updates["you_tube_url"] = *req.YouTubeURL
	}
	if req.GitHubURL != nil {
		updates["git_hub_url"] = *req.GitHubURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}
	return s.GetSettings()
}
