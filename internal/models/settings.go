// internal/models/settings.go
package models

// SiteSettings is a process-wide singleton row. The storefront reads it for
// the payment handoff block; only admins write it.
type SiteSettings struct {
	BaseModel
	AboutUsTitle     string `json:"about_us_title" gorm:"size:255"`
	AboutUsContent   string `json:"about_us_content" gorm:"type:text"`
	ContactUsTitle   string `json:"contact_us_title" gorm:"size:255"`
	ContactUsContent string `json:"contact_us_content" gorm:"type:text"`
	ContactEmail     string `json:"contact_email,omitempty" gorm:"size:255"`
	ContactPhone     string `json:"contact_phone,omitempty" gorm:"size:20"`

	WhatsAppNumber      string `json:"whatsapp_number,omitempty" gorm:"size:20"`
	PaymentQRCodeURL    string `json:"payment_qr_code_url,omitempty" gorm:"size:1024"`
	PaymentInstructions string `json:"payment_instructions,omitempty" gorm:"type:text"`

	FacebookURL  string `json:"facebook_url,omitempty" gorm:"size:512"`
	TwitterURL   string `json:"twitter_url,omitempty" gorm:"size:512"`
	InstagramURL string `json:"instagram_url,omitempty" gorm:"size:512"`
	LinkedInURL  string `json:"linkedin_url,omitempty" gorm:"size:512"`
	YouTubeURL   string `json:"youtube_url,omitempty" gorm:"size:512"`
	GitHubURL    string `json:"github_url,omitempty" gorm:"size:512"`
}
