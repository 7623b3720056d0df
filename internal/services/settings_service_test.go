// internal/services/settings_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookloft/bookstore-backend/internal/models"
)

func TestGetSettingsCreatesSingletonRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	settings, err := svc.GetSettings()
	require.NoError(t, err)

	var count int64
	db.Model(&models.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	again, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	db.Model(&models.SiteSettings{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSettingsPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	number := "+91 98765 43210"
	qr := "https://cdn.example.com/payment-qr.png"
	updated, err := svc.UpdateSettings(&UpdateSettingsRequest{
		WhatsAppNumber:   &number,
		PaymentQRCodeURL: &qr,
	})
	require.NoError(t, err)
	assert.Equal(t, number, updated.WhatsAppNumber)
	assert.Equal(t, qr, updated.PaymentQRCodeURL)

	// A later partial update leaves untouched fields alone.
	instructions := "Scan the QR and share the receipt on WhatsApp"
	updated, err = svc.UpdateSettings(&UpdateSettingsRequest{
		PaymentInstructions: &instructions,
	})
	require.NoError(t, err)
	assert.Equal(t, number, updated.WhatsAppNumber)
	assert.Equal(t, qr, updated.PaymentQRCodeURL)
	assert.Equal(t, instructions, updated.PaymentInstructions)

	// Acronym-heavy columns map to gorm's snake case names.
	var raw models.SiteSettings
	require.NoError(t, db.First(&raw).Error)
	assert.Equal(t, number, raw.WhatsAppNumber)
}

func TestUpdateSettingsRejectsInvalidValues(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	bad := "not-a-url"
	_, err := svc.UpdateSettings(&UpdateSettingsRequest{PaymentQRCodeURL: &bad})
	assert.Error(t, err)

	settings, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.PaymentQRCodeURL)
}
