// internal/handlers/checkout_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookloft/bookstore-backend/internal/config"
	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/services"
)

func newCheckoutTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Book{},
		&models.BookFormat{},
		&models.Order{},
		&models.SiteSettings{},
	))

	cfg := &config.Config{
		Environment: "test",
		Shipping: config.ShippingConfig{
			HomeRegion:    "tamil nadu",
			InRegionCost:  decimal.NewFromInt(50),
			OutRegionCost: decimal.NewFromInt(100),
		},
		WhatsApp: config.WhatsAppConfig{
			Host:   "wa.me",
			Number: "+91 98765 43210",
		},
	}

	handler := NewCheckoutHandler(
		services.NewCheckoutService(db, cfg),
		services.NewSettingsService(db),
	)

	r := gin.New()
	r.GET("/api/v1/books/:id/checkout", handler.StartCheckout)
	return r, db
}

func checkoutGET(t *testing.T, r *gin.Engine, bookID string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/"+bookID+"/checkout", nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestStartCheckoutIncludesPaymentSettings(t *testing.T) {
	r, db := newCheckoutTestRouter(t)

	book := &models.Book{Title: "Ponniyin Selvan", Author: "Kalki", Genre: "Fiction"}
	require.NoError(t, db.Create(book).Error)
	require.NoError(t, db.Create(&models.BookFormat{
		BookID:      book.ID,
		FormatType:  models.FormatTypePhysical,
		Price:       decimal.NewFromInt(500),
		IsAvailable: true,
	}).Error)
	require.NoError(t, db.Create(&models.SiteSettings{
		WhatsAppNumber:      "+91 91234 56789",
		PaymentQRCodeURL:    "https://cdn.example.com/payment-qr.png",
		PaymentInstructions: "Scan the QR and share the receipt on WhatsApp",
	}).Error)

	w, body := checkoutGET(t, r, book.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "collecting_shipping_info", data["step"])
	assert.Equal(t, "https://cdn.example.com/payment-qr.png", data["payment_qr_code_url"])
	assert.Equal(t, "Scan the QR and share the receipt on WhatsApp", data["payment_instructions"])
	assert.Equal(t, "+91 91234 56789", data["whatsapp_number"])
	assert.NotNil(t, data["quote"])
}

func TestStartCheckoutUnknownBookIsNotFound(t *testing.T) {
	r, _ := newCheckoutTestRouter(t)

	w, body := checkoutGET(t, r, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestStartCheckoutEbookOnlyConflicts(t *testing.T) {
	r, db := newCheckoutTestRouter(t)

	book := &models.Book{Title: "Digital Dreams", Author: "K. Swaminathan", Genre: "Fiction"}
	require.NoError(t, db.Create(book).Error)
	require.NoError(t, db.Create(&models.BookFormat{
		BookID:      book.ID,
		FormatType:  models.FormatTypeEbook,
		Price:       decimal.NewFromInt(99),
		IsAvailable: true,
	}).Error)

	w, _ := checkoutGET(t, r, book.ID.String())
	assert.Equal(t, http.StatusConflict, w.Code)
}
