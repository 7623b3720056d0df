// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookloft/bookstore-backend/internal/i18n"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

// CheckoutHandler exposes the guest order workflow over stateless HTTP. Each
// request rebuilds the session from the book id and the submitted details, so
// no server-side session store is needed.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	settingsService *services.SettingsService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, settingsService *services.SettingsService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		settingsService: settingsService,
	}
}

type quoteRequest struct {
	ShippingState string `json:"shipping_state"`
}

type placeOrderResponse struct {
	Message             string      `json:"message"`
	Order               interface{} `json:"order"`
	WhatsAppURL         string      `json:"whatsapp_url,omitempty"`
	PaymentQRCodeURL    string      `json:"payment_qr_code_url,omitempty"`
	PaymentInstructions string      `json:"payment_instructions,omitempty"`
}

// GET /books/:id/checkout
//
// Opens checkout for a book. Refused with 409 when the book has no available
// physical format.
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	sess, err := h.checkoutService.StartSession(bookID)
	if err != nil {
		h.checkoutError(c, lang, err)
		return
	}

	quote, err := h.checkoutService.Quote(bookID, "")
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to price book")
		return
	}

	resp := gin.H{
		"step":  sess.Step(),
		"quote": quote,
	}

	// Settings fetch failure degrades the payment block, never the checkout.
	if settings, err := h.settingsService.GetSettings(); err == nil {
		resp["payment_qr_code_url"] = settings.PaymentQRCodeURL
		resp["payment_instructions"] = settings.PaymentInstructions
		resp["whatsapp_number"] = settings.WhatsAppNumber
	}

	utils.SuccessResponse(c, resp)
}

// checkoutError maps session-open failures: missing book is a 404, absent
// physical format a 409, anything else a database failure.
func (h *CheckoutHandler) checkoutError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrNotPurchasable):
		utils.ConflictResponse(c, "CHECKOUT_NOT_PURCHASABLE", i18n.T(lang, i18n.KeyCheckoutNotPurchasable))
	case errors.Is(err, services.ErrBookNotFound):
		utils.NotFoundResponse(c, "Book")
	default:
		utils.InternalErrorResponse(c, "Failed to open checkout")
	}
}

// POST /books/:id/checkout/quote
//
// Reprices shipping against the submitted state text. Called on every region
// change so the displayed total always matches the form.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	quote, err := h.checkoutService.Quote(bookID, req.ShippingState)
	if err != nil {
		h.checkoutError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, quote)
}

// POST /books/:id/checkout/review
//
// Validates the shipping details and returns the order summary the buyer
// confirms before placement. Nothing is persisted.
func (h *CheckoutHandler) Review(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	var details services.ShippingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	sess, err := h.checkoutService.StartSession(bookID)
	if err != nil {
		h.checkoutError(c, lang, err)
		return
	}

	if err := sess.SubmitShipping(details, nil); err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	summary, err := sess.Summary()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to build order summary")
		return
	}

	utils.SuccessResponse(c, summary)
}

// POST /books/:id/checkout
//
// Places the order and returns the payment handoff block. An Idempotency-Key
// header makes retried submissions return the already-created order.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "book id"), nil)
		return
	}

	var details services.ShippingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	var idempotencyKey *string
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		idempotencyKey = &key
	}

	sess, err := h.checkoutService.StartSession(bookID)
	if err != nil {
		h.checkoutError(c, lang, err)
		return
	}

	if err := sess.SubmitShipping(details, idempotencyKey); err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	order, err := h.checkoutService.PlaceOrder(sess)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ORDER_NOT_PLACED",
			i18n.T(lang, i18n.KeyOrderNotPlaced), nil)
		return
	}

	resp := placeOrderResponse{
		Message: i18n.T(lang, i18n.KeyOrderPlaced),
		Order:   order,
	}

	settings, err := h.settingsService.GetSettings()
	if err == nil {
		resp.PaymentQRCodeURL = settings.PaymentQRCodeURL
		resp.PaymentInstructions = settings.PaymentInstructions
	}

	// A missing contact number degrades the handoff link, not the order.
	if url, err := h.checkoutService.HandoffURL(settings, order); err == nil {
		resp.WhatsAppURL = url
	}

	utils.CreatedResponse(c, resp)
}
