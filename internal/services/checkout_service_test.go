// internal/services/checkout_service_test.go
package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
)

type CheckoutTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *CheckoutService
}

func (s *CheckoutTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewCheckoutService(s.db, newTestConfig())
}

func TestCheckoutTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) TestStartSessionRefusesEbookOnly() {
	book := seedEbookOnly(s.T(), s.db, "Digital Dreams", "K. Swaminathan")

	_, err := s.svc.StartSession(book.ID)
	assert.ErrorIs(s.T(), err, ErrNotPurchasable)
}

func (s *CheckoutTestSuite) TestStartSessionUnknownBook() {
	_, err := s.svc.StartSession(uuid.New())
	assert.ErrorIs(s.T(), err, ErrBookNotFound)

	_, err = s.svc.Quote(uuid.New(), "Tamil Nadu")
	assert.ErrorIs(s.T(), err, ErrBookNotFound)
}

func (s *CheckoutTestSuite) TestStartSessionRefusesUnavailablePhysical() {
	book := seedPhysicalBook(s.T(), s.db, "Out of Print", "A. Writer", 300)
	s.db.Model(&models.BookFormat{}).
		Where("book_id = ?", book.ID).
		Update("is_available", false)

	_, err := s.svc.StartSession(book.ID)
	assert.ErrorIs(s.T(), err, ErrNotPurchasable)
}

func (s *CheckoutTestSuite) TestStartSessionOpensAtShippingStep() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)

	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StepCollectingShippingInfo, sess.Step())
}

func (s *CheckoutTestSuite) TestQuoteHomeRegion() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)

	quote, err := s.svc.Quote(book.ID, "Tamil Nadu")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "50.00", quote.ShippingCost.StringFixed(2))
	assert.Equal(s.T(), "550.00", quote.TotalAmount.StringFixed(2))
	assert.True(s.T(), quote.InRegion)
}

func (s *CheckoutTestSuite) TestQuoteOtherRegion() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)

	quote, err := s.svc.Quote(book.ID, "Kerala")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "100.00", quote.ShippingCost.StringFixed(2))
	assert.Equal(s.T(), "600.00", quote.TotalAmount.StringFixed(2))
	assert.False(s.T(), quote.InRegion)
}

func (s *CheckoutTestSuite) TestQuoteEmptyRegionChargesHigherCost() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)

	quote, err := s.svc.Quote(book.ID, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "100.00", quote.ShippingCost.StringFixed(2))
}

func (s *CheckoutTestSuite) TestSubmitShippingRejectsInvalidDetails() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	details := validDetails()
	details.ShippingPincode = "0123"

	err = sess.SubmitShipping(details, nil)
	assert.Error(s.T(), err)
	assert.Equal(s.T(), StepCollectingShippingInfo, sess.Step())
}

func (s *CheckoutTestSuite) TestSubmitShippingAllowsMissingEmail() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	details := validDetails()
	details.CustomerEmail = ""

	require.NoError(s.T(), sess.SubmitShipping(details, nil))
	assert.Equal(s.T(), StepReviewingOrder, sess.Step())
}

func (s *CheckoutTestSuite) TestBackPreservesDetails() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	details := validDetails()
	require.NoError(s.T(), sess.SubmitShipping(details, nil))
	require.NoError(s.T(), sess.Back())

	assert.Equal(s.T(), StepCollectingShippingInfo, sess.Step())
	assert.Equal(s.T(), details, sess.Details())

	// Forward again without retyping
	require.NoError(s.T(), sess.SubmitShipping(sess.Details(), nil))
	assert.Equal(s.T(), StepReviewingOrder, sess.Step())
}

func (s *CheckoutTestSuite) TestSummaryMatchesShippingState() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	details := validDetails()
	details.ShippingState = "Maharashtra"
	require.NoError(s.T(), sess.SubmitShipping(details, nil))

	summary, err := sess.Summary()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "500.00", summary.UnitPrice.StringFixed(2))
	assert.Equal(s.T(), "100.00", summary.ShippingCost.StringFixed(2))
	assert.Equal(s.T(), "600.00", summary.TotalAmount.StringFixed(2))
	assert.False(s.T(), summary.InRegion)

	// A second read over unchanged state is identical
	again, err := sess.Summary()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), summary, again)
}

func (s *CheckoutTestSuite) TestSummaryOutsideReviewFails() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	_, err = sess.Summary()
	assert.ErrorIs(s.T(), err, ErrInvalidStep)
}

func (s *CheckoutTestSuite) TestPlaceOrderPersistsSnapshot() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.SubmitShipping(validDetails(), nil))

	order, err := s.svc.PlaceOrder(sess)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StepAwaitingPayment, sess.Step())

	assert.Equal(s.T(), book.ID, order.BookID)
	assert.Equal(s.T(), "Ponniyin Selvan", order.BookTitle)
	assert.Equal(s.T(), "Kalki", order.BookAuthor)
	assert.Equal(s.T(), "500.00", order.BookPrice.StringFixed(2))
	assert.Equal(s.T(), "50.00", order.ShippingCost.StringFixed(2))
	assert.Equal(s.T(), "550.00", order.TotalAmount.StringFixed(2))
	assert.True(s.T(), order.InRegion)
	assert.True(s.T(), order.IsGuest)
	assert.Equal(s.T(), models.OrderStatusPending, order.OrderStatus)
	assert.Equal(s.T(), models.PaymentStatusPending, order.PaymentStatus)
	assert.True(s.T(), strings.HasPrefix(order.OrderNumber, "ORD-"))

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *CheckoutTestSuite) TestPlaceOrderOutsideReviewFails() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)

	_, err = s.svc.PlaceOrder(sess)
	assert.ErrorIs(s.T(), err, ErrInvalidStep)
}

func (s *CheckoutTestSuite) TestPlaceOrderIdempotency() {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	key := "retry-key-123"

	sess, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)
	require.NoError(s.T(), sess.SubmitShipping(validDetails(), &key))

	first, err := s.svc.PlaceOrder(sess)
	require.NoError(s.T(), err)

	// A retried submission with the same key finds the existing order
	retry, err := s.svc.StartSession(book.ID)
	require.NoError(s.T(), err)
	require.NoError(s.T(), retry.SubmitShipping(validDetails(), &key))

	second, err := s.svc.PlaceOrder(retry)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, second.ID)
	assert.Equal(s.T(), first.OrderNumber, second.OrderNumber)

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *CheckoutTestSuite) TestWhatsAppMessageFormat() {
	order := &models.Order{
		BookTitle:   "Ponniyin Selvan",
		BookAuthor:  "Kalki",
		TotalAmount: mustDecimal("550"),
	}

	msg := WhatsAppMessage(order)
	assert.Equal(s.T(), `Hi, I have placed an order for "Ponniyin Selvan" by Kalki. Order Total: Rs.550.00`, msg)
}

func (s *CheckoutTestSuite) TestHandoffURLUsesSettingsNumber() {
	order := &models.Order{
		BookTitle:   "Ponniyin Selvan",
		BookAuthor:  "Kalki",
		TotalAmount: mustDecimal("550"),
	}
	settings := &models.SiteSettings{WhatsAppNumber: "+91 91234-56789"}

	link, err := s.svc.HandoffURL(settings, order)
	require.NoError(s.T(), err)

	parsed, err := url.Parse(link)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "wa.me", parsed.Host)
	assert.Equal(s.T(), "/919123456789", parsed.Path)
	assert.Equal(s.T(), WhatsAppMessage(order), parsed.Query().Get("text"))
}

func (s *CheckoutTestSuite) TestHandoffURLFallsBackToConfig() {
	order := &models.Order{
		BookTitle:   "Ponniyin Selvan",
		BookAuthor:  "Kalki",
		TotalAmount: mustDecimal("550"),
	}

	link, err := s.svc.HandoffURL(&models.SiteSettings{}, order)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), link, "wa.me/919876543210")
}

func (s *CheckoutTestSuite) TestHandoffURLWithoutNumberFails() {
	cfg := newTestConfig()
	cfg.WhatsApp.Number = ""
	svc := NewCheckoutService(s.db, cfg)

	order := &models.Order{TotalAmount: mustDecimal("550")}
	_, err := svc.HandoffURL(&models.SiteSettings{}, order)
	assert.ErrorIs(s.T(), err, ErrNoContactNumber)
}
