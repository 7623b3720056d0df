// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/config"
	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/pricing"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

var (
	// ErrNotPurchasable means the book has no physical format; checkout never
	// starts and the caller shows a terminal "not available" message.
	ErrNotPurchasable = errors.New("book is not available for purchase")

	// ErrInvalidStep means the requested action does not belong to the
	// session's current step.
	ErrInvalidStep = errors.New("action not valid in current checkout step")

	// ErrOrderNotPlaced wraps a failed insert; the session stays in review and
	// the buyer may retry.
	ErrOrderNotPlaced = errors.New("order could not be placed")

	// ErrNoContactNumber means neither site settings nor configuration carry a
	// WhatsApp number to hand the order off to.
	ErrNoContactNumber = errors.New("no whatsapp contact number configured")
)

type CheckoutStep string

const (
	StepCollectingShippingInfo CheckoutStep = "collecting_shipping_info"
	StepReviewingOrder         CheckoutStep = "reviewing_order"
	StepAwaitingPayment        CheckoutStep = "awaiting_payment"
)

type CheckoutService struct {
	db   *gorm.DB
	cfg  *config.Config
	rule *pricing.Rule
}

// ShippingDetails is the state captured in the first workflow step. Email is
// the only optional field.
type ShippingDetails struct {
	CustomerName     string `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail    string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone    string `json:"customer_phone" validate:"required,phone"`
	CustomerWhatsApp string `json:"customer_whatsapp" validate:"required,phone"`
	ShippingAddress  string `json:"shipping_address" validate:"required,min=10"`
	ShippingPincode  string `json:"shipping_pincode" validate:"required,pincode"`
	ShippingState    string `json:"shipping_state" validate:"required"`
}

// OrderSummary is what the buyer confirms before the order is persisted. It is
// a pure projection of the captured session state.
type OrderSummary struct {
	BookID       uuid.UUID       `json:"book_id"`
	BookTitle    string          `json:"book_title"`
	BookAuthor   string          `json:"book_author"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InRegion     bool            `json:"in_region"`
	Details      ShippingDetails `json:"details"`
}

// CheckoutSession is the single-buyer order workflow:
//
//	CollectingShippingInfo -> ReviewingOrder -> AwaitingPayment
//
// Back-navigation from review preserves the captured details. The pricing rule
// is injected at session start, so summaries never reach for ambient state.
type CheckoutSession struct {
	step           CheckoutStep
	book           models.Book
	physical       models.BookFormat
	details        ShippingDetails
	rule           *pricing.Rule
	idempotencyKey *string
	order          *models.Order
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config) *CheckoutService {
	return &CheckoutService{
		db:   db,
		cfg:  cfg,
		rule: pricing.NewRule(cfg.Shipping),
	}
}

// StartSession loads the book and refuses to begin checkout when it has no
// physical format. That guard runs before the first step is ever entered.
func (s *CheckoutService) StartSession(bookID uuid.UUID) (*CheckoutSession, error) {
	var book models.Book
	if err := s.db.Preload("Formats").First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	physical := book.PhysicalFormat()
	if physical == nil || !physical.IsAvailable {
		return nil, ErrNotPurchasable
	}

	return &CheckoutSession{
		step:     StepCollectingShippingInfo,
		book:     book,
		physical: *physical,
		rule:     s.rule,
	}, nil
}

// Quote reprices live against the current region text. It hits the catalog for
// the unit price but performs no writes; callers invoke it on every region
// change so the displayed total always matches the visible form.
func (s *CheckoutService) Quote(bookID uuid.UUID, region string) (*pricing.Quote, error) {
	var book models.Book
	if err := s.db.Preload("Formats").First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	physical := book.PhysicalFormat()
	if physical == nil || !physical.IsAvailable {
		return nil, ErrNotPurchasable
	}

	q := s.rule.Quote(physical.Price, region)
	return &q, nil
}

func (sess *CheckoutSession) Step() CheckoutStep {
	return sess.step
}

func (sess *CheckoutSession) Details() ShippingDetails {
	return sess.details
}

func (sess *CheckoutSession) Order() *models.Order {
	return sess.order
}

// SubmitShipping validates the captured details and advances to review. On
// validation failure the session stays where it is. An idempotency key, when
// the client supplies one, is attached on entering review so a retried
// placement cannot create a duplicate order.
func (sess *CheckoutSession) SubmitShipping(details ShippingDetails, idempotencyKey *string) error {
	if sess.step != StepCollectingShippingInfo {
		return ErrInvalidStep
	}

	if err := utils.ValidateStruct(&details); err != nil {
		return err
	}

	sess.details = details
	sess.idempotencyKey = idempotencyKey
	sess.step = StepReviewingOrder
	return nil
}

// Back returns from review to the shipping form. The captured details are
// kept intact so nothing is retyped.
func (sess *CheckoutSession) Back() error {
	if sess.step != StepReviewingOrder {
		return ErrInvalidStep
	}
	sess.step = StepCollectingShippingInfo
	return nil
}

// Summary projects the session state into the review screen. Repeated calls
// over unchanged state yield identical values.
func (sess *CheckoutSession) Summary() (*OrderSummary, error) {
	if sess.step != StepReviewingOrder {
		return nil, ErrInvalidStep
	}

	q := sess.rule.Quote(sess.physical.Price, sess.details.ShippingState)
	return &OrderSummary{
		BookID:       sess.book.ID,
		BookTitle:    sess.book.Title,
		BookAuthor:   sess.book.Author,
		UnitPrice:    q.UnitPrice,
		ShippingCost: q.ShippingCost,
		TotalAmount:  q.TotalAmount,
		InRegion:     q.InRegion,
		Details:      sess.details,
	}, nil
}

// PlaceOrder persists exactly one order row with the book snapshot and the
// amounts computed at this moment; they are never recomputed afterwards. On
// insert failure the session remains in review and the buyer may retry. A
// retry carrying the same idempotency key returns the already-created order.
func (s *CheckoutService) PlaceOrder(sess *CheckoutSession) (*models.Order, error) {
	if sess.step != StepReviewingOrder {
		return nil, ErrInvalidStep
	}

	if sess.idempotencyKey != nil {
		var existing models.Order
		err := s.db.First(&existing, "idempotency_key = ?", *sess.idempotencyKey).Error
		if err == nil {
			sess.order = &existing
			sess.step = StepAwaitingPayment
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrOrderNotPlaced, err)
		}
	}

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderNotPlaced, err)
	}

	q := sess.rule.Quote(sess.physical.Price, sess.details.ShippingState)

	order := &models.Order{
		OrderNumber:      orderNumber,
		BookID:           sess.book.ID,
		BookTitle:        sess.book.Title,
		BookAuthor:       sess.book.Author,
		BookPrice:        q.UnitPrice,
		ShippingCost:     q.ShippingCost,
		TotalAmount:      q.TotalAmount,
		CustomerName:     sess.details.CustomerName,
		CustomerEmail:    sess.details.CustomerEmail,
		CustomerPhone:    sess.details.CustomerPhone,
		CustomerWhatsApp: sess.details.CustomerWhatsApp,
		ShippingAddress:  sess.details.ShippingAddress,
		ShippingPincode:  sess.details.ShippingPincode,
		ShippingState:    sess.details.ShippingState,
		InRegion:         q.InRegion,
		IsGuest:          true,
		IdempotencyKey:   sess.idempotencyKey,
		OrderStatus:      models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
	}

	if err := s.db.Create(order).Error; err != nil {
		logrus.WithError(err).WithField("book_id", sess.book.ID).Error("Failed to persist order")
		return nil, fmt.Errorf("%w: %v", ErrOrderNotPlaced, err)
	}

	sess.order = order
	sess.step = StepAwaitingPayment

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount.StringFixed(2),
		"in_region":    order.InRegion,
	}).Info("Order placed")

	return order, nil
}

// WhatsAppMessage is the pre-filled text carried by the handoff URL.
func WhatsAppMessage(order *models.Order) string {
	return fmt.Sprintf("Hi, I have placed an order for \"%s\" by %s. Order Total: Rs.%s",
		order.BookTitle, order.BookAuthor, order.TotalAmount.StringFixed(2))
}

// HandoffURL builds the one-way messaging link for the payment step. The
// contact number comes from site settings, falling back to configuration, and
// is stripped to digits before use. The workflow never awaits a reply.
func (s *CheckoutService) HandoffURL(settings *models.SiteSettings, order *models.Order) (string, error) {
	number := s.cfg.WhatsApp.Number
	if settings != nil && settings.WhatsAppNumber != "" {
		number = settings.WhatsAppNumber
	}

	digits := stripNonDigits(number)
	if digits == "" {
		return "", ErrNoContactNumber
	}

	return fmt.Sprintf("https://%s/%s?text=%s",
		s.cfg.WhatsApp.Host, digits, url.QueryEscape(WhatsAppMessage(order))), nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
