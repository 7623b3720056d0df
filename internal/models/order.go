// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the persisted checkout result. The book fields are a snapshot taken
// at creation time; total_amount = book_price + shipping_cost and is never
// recomputed afterwards.
type Order struct {
	BaseModel
	OrderNumber string `json:"order_number" gorm:"size:30;uniqueIndex;not null"`

	// Book snapshot
	BookID     uuid.UUID       `json:"book_id" gorm:"type:uuid;not null;index"`
	BookTitle  string          `json:"book_title" gorm:"size:255;not null"`
	BookAuthor string          `json:"book_author" gorm:"size:255;not null"`
	BookPrice  decimal.Decimal `json:"book_price" gorm:"type:decimal(10,2);not null"`

	ShippingCost decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`

	// Buyer details
	CustomerName     string `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail    string `json:"customer_email,omitempty" gorm:"size:255"`
	CustomerPhone    string `json:"customer_phone" gorm:"size:20;not null"`
	CustomerWhatsApp string `json:"customer_whatsapp" gorm:"size:20;not null"`
	ShippingAddress  string `json:"shipping_address" gorm:"type:text;not null"`
	ShippingPincode  string `json:"shipping_pincode" gorm:"size:10;not null"`
	ShippingState    string `json:"shipping_state" gorm:"size:100;not null"`
	InRegion         bool   `json:"in_region" gorm:"default:false"`
	IsGuest          bool   `json:"is_guest" gorm:"default:true"`

	// Protects a retried submission from creating a duplicate row.
	IdempotencyKey *string `json:"idempotency_key,omitempty" gorm:"size:64;uniqueIndex"`

	// Admin-driven lifecycle, orthogonal to the storefront workflow steps.
	OrderStatus   OrderStatus   `json:"order_status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	AdminNotes    string        `json:"admin_notes,omitempty" gorm:"type:text"`
}
