// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidPayStatus = errors.New("invalid payment status")
)

// OrderService is the admin side of order management. Order creation lives in
// CheckoutService; this service only reads and annotates what checkout wrote.
type OrderService struct {
	db *gorm.DB
}

type OrderSearchParams struct {
	Query         string
	OrderStatus   string
	PaymentStatus string
	State         string
	Pagination    utils.PaginationParams
}

type UpdateOrderStatusRequest struct {
	OrderStatus models.OrderStatus `json:"order_status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" validate:"required"`
}

type UpdateOrderNotesRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=10000"`
}

// DashboardStats backs the admin landing page.
type DashboardStats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	OrdersToday     int64           `json:"orders_today"`
	TotalBooks      int64           `json:"total_books"`
	PendingComments int64           `json:"pending_comments"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListOrders filters by status, payment state, shipping state and a free-text
// query over order number, customer name and phone.
func (s *OrderService) ListOrders(params OrderSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{})

	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where(
			"order_number LIKE ? OR LOWER(customer_name) LIKE LOWER(?) OR customer_phone LIKE ?",
			like, like, like,
		)
	}
	if params.OrderStatus != "" {
		query = query.Where("order_status = ?", params.OrderStatus)
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.State != "" {
		query = query.Where("LOWER(shipping_state) LIKE LOWER(?)", "%"+params.State+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	query = utils.ApplySort(query, params.Pagination, []string{"created_at", "total_amount", "order_status", "customer_name"})
	if err := utils.ApplyPagination(query, params.Pagination).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params.Pagination)
	return &result, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// UpdateOrderStatus validates against the known status set and writes the new
// value. Any valid status may follow any other; concurrent admin edits resolve
// last-write-wins.
func (s *OrderService) UpdateOrderStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !req.OrderStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	previous := order.OrderStatus
	if err := s.db.Model(order).Update("order_status", req.OrderStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.OrderStatus = req.OrderStatus

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"from":         previous,
		"to":           req.OrderStatus,
	}).Info("Order status updated")

	return order, nil
}

func (s *OrderService) UpdatePaymentStatus(id uuid.UUID, req *UpdatePaymentStatusRequest) (*models.Order, error) {
	if !req.PaymentStatus.Valid() {
		return nil, ErrInvalidPayStatus
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("payment_status", req.PaymentStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	order.PaymentStatus = req.PaymentStatus
	return order, nil
}

func (s *OrderService) UpdateOrderNotes(id uuid.UUID, req *UpdateOrderNotesRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("admin_notes", req.AdminNotes).Error; err != nil {
		return nil, fmt.Errorf("failed to update order notes: %w", err)
	}
	order.AdminNotes = req.AdminNotes
	return order, nil
}

// GetDashboardStats aggregates the admin landing-page counters. Revenue counts
// orders whose payment completed.
func (s *OrderService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{TotalRevenue: decimal.Zero}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	s.db.Model(&models.Order{}).
		Where("order_status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders)
	s.db.Model(&models.Order{}).
		Where("order_status = ?", models.OrderStatusDelivered).
		Count(&stats.CompletedOrders)

	today := time.Now().Truncate(24 * time.Hour)
	s.db.Model(&models.Order{}).Where("created_at >= ?", today).Count(&stats.OrdersToday)

	var paidOrders []models.Order
	if err := s.db.Select("total_amount").
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Find(&paidOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	for i := range paidOrders {
		stats.TotalRevenue = stats.TotalRevenue.Add(paidOrders[i].TotalAmount)
	}

	s.db.Model(&models.Book{}).Count(&stats.TotalBooks)
	s.db.Model(&models.BlogComment{}).Where("is_approved = ?", false).Count(&stats.PendingComments)

	return stats, nil
}
