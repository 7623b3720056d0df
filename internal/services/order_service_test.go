// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/models"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

type OrderTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *OrderService
}

func (s *OrderTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewOrderService(s.db)
}

func TestOrderTestSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}

func (s *OrderTestSuite) placeOrder(state string) *models.Order {
	book := seedPhysicalBook(s.T(), s.db, "Ponniyin Selvan", "Kalki", 500)
	checkout := NewCheckoutService(s.db, newTestConfig())

	sess, err := checkout.StartSession(book.ID)
	require.NoError(s.T(), err)

	details := validDetails()
	details.ShippingState = state
	require.NoError(s.T(), sess.SubmitShipping(details, nil))

	order, err := checkout.PlaceOrder(sess)
	require.NoError(s.T(), err)
	return order
}

func (s *OrderTestSuite) TestListOrdersFiltersByStatus() {
	order := s.placeOrder("Tamil Nadu")
	_, err := s.svc.UpdateOrderStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatusShipped,
	})
	require.NoError(s.T(), err)
	s.placeOrder("Kerala")

	result, err := s.svc.ListOrders(OrderSearchParams{
		OrderStatus: string(models.OrderStatusShipped),
		Pagination:  utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), result.Total)

	all, err := s.svc.ListOrders(OrderSearchParams{
		Pagination: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), all.Total)
}

func (s *OrderTestSuite) TestListOrdersFiltersByState() {
	s.placeOrder("Tamil Nadu")
	s.placeOrder("Kerala")

	result, err := s.svc.ListOrders(OrderSearchParams{
		State:      "kerala",
		Pagination: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), result.Total)
}

func (s *OrderTestSuite) TestGetOrderByNumber() {
	order := s.placeOrder("Tamil Nadu")

	found, err := s.svc.GetOrderByNumber(order.OrderNumber)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), order.ID, found.ID)

	_, err = s.svc.GetOrderByNumber("ORD-00000000-XXXXXX")
	assert.ErrorIs(s.T(), err, ErrOrderNotFound)
}

func (s *OrderTestSuite) TestUpdateOrderStatusRejectsUnknownValue() {
	order := s.placeOrder("Tamil Nadu")

	_, err := s.svc.UpdateOrderStatus(order.ID, &UpdateOrderStatusRequest{
		OrderStatus: models.OrderStatus("teleported"),
	})
	assert.ErrorIs(s.T(), err, ErrInvalidStatus)

	// Stored value untouched
	stored, err := s.svc.GetOrder(order.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.OrderStatusPending, stored.OrderStatus)
}

func (s *OrderTestSuite) TestUpdateOrderStatusAllowsAnyValidValue() {
	order := s.placeOrder("Tamil Nadu")

	// The status dropdown is free; delivered may go straight back to pending
	for _, status := range []models.OrderStatus{
		models.OrderStatusDelivered,
		models.OrderStatusPending,
		models.OrderStatusCancelled,
	} {
		updated, err := s.svc.UpdateOrderStatus(order.ID, &UpdateOrderStatusRequest{OrderStatus: status})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), status, updated.OrderStatus)
	}
}

func (s *OrderTestSuite) TestUpdatePaymentStatus() {
	order := s.placeOrder("Tamil Nadu")

	updated, err := s.svc.UpdatePaymentStatus(order.ID, &UpdatePaymentStatusRequest{
		PaymentStatus: models.PaymentStatusCompleted,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.PaymentStatusCompleted, updated.PaymentStatus)

	_, err = s.svc.UpdatePaymentStatus(order.ID, &UpdatePaymentStatusRequest{
		PaymentStatus: models.PaymentStatus("refunded-maybe"),
	})
	assert.ErrorIs(s.T(), err, ErrInvalidPayStatus)
}

func (s *OrderTestSuite) TestUpdateOrderNotes() {
	order := s.placeOrder("Tamil Nadu")

	updated, err := s.svc.UpdateOrderNotes(order.ID, &UpdateOrderNotesRequest{
		AdminNotes: "Customer asked for gift wrapping",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Customer asked for gift wrapping", updated.AdminNotes)
}

func (s *OrderTestSuite) TestDashboardStats() {
	paid := s.placeOrder("Tamil Nadu") // 550
	s.placeOrder("Kerala")             // 600, unpaid

	_, err := s.svc.UpdatePaymentStatus(paid.ID, &UpdatePaymentStatusRequest{
		PaymentStatus: models.PaymentStatusCompleted,
	})
	require.NoError(s.T(), err)

	stats, err := s.svc.GetDashboardStats()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), stats.TotalOrders)
	assert.Equal(s.T(), int64(2), stats.PendingOrders)
	assert.Equal(s.T(), "550.00", stats.TotalRevenue.StringFixed(2))
	assert.Equal(s.T(), int64(2), stats.TotalBooks)
}
