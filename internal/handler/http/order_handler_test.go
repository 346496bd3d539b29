package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	restHttp "github.com/gbrl-pnhr/TrabalhoFinalBD/internal/handler/http"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/order"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in order.CreateOrderInput) (*order.OrderDetail, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderDetail), args.Error(1)
}

func (m *MockOrderService) GetOrderDetails(ctx context.Context, id int64) (*order.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderDetail), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) AddItem(ctx context.Context, orderID int64, in order.AddItemInput) (*order.OrderDetail, error) {
	args := m.Called(ctx, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderDetail), args.Error(1)
}

func (m *MockOrderService) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *MockOrderService) CloseOrder(ctx context.Context, id int64) (*order.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderDetail), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, id int64) (*order.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderDetail), args.Error(1)
}

func (m *MockOrderService) RecalculateTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) KitchenTickets(ctx context.Context) ([]order.KitchenTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.KitchenTicket), args.Error(1)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	router := chi.NewRouter()
	restHttp.NewOrderHandler(svc).RegisterRoutes(router)
	return router
}

func sampleDetail() *order.OrderDetail {
	created := time.Date(2026, 5, 10, 19, 30, 0, 0, time.UTC)
	return &order.OrderDetail{
		Order: order.Order{
			ID:           7,
			CustomerID:   1,
			CustomerName: "Ana Souza",
			TableID:      2,
			TableNumber:  12,
			WaiterID:     1,
			WaiterName:   "Carlos Lima",
			GuestCount:   2,
			Status:       order.StatusOpen,
			Total:        decimal.RequireFromString("133"),
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		Items: []order.OrderItem{
			{ID: 1, OrderID: 7, DishID: 5, DishName: "Picanha", UnitPrice: decimal.RequireFromString("85"), Quantity: 1, Subtotal: decimal.RequireFromString("85")},
			{ID: 2, OrderID: 7, DishID: 11, DishName: "Caipirinha", UnitPrice: decimal.RequireFromString("24"), Quantity: 2, Subtotal: decimal.RequireFromString("48")},
		},
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var errorResponse map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse), "Failed to decode error response body")
	return errorResponse["error"]
}

func TestOrderHandler_handleCreateOrder_Success(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("CreateOrder", mock.Anything, order.CreateOrderInput{
		CustomerID: 1, TableID: 2, WaiterID: 1, GuestCount: 2,
	}).Return(sampleDetail(), nil).Once()

	body := `{"customer_id":1,"table_id":2,"waiter_id":1,"customer_count":2}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var actual restHttp.OrderDetailResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actual))
	assert.Equal(t, int64(7), actual.ID)
	assert.Equal(t, "OPEN", actual.Status)
	assert.Equal(t, "133.00", actual.Total)
	assert.Equal(t, 2, actual.CustomerCount)
	require.Len(t, actual.Items, 2)
	assert.Equal(t, "48.00", actual.Items[1].Subtotal)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleCreateOrder_ValidationError(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	body := `{"customer_id":1,"table_id":0,"waiter_id":1,"customer_count":0}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse restHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Equal(t, "Validation failed", errorResponse.Error)
	assert.Contains(t, errorResponse.Details, "table_id")
	assert.Contains(t, errorResponse.Details, "customer_count")
	mockService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_handleCreateOrder_UnknownField(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	body := `{"customer_id":1,"table_id":2,"waiter_id":1,"customer_count":2,"discount":10}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "Invalid request payload")
}

func TestOrderHandler_handleCreateOrder_CapacityExceeded(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	capacityErr := apperr.Detailf(order.ErrCapacityExceeded, "table capacity exceeded: table %d seats %d, got %d guests", 12, 4, 5)
	mockService.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, capacityErr).Once()

	body := `{"customer_id":1,"table_id":2,"waiter_id":1,"customer_count":5}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "table capacity exceeded: table 12 seats 4, got 5 guests", decodeError(t, rr))
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleGetOrder(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m *MockOrderService)
		wantStatus int
		wantError  string
	}{
		{
			name: "found",
			path: "/orders/7",
			setup: func(m *MockOrderService) {
				m.On("GetOrderDetails", mock.Anything, int64(7)).Return(sampleDetail(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/orders/99",
			setup: func(m *MockOrderService) {
				m.On("GetOrderDetails", mock.Anything, int64(99)).Return(nil, order.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantError:  "order not found",
		},
		{
			name:       "invalid id",
			path:       "/orders/abc",
			setup:      func(m *MockOrderService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid order_id parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			tt.setup(mockService)
			router := newOrderRouter(mockService)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_handleAddItem_OrderNotOpen(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	notOpen := apperr.Detailf(order.ErrOrderNotOpen, "cannot modify a %s order", order.StatusClosed)
	mockService.On("AddItem", mock.Anything, int64(7), order.AddItemInput{DishID: 5, Quantity: 1}).
		Return(nil, notOpen).Once()

	req := httptest.NewRequest(http.MethodPost, "/orders/7/items", bytes.NewBufferString(`{"dish_id":5,"quantity":1}`))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "cannot modify a CLOSED order", decodeError(t, rr))
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleRemoveItem_NoContent(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("RemoveItem", mock.Anything, int64(7), int64(2)).Return(nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/orders/7/items/2", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleCloseOrder_InvalidTransition(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("CloseOrder", mock.Anything, int64(7)).Return(nil, order.ErrInvalidStatusTransition).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/orders/7/close", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid order status transition", decodeError(t, rr))
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleRecalculateTotal(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("RecalculateTotal", mock.Anything, int64(7)).Return(decimal.RequireFromString("48"), nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/orders/7/recalculate", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var actual restHttp.RecalculateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actual))
	assert.Equal(t, restHttp.RecalculateResponse{OrderID: 7, Total: "48.00"}, actual)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleListOrders_StatusFilter(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("ListOrders", mock.Anything, order.ListFilter{Status: order.StatusOpen}).
		Return([]order.Order{sampleDetail().Order}, nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders?status=open", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var actual []restHttp.OrderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actual))
	require.Len(t, actual, 1)
	assert.Equal(t, "Ana Souza", actual[0].CustomerName)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleDeleteOrder_HasReviews(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("DeleteOrder", mock.Anything, int64(7)).Return(order.ErrOrderHasReviews).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/orders/7", nil))

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "order has reviews and cannot be deleted", decodeError(t, rr))
	mockService.AssertExpectations(t)
}

func TestOrderHandler_handleKitchenTickets_InternalError(t *testing.T) {
	mockService := new(MockOrderService)
	router := newOrderRouter(mockService)

	mockService.On("KitchenTickets", mock.Anything).Return(nil, assert.AnError).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kitchen/tickets", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to load kitchen tickets", decodeError(t, rr))
	mockService.AssertExpectations(t)
}
