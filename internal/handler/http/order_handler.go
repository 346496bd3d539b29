package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/order"
)

type CreateOrderRequest struct {
	CustomerID    int64 `json:"customer_id" validate:"required,gt=0"`
	TableID       int64 `json:"table_id" validate:"required,gt=0"`
	WaiterID      int64 `json:"waiter_id" validate:"required,gt=0"`
	CustomerCount int   `json:"customer_count" validate:"required,gte=1"`
}

type AddItemRequest struct {
	DishID   int64   `json:"dish_id" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=255"`
}

type OrderResponse struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	TableID       int64     `json:"table_id"`
	TableNumber   int       `json:"table_number"`
	WaiterID      int64     `json:"waiter_id"`
	WaiterName    string    `json:"waiter_name"`
	CustomerCount int       `json:"customer_count"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type OrderItemResponse struct {
	ID        int64   `json:"id"`
	DishID    int64   `json:"dish_id"`
	DishName  string  `json:"dish_name"`
	UnitPrice string  `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  string  `json:"subtotal"`
	Notes     *string `json:"notes,omitempty"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

type RecalculateResponse struct {
	OrderID int64  `json:"order_id"`
	Total   string `json:"total"`
}

type KitchenTicketResponse struct {
	OrderID        int64               `json:"order_id"`
	TableNumber    int                 `json:"table_number"`
	WaiterName     string              `json:"waiter_name"`
	CreatedAt      time.Time           `json:"created_at"`
	ElapsedMinutes int                 `json:"elapsed_minutes"`
	Alert          bool                `json:"alert"`
	Items          []OrderItemResponse `json:"items"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Route("/orders", func(r chi.Router) {
		r.Post("/", h.handleCreateOrder)
		r.Get("/", h.handleListOrders)
		r.Route("/{order_id}", func(r chi.Router) {
			r.Get("/", h.handleGetOrder)
			r.Delete("/", h.handleDeleteOrder)
			r.Post("/items", h.handleAddItem)
			r.Delete("/items/{item_id}", h.handleRemoveItem)
			r.Patch("/close", h.handleCloseOrder)
			r.Patch("/cancel", h.handleCancelOrder)
			r.Post("/recalculate", h.handleRecalculateTotal)
		})
	})
	router.Get("/kitchen/tickets", h.handleKitchenTickets)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateOrderRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	detail, err := h.service.CreateOrder(r.Context(), order.CreateOrderInput{
		CustomerID: requestPayload.CustomerID,
		TableID:    requestPayload.TableID,
		WaiterID:   requestPayload.WaiterID,
		GuestCount: requestPayload.CustomerCount,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create order")
		return
	}

	log.Info().Int64("order_id", detail.ID).Int64("table_id", detail.TableID).Msg("Order opened")
	respondWithJSON(w, http.StatusCreated, toOrderDetailResponse(detail))
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	status := order.OrderStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))

	orders, err := h.service.ListOrders(r.Context(), order.ListFilter{Status: status})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list orders")
		return
	}

	responsePayload := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responsePayload = append(responsePayload, toOrderResponse(&orders[i]))
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	detail, err := h.service.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

func (h *OrderHandler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), orderID); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	var requestPayload AddItemRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	detail, err := h.service.AddItem(r.Context(), orderID, order.AddItemInput{
		DishID:   requestPayload.DishID,
		Quantity: requestPayload.Quantity,
		Notes:    requestPayload.Notes,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to add item")
		return
	}

	respondWithJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

func (h *OrderHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(w, r, "item_id")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), orderID, itemID); err != nil {
		respondWithServiceError(w, r, err, "Failed to remove item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) handleCloseOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	detail, err := h.service.CloseOrder(r.Context(), orderID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to close order")
		return
	}

	log.Info().Int64("order_id", detail.ID).Str("total", money(detail.Total)).Msg("Order closed")
	respondWithJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

func (h *OrderHandler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	detail, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to cancel order")
		return
	}

	log.Info().Int64("order_id", detail.ID).Msg("Order cancelled")
	respondWithJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

func (h *OrderHandler) handleRecalculateTotal(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "order_id")
	if !ok {
		return
	}

	total, err := h.service.RecalculateTotal(r.Context(), orderID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to recalculate order total")
		return
	}

	respondWithJSON(w, http.StatusOK, RecalculateResponse{OrderID: orderID, Total: money(total)})
}

func (h *OrderHandler) handleKitchenTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.KitchenTickets(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to load kitchen tickets")
		return
	}

	responsePayload := make([]KitchenTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responsePayload = append(responsePayload, KitchenTicketResponse{
			OrderID:        t.OrderID,
			TableNumber:    t.TableNumber,
			WaiterName:     t.WaiterName,
			CreatedAt:      t.CreatedAt,
			ElapsedMinutes: t.ElapsedMinutes,
			Alert:          t.Alert,
			Items:          toOrderItemResponses(t.Items),
		})
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		TableID:       o.TableID,
		TableNumber:   o.TableNumber,
		WaiterID:      o.WaiterID,
		WaiterName:    o.WaiterName,
		CustomerCount: o.GuestCount,
		Status:        o.Status.String(),
		Total:         money(o.Total),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderItemResponses(items []order.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItemResponse{
			ID:        item.ID,
			DishID:    item.DishID,
			DishName:  item.DishName,
			UnitPrice: money(item.UnitPrice),
			Quantity:  item.Quantity,
			Subtotal:  money(item.Subtotal),
			Notes:     item.Notes,
		})
	}
	return out
}

func toOrderDetailResponse(d *order.OrderDetail) OrderDetailResponse {
	return OrderDetailResponse{
		OrderResponse: toOrderResponse(&d.Order),
		Items:         toOrderItemResponses(d.Items),
	}
}
