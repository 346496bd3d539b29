package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/analytics"
)

type DailyRevenueResponse struct {
	Day        string `json:"day"`
	OrderCount int    `json:"order_count"`
	Revenue    string `json:"revenue"`
}

type DishPopularityResponse struct {
	DishID           int64  `json:"dish_id"`
	DishName         string `json:"dish_name"`
	Category         string `json:"category"`
	TotalSold        int    `json:"total_sold"`
	EstimatedRevenue string `json:"estimated_revenue"`
}

type WaiterPerformanceResponse struct {
	WaiterID            int64  `json:"waiter_id"`
	WaiterName          string `json:"waiter_name"`
	OrdersHandled       int    `json:"orders_handled"`
	TotalSales          string `json:"total_sales"`
	EstimatedCommission string `json:"estimated_commission"`
}

type AnalyticsHandler struct {
	service analytics.Service
}

func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router chi.Router) {
	router.Route("/analytics", func(r chi.Router) {
		r.Get("/revenue", h.handleRevenue)
		r.Get("/popular-dishes", h.handlePopularDishes)
		r.Get("/staff-performance", h.handleStaffPerformance)
	})
}

func (h *AnalyticsHandler) handleRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Revenue(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to load revenue report")
		return
	}

	responsePayload := make([]DailyRevenueResponse, 0, len(rows))
	for _, row := range rows {
		responsePayload = append(responsePayload, DailyRevenueResponse{
			Day:        row.Day.Format("2006-01-02"),
			OrderCount: row.OrderCount,
			Revenue:    money(row.Revenue),
		})
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *AnalyticsHandler) handlePopularDishes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	rows, err := h.service.PopularDishes(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to load popular dishes")
		return
	}

	responsePayload := make([]DishPopularityResponse, 0, len(rows))
	for _, row := range rows {
		responsePayload = append(responsePayload, DishPopularityResponse{
			DishID:           row.DishID,
			DishName:         row.DishName,
			Category:         row.Category,
			TotalSold:        row.TotalSold,
			EstimatedRevenue: money(row.EstimatedRevenue),
		})
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *AnalyticsHandler) handleStaffPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.StaffPerformance(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to load staff performance")
		return
	}

	responsePayload := make([]WaiterPerformanceResponse, 0, len(rows))
	for _, row := range rows {
		responsePayload = append(responsePayload, WaiterPerformanceResponse{
			WaiterID:            row.WaiterID,
			WaiterName:          row.WaiterName,
			OrdersHandled:       row.OrdersHandled,
			TotalSales:          money(row.TotalSales),
			EstimatedCommission: money(row.EstimatedCommission),
		})
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}
