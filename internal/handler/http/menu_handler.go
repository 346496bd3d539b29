package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/menu"
)

type CreateDishRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Price    decimal.Decimal `json:"price" validate:"required,gt=0"`
	Category string          `json:"category" validate:"required,max=50"`
}

type UpdateDishRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Price    *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category *string          `json:"category,omitempty" validate:"omitempty,max=50"`
}

type DishResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MenuHandler struct {
	service  menu.Service
	validate *validator.Validate
}

func NewMenuHandler(service menu.Service) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *MenuHandler) RegisterRoutes(router chi.Router) {
	router.Route("/menu", func(r chi.Router) {
		r.Get("/categories", h.handleListCategories)
		r.Get("/dishes", h.handleListDishes)
		r.Post("/dishes", h.handleCreateDish)
		r.Get("/dishes/{dish_id}", h.handleGetDish)
		r.Patch("/dishes/{dish_id}", h.handleUpdateDish)
		r.Delete("/dishes/{dish_id}", h.handleDeleteDish)
	})
}

func (h *MenuHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}

	respondWithJSON(w, http.StatusOK, categories)
}

func (h *MenuHandler) handleListDishes(w http.ResponseWriter, r *http.Request) {
	filter := menu.ListFilter{Category: r.URL.Query().Get("category")}

	dishes, err := h.service.ListDishes(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list dishes")
		return
	}

	responsePayload := make([]DishResponse, 0, len(dishes))
	for i := range dishes {
		responsePayload = append(responsePayload, toDishResponse(&dishes[i]))
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *MenuHandler) handleCreateDish(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateDishRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.CreateDish(r.Context(), &menu.Dish{
		Name:     requestPayload.Name,
		Price:    requestPayload.Price,
		Category: requestPayload.Category,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create dish")
		return
	}

	respondWithJSON(w, http.StatusCreated, toDishResponse(created))
}

func (h *MenuHandler) handleGetDish(w http.ResponseWriter, r *http.Request) {
	dishID, ok := parseIDParam(w, r, "dish_id")
	if !ok {
		return
	}

	dish, err := h.service.GetDish(r.Context(), dishID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to get dish")
		return
	}

	respondWithJSON(w, http.StatusOK, toDishResponse(dish))
}

func (h *MenuHandler) handleUpdateDish(w http.ResponseWriter, r *http.Request) {
	dishID, ok := parseIDParam(w, r, "dish_id")
	if !ok {
		return
	}

	var requestPayload UpdateDishRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated, err := h.service.UpdateDish(r.Context(), dishID, menu.DishUpdate{
		Name:     requestPayload.Name,
		Price:    requestPayload.Price,
		Category: requestPayload.Category,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to update dish")
		return
	}

	respondWithJSON(w, http.StatusOK, toDishResponse(updated))
}

func (h *MenuHandler) handleDeleteDish(w http.ResponseWriter, r *http.Request) {
	dishID, ok := parseIDParam(w, r, "dish_id")
	if !ok {
		return
	}

	if err := h.service.DeleteDish(r.Context(), dishID); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete dish")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDishResponse(d *menu.Dish) DishResponse {
	return DishResponse{
		ID:        d.ID,
		Name:      d.Name,
		Price:     money(d.Price),
		Category:  d.Category,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
