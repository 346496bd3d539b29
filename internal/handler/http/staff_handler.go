package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/staff"
)

type HireWaiterRequest struct {
	Name       string              `json:"name" validate:"required,min=2,max=100"`
	CPF        string              `json:"cpf" validate:"required,cpf"`
	Salary     decimal.Decimal     `json:"salary" validate:"required,gt=0"`
	Shift      *string             `json:"shift,omitempty" validate:"omitempty,max=20"`
	Commission decimal.NullDecimal `json:"commission"`
}

type HireChefRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=100"`
	CPF       string          `json:"cpf" validate:"required,cpf"`
	Salary    decimal.Decimal `json:"salary" validate:"required,gt=0"`
	Specialty *string         `json:"specialty,omitempty" validate:"omitempty,max=50"`
}

type WaiterResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CPF        string    `json:"cpf"`
	Salary     string    `json:"salary"`
	Shift      *string   `json:"shift,omitempty"`
	Commission *string   `json:"commission,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChefResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Salary    string    `json:"salary"`
	Specialty *string   `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type StaffHandler struct {
	service  staff.Service
	validate *validator.Validate
}

func NewStaffHandler(service staff.Service) *StaffHandler {
	return &StaffHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *StaffHandler) RegisterRoutes(router chi.Router) {
	router.Route("/staff", func(r chi.Router) {
		r.Get("/waiters", h.handleListWaiters)
		r.Post("/waiters", h.handleHireWaiter)
		r.Delete("/waiters/{waiter_id}", h.handleDismissWaiter)
		r.Get("/chefs", h.handleListChefs)
		r.Post("/chefs", h.handleHireChef)
		r.Delete("/chefs/{chef_id}", h.handleDismissChef)
	})
}

func (h *StaffHandler) handleListWaiters(w http.ResponseWriter, r *http.Request) {
	waiters, err := h.service.ListWaiters(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list waiters")
		return
	}

	responsePayload := make([]WaiterResponse, 0, len(waiters))
	for i := range waiters {
		responsePayload = append(responsePayload, toWaiterResponse(&waiters[i]))
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *StaffHandler) handleHireWaiter(w http.ResponseWriter, r *http.Request) {
	var requestPayload HireWaiterRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	hired, err := h.service.HireWaiter(r.Context(), &staff.Waiter{
		Name:       requestPayload.Name,
		CPF:        requestPayload.CPF,
		Salary:     requestPayload.Salary,
		Shift:      requestPayload.Shift,
		Commission: requestPayload.Commission,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to hire waiter")
		return
	}

	respondWithJSON(w, http.StatusCreated, toWaiterResponse(hired))
}

func (h *StaffHandler) handleDismissWaiter(w http.ResponseWriter, r *http.Request) {
	waiterID, ok := parseIDParam(w, r, "waiter_id")
	if !ok {
		return
	}

	if err := h.service.DismissWaiter(r.Context(), waiterID); err != nil {
		respondWithServiceError(w, r, err, "Failed to dismiss waiter")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StaffHandler) handleListChefs(w http.ResponseWriter, r *http.Request) {
	chefs, err := h.service.ListChefs(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list chefs")
		return
	}

	responsePayload := make([]ChefResponse, 0, len(chefs))
	for i := range chefs {
		responsePayload = append(responsePayload, toChefResponse(&chefs[i]))
	}
	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *StaffHandler) handleHireChef(w http.ResponseWriter, r *http.Request) {
	var requestPayload HireChefRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	hired, err := h.service.HireChef(r.Context(), &staff.Chef{
		Name:      requestPayload.Name,
		CPF:       requestPayload.CPF,
		Salary:    requestPayload.Salary,
		Specialty: requestPayload.Specialty,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to hire chef")
		return
	}

	respondWithJSON(w, http.StatusCreated, toChefResponse(hired))
}

func (h *StaffHandler) handleDismissChef(w http.ResponseWriter, r *http.Request) {
	chefID, ok := parseIDParam(w, r, "chef_id")
	if !ok {
		return
	}

	if err := h.service.DismissChef(r.Context(), chefID); err != nil {
		respondWithServiceError(w, r, err, "Failed to dismiss chef")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toWaiterResponse(w *staff.Waiter) WaiterResponse {
	return WaiterResponse{
		ID:         w.ID,
		Name:       w.Name,
		CPF:        w.CPF,
		Salary:     money(w.Salary),
		Shift:      w.Shift,
		Commission: optionalMoney(w.Commission),
		CreatedAt:  w.CreatedAt,
	}
}

func toChefResponse(c *staff.Chef) ChefResponse {
	return ChefResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Salary:    money(c.Salary),
		Specialty: c.Specialty,
		CreatedAt: c.CreatedAt,
	}
}
