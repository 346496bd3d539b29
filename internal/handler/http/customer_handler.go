package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/customer"
)

type CustomerRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type CustomerHandler struct {
	service  customer.Service
	validate *validator.Validate
}

func NewCustomerHandler(service customer.Service) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *CustomerHandler) RegisterRoutes(router chi.Router) {
	router.Route("/customers", func(r chi.Router) {
		r.Get("/", h.handleListCustomers)
		r.Post("/", h.handleCreateCustomer)
		r.Get("/{customer_id}", h.handleGetCustomer)
		r.Put("/{customer_id}", h.handleUpdateCustomer)
		r.Delete("/{customer_id}", h.handleDeleteCustomer)
	})
}

func (h *CustomerHandler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list customers")
		return
	}
	if customers == nil {
		customers = []customer.Customer{}
	}

	respondWithJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var requestPayload CustomerRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), &customer.Customer{
		Name:  requestPayload.Name,
		Email: requestPayload.Email,
		Phone: requestPayload.Phone,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create customer")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *CustomerHandler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, r, "customer_id")
	if !ok {
		return
	}

	found, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to get customer")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *CustomerHandler) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, r, "customer_id")
	if !ok {
		return
	}

	var requestPayload CustomerRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), &customer.Customer{
		ID:    customerID,
		Name:  requestPayload.Name,
		Email: requestPayload.Email,
		Phone: requestPayload.Phone,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to update customer")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, r, "customer_id")
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
