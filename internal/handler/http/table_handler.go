package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/table"
)

type CreateTableRequest struct {
	Number   int    `json:"number" validate:"required,gt=0"`
	Capacity int    `json:"capacity" validate:"required,gte=1,lte=50"`
	Location string `json:"location" validate:"required,max=50"`
}

type TableHandler struct {
	service  table.Service
	validate *validator.Validate
}

func NewTableHandler(service table.Service) *TableHandler {
	return &TableHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *TableHandler) RegisterRoutes(router chi.Router) {
	router.Route("/tables", func(r chi.Router) {
		r.Get("/", h.handleListTables)
		r.Post("/", h.handleCreateTable)
		r.Get("/{table_id}", h.handleGetTable)
		r.Delete("/{table_id}", h.handleDeleteTable)
	})
}

func (h *TableHandler) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list tables")
		return
	}
	if tables == nil {
		tables = []table.Table{}
	}

	respondWithJSON(w, http.StatusOK, tables)
}

func (h *TableHandler) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateTableRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.CreateTable(r.Context(), &table.Table{
		Number:   requestPayload.Number,
		Capacity: requestPayload.Capacity,
		Location: requestPayload.Location,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create table")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *TableHandler) handleGetTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseIDParam(w, r, "table_id")
	if !ok {
		return
	}

	found, err := h.service.GetTable(r.Context(), tableID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to get table")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *TableHandler) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseIDParam(w, r, "table_id")
	if !ok {
		return
	}

	if err := h.service.DeleteTable(r.Context(), tableID); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete table")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
