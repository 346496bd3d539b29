package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/review"
)

type CreateReviewRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required,gt=0"`
	DishID     int64   `json:"dish_id" validate:"required,gt=0"`
	OrderID    int64   `json:"order_id" validate:"required,gt=0"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type ReviewHandler struct {
	service  review.Service
	validate *validator.Validate
}

func NewReviewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: NewValidator(),
	}
}

func (h *ReviewHandler) RegisterRoutes(router chi.Router) {
	router.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.handleCreateReview)
		r.Get("/dish/{dish_id}", h.handleListByDish)
		r.Get("/{review_id}", h.handleGetReview)
		r.Patch("/{review_id}", h.handleUpdateReview)
		r.Delete("/{review_id}", h.handleDeleteReview)
	})
}

func (h *ReviewHandler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateReviewRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.CreateReview(r.Context(), &review.Review{
		CustomerID: requestPayload.CustomerID,
		DishID:     requestPayload.DishID,
		OrderID:    requestPayload.OrderID,
		Rating:     requestPayload.Rating,
		Comment:    requestPayload.Comment,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create review")
		return
	}

	log.Info().Int64("review_id", created.ID).Int64("dish_id", created.DishID).Msg("Review created")
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseIDParam(w, r, "review_id")
	if !ok {
		return
	}

	found, err := h.service.GetReview(r.Context(), reviewID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to get review")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *ReviewHandler) handleListByDish(w http.ResponseWriter, r *http.Request) {
	dishID, ok := parseIDParam(w, r, "dish_id")
	if !ok {
		return
	}

	reviews, err := h.service.ListByDish(r.Context(), dishID)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list reviews")
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	respondWithJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseIDParam(w, r, "review_id")
	if !ok {
		return
	}

	var requestPayload UpdateReviewRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated, err := h.service.UpdateReview(r.Context(), reviewID, review.ReviewUpdate{
		Rating:  requestPayload.Rating,
		Comment: requestPayload.Comment,
	})
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to update review")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ReviewHandler) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseIDParam(w, r, "review_id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), reviewID); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
