package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/review"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError maps a service error to its status code. Internal
// errors are logged and hidden behind fallback.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	statusCode := mapErrorToStatusCode(err)
	if statusCode == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		respondWithError(w, statusCode, fallback)
		return
	}

	message := apperr.Message(err, fallback)
	var eligErr *review.EligibilityError
	if errors.As(err, &eligErr) {
		message = eligErr.Error()
	}

	log.Warn().Err(err).Int("status", statusCode).Str("path", r.URL.Path).Msg("request rejected")
	respondWithError(w, statusCode, message)
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idParam := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		log.Warn().Str(name, idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into dst and validates it. On
// failure it writes the response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request payload: %v", err))
		return false
	}

	err := validate.Struct(dst)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
		return false
	}

	log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
	return false
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			details[field] = fmt.Sprintf("Field '%s' is required", field)
		case "email":
			details[field] = fmt.Sprintf("Field '%s' must be a valid email", field)
		case "min":
			details[field] = fmt.Sprintf("Field '%s' must be at least %s characters long", field, fe.Param())
		case "max":
			details[field] = fmt.Sprintf("Field '%s' must be at most %s characters long", field, fe.Param())
		case "gt", "gte", "lte", "lt":
			details[field] = fmt.Sprintf("Field '%s' must be %s %s", field, comparisonWords[fe.Tag()], fe.Param())
		case "oneof":
			details[field] = fmt.Sprintf("Field '%s' must be one of [%s]", field, fe.Param())
		case "cpf":
			details[field] = fmt.Sprintf("Field '%s' must be a valid CPF", field)
		default:
			details[field] = fmt.Sprintf("Field '%s' is invalid", field)
		}
	}
	return details
}

var comparisonWords = map[string]string{
	"gt":  "greater than",
	"gte": "at least",
	"lt":  "less than",
	"lte": "at most",
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
