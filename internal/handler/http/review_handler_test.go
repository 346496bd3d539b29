package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restHttp "github.com/gbrl-pnhr/TrabalhoFinalBD/internal/handler/http"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/review"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, r *review.Review) (*review.Review, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id int64) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) ListByDish(ctx context.Context, dishID int64) ([]review.Review, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id int64, update review.ReviewUpdate) (*review.Review, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newReviewRouter(svc review.Service) *chi.Mux {
	router := chi.NewRouter()
	restHttp.NewReviewHandler(svc).RegisterRoutes(router)
	return router
}

func TestReviewHandler_handleCreateReview(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "dish not in order",
			serviceErr: &review.EligibilityError{Reason: review.ReasonDishNotInOrder},
			wantStatus: http.StatusBadRequest,
			wantError:  "customer did not order this dish in this order",
		},
		{
			name:       "another customer's order",
			serviceErr: &review.EligibilityError{Reason: review.ReasonNotOrderOwner},
			wantStatus: http.StatusBadRequest,
			wantError:  "order belongs to another customer",
		},
		{
			name:       "duplicate",
			serviceErr: review.ErrDuplicateReview,
			wantStatus: http.StatusConflict,
			wantError:  "customer already reviewed this dish for this order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReviewService)
			router := newReviewRouter(mockService)

			matcher := mock.MatchedBy(func(r *review.Review) bool {
				return r.CustomerID == 1 && r.DishID == 5 && r.OrderID == 7 && r.Rating == 5
			})
			if tt.serviceErr != nil {
				mockService.On("CreateReview", mock.Anything, matcher).Return(nil, tt.serviceErr).Once()
			} else {
				mockService.On("CreateReview", mock.Anything, matcher).
					Return(&review.Review{ID: 3, CustomerID: 1, DishID: 5, OrderID: 7, Rating: 5}, nil).Once()
			}

			body := `{"customer_id":1,"dish_id":5,"order_id":7,"rating":5,"comment":"excellent"}`
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestReviewHandler_handleCreateReview_RatingOutOfRange(t *testing.T) {
	mockService := new(MockReviewService)
	router := newReviewRouter(mockService)

	body := `{"customer_id":1,"dish_id":5,"order_id":7,"rating":6}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "rating")
	mockService.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestReviewHandler_handleListByDish_Empty(t *testing.T) {
	mockService := new(MockReviewService)
	router := newReviewRouter(mockService)

	mockService.On("ListByDish", mock.Anything, int64(5)).Return([]review.Review(nil), nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reviews/dish/5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestReviewHandler_handleUpdateReview(t *testing.T) {
	mockService := new(MockReviewService)
	router := newReviewRouter(mockService)

	rating := 4
	mockService.On("UpdateReview", mock.Anything, int64(3), review.ReviewUpdate{Rating: &rating}).
		Return(&review.Review{ID: 3, Rating: 4}, nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/reviews/3", bytes.NewBufferString(`{"rating":4}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandler_handleDeleteReview_NotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := newReviewRouter(mockService)

	mockService.On("DeleteReview", mock.Anything, int64(3)).Return(review.ErrReviewNotFound).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/reviews/3", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "review not found", decodeError(t, rr))
	mockService.AssertExpectations(t)
}
