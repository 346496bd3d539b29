package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/analytics"
	restHttp "github.com/gbrl-pnhr/TrabalhoFinalBD/internal/handler/http"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Revenue(ctx context.Context) ([]analytics.DailyRevenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.DailyRevenue), args.Error(1)
}

func (m *MockAnalyticsService) PopularDishes(ctx context.Context, limit int) ([]analytics.DishPopularity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.DishPopularity), args.Error(1)
}

func (m *MockAnalyticsService) StaffPerformance(ctx context.Context) ([]analytics.WaiterPerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.WaiterPerformance), args.Error(1)
}

func newAnalyticsRouter(svc analytics.Service) *chi.Mux {
	router := chi.NewRouter()
	restHttp.NewAnalyticsHandler(svc).RegisterRoutes(router)
	return router
}

func TestAnalyticsHandler_handleRevenue(t *testing.T) {
	mockService := new(MockAnalyticsService)
	router := newAnalyticsRouter(mockService)

	mockService.On("Revenue", mock.Anything).Return([]analytics.DailyRevenue{
		{Day: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), OrderCount: 3, Revenue: decimal.RequireFromString("311.5")},
	}, nil).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analytics/revenue", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var actual []restHttp.DailyRevenueResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actual))

	want := []restHttp.DailyRevenueResponse{{Day: "2026-05-10", OrderCount: 3, Revenue: "311.50"}}
	if diff := cmp.Diff(want, actual); diff != "" {
		t.Errorf("revenue response mismatch (-want +got):\n%s", diff)
	}
	mockService.AssertExpectations(t)
}

func TestAnalyticsHandler_handlePopularDishes(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		mockService := new(MockAnalyticsService)
		router := newAnalyticsRouter(mockService)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analytics/popular-dishes?limit=ten", nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "PopularDishes", mock.Anything, mock.Anything)
	})

	t.Run("limit out of range", func(t *testing.T) {
		mockService := new(MockAnalyticsService)
		router := newAnalyticsRouter(mockService)

		mockService.On("PopularDishes", mock.Anything, 500).Return(nil, analytics.ErrInvalidLimit).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analytics/popular-dishes?limit=500", nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("default limit", func(t *testing.T) {
		mockService := new(MockAnalyticsService)
		router := newAnalyticsRouter(mockService)

		mockService.On("PopularDishes", mock.Anything, 0).Return([]analytics.DishPopularity{}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analytics/popular-dishes", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `[]`, rr.Body.String())
		mockService.AssertExpectations(t)
	})
}
