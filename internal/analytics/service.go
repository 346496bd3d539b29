package analytics

import (
	"context"
	"fmt"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
)

const (
	revenueWindowDays = 30
	defaultTopDishes  = 10
	maxTopDishes      = 50
)

var ErrInvalidLimit = apperr.Validationf("limit must be between 1 and %d", maxTopDishes)

type Service interface {
	Revenue(ctx context.Context) ([]DailyRevenue, error)
	PopularDishes(ctx context.Context, limit int) ([]DishPopularity, error)
	StaffPerformance(ctx context.Context) ([]WaiterPerformance, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Revenue(ctx context.Context) ([]DailyRevenue, error) {
	rows, err := s.repo.DailyRevenue(ctx, revenueWindowDays)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load revenue: %w", err)
	}
	return rows, nil
}

// PopularDishes returns the best sellers; limit 0 means the default of 10.
func (s *service) PopularDishes(ctx context.Context, limit int) ([]DishPopularity, error) {
	if limit == 0 {
		limit = defaultTopDishes
	}
	if limit < 1 || limit > maxTopDishes {
		return nil, ErrInvalidLimit
	}

	rows, err := s.repo.TopDishes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load popular dishes: %w", err)
	}
	return rows, nil
}

func (s *service) StaffPerformance(ctx context.Context) ([]WaiterPerformance, error) {
	rows, err := s.repo.WaiterPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load staff performance: %w", err)
	}
	return rows, nil
}
