package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
)

var (
	ErrInvalidPrice = apperr.Validation("price must be greater than zero with at most 2 decimal places")
	ErrEmptyUpdate  = apperr.Validation("at least one field must be provided")
	ErrInvalidName  = apperr.Validation("name and category cannot be blank")
)

type Service interface {
	CreateDish(ctx context.Context, dish *Dish) (*Dish, error)
	GetDish(ctx context.Context, id int64) (*Dish, error)
	ListDishes(ctx context.Context, filter ListFilter) ([]Dish, error)
	ListCategories(ctx context.Context) ([]string, error)
	UpdateDish(ctx context.Context, id int64, update DishUpdate) (*Dish, error)
	DeleteDish(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validPrice(p decimal.Decimal) bool {
	return p.IsPositive() && p.Equal(p.Round(2))
}

func (s *service) CreateDish(ctx context.Context, dish *Dish) (*Dish, error) {
	dish.Name = strings.TrimSpace(dish.Name)
	dish.Category = strings.TrimSpace(dish.Category)
	if dish.Name == "" || dish.Category == "" {
		return nil, ErrInvalidName
	}
	if !validPrice(dish.Price) {
		return nil, ErrInvalidPrice
	}

	if err := s.repo.Create(ctx, dish); err != nil {
		log.Error().Err(err).Str("name", dish.Name).Msg("service: failed to create dish in repository")
		return nil, fmt.Errorf("service: failed to create dish: %w", err)
	}

	log.Info().Int64("dish_id", dish.ID).Str("category", dish.Category).Msg("service: dish created")
	return dish, nil
}

func (s *service) GetDish(ctx context.Context, id int64) (*Dish, error) {
	dish, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDishNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch dish: %w", err)
	}
	return dish, nil
}

func (s *service) ListDishes(ctx context.Context, filter ListFilter) ([]Dish, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	dishes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list dishes: %w", err)
	}
	return dishes, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateDish changes name, price or category. A price change is visible on
// every order item that references the dish, including closed orders.
func (s *service) UpdateDish(ctx context.Context, id int64, update DishUpdate) (*Dish, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, ErrInvalidName
		}
		update.Name = &trimmed
	}
	if update.Category != nil {
		trimmed := strings.TrimSpace(*update.Category)
		if trimmed == "" {
			return nil, ErrInvalidName
		}
		update.Category = &trimmed
	}
	if update.Price != nil && !validPrice(*update.Price) {
		return nil, ErrInvalidPrice
	}

	dish, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, ErrDishNotFound) {
			log.Warn().Int64("dish_id", id).Msg("service: dish not found for update")
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("service: failed to update dish: %w", err)
	}

	if update.Price != nil {
		log.Info().Int64("dish_id", id).Stringer("price", dish.Price).Msg("service: dish price changed")
	}
	return dish, nil
}

func (s *service) DeleteDish(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		log.Info().Int64("dish_id", id).Msg("service: dish deleted")
		return nil
	case errors.Is(err, ErrDishNotFound), errors.Is(err, ErrDishInUse):
		log.Warn().Err(err).Int64("dish_id", id).Msg("service: dish not deleted")
		return err
	default:
		return fmt.Errorf("service: failed to delete dish: %w", err)
	}
}
