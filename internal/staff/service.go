package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
)

var (
	ErrInvalidCPF        = apperr.Validation("cpf is invalid")
	ErrInvalidSalary     = apperr.Validation("salary must be greater than zero")
	ErrInvalidCommission = apperr.Validation("commission cannot be negative")
	ErrInvalidName       = apperr.Validation("name cannot be blank")
)

type Service interface {
	HireWaiter(ctx context.Context, w *Waiter) (*Waiter, error)
	ListWaiters(ctx context.Context) ([]Waiter, error)
	DismissWaiter(ctx context.Context, id int64) error
	HireChef(ctx context.Context, c *Chef) (*Chef, error)
	ListChefs(ctx context.Context) ([]Chef, error)
	DismissChef(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *service) HireWaiter(ctx context.Context, w *Waiter) (*Waiter, error) {
	w.Name = strings.TrimSpace(w.Name)
	w.CPF = NormalizeCPF(w.CPF)
	w.Shift = trimOptional(w.Shift)

	switch {
	case w.Name == "":
		return nil, ErrInvalidName
	case !ValidCPF(w.CPF):
		return nil, ErrInvalidCPF
	case !w.Salary.IsPositive():
		return nil, ErrInvalidSalary
	case w.Commission.Valid && w.Commission.Decimal.IsNegative():
		return nil, ErrInvalidCommission
	}

	if err := s.repo.CreateWaiter(ctx, w); err != nil {
		if errors.Is(err, ErrCPFExists) {
			log.Warn().Msg("service: waiter cpf already registered")
			return nil, ErrCPFExists
		}
		return nil, fmt.Errorf("service: failed to create waiter: %w", err)
	}

	log.Info().Int64("waiter_id", w.ID).Msg("service: waiter hired")
	return w, nil
}

func (s *service) ListWaiters(ctx context.Context) ([]Waiter, error) {
	waiters, err := s.repo.ListWaiters(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list waiters: %w", err)
	}
	return waiters, nil
}

func (s *service) DismissWaiter(ctx context.Context, id int64) error {
	err := s.repo.DeleteWaiter(ctx, id)
	if err == nil {
		log.Info().Int64("waiter_id", id).Msg("service: waiter removed")
		return nil
	}
	if errors.Is(err, ErrWaiterNotFound) || errors.Is(err, ErrWaiterInUse) {
		return err
	}
	return fmt.Errorf("service: failed to delete waiter: %w", err)
}

func (s *service) HireChef(ctx context.Context, c *Chef) (*Chef, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.CPF = NormalizeCPF(c.CPF)
	c.Specialty = trimOptional(c.Specialty)

	switch {
	case c.Name == "":
		return nil, ErrInvalidName
	case !ValidCPF(c.CPF):
		return nil, ErrInvalidCPF
	case !c.Salary.IsPositive():
		return nil, ErrInvalidSalary
	}

	if err := s.repo.CreateChef(ctx, c); err != nil {
		if errors.Is(err, ErrCPFExists) {
			log.Warn().Msg("service: chef cpf already registered")
			return nil, ErrCPFExists
		}
		return nil, fmt.Errorf("service: failed to create chef: %w", err)
	}

	log.Info().Int64("chef_id", c.ID).Msg("service: chef hired")
	return c, nil
}

func (s *service) ListChefs(ctx context.Context) ([]Chef, error) {
	chefs, err := s.repo.ListChefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list chefs: %w", err)
	}
	return chefs, nil
}

func (s *service) DismissChef(ctx context.Context, id int64) error {
	err := s.repo.DeleteChef(ctx, id)
	if err == nil {
		log.Info().Int64("chef_id", id).Msg("service: chef removed")
		return nil
	}
	if errors.Is(err, ErrChefNotFound) {
		return err
	}
	return fmt.Errorf("service: failed to delete chef: %w", err)
}
