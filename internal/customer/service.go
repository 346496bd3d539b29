package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

type Service interface {
	CreateCustomer(ctx context.Context, c *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func normalize(c *Customer) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Phone != nil {
		phone := strings.TrimSpace(*c.Phone)
		if phone == "" {
			c.Phone = nil
		} else {
			c.Phone = &phone
		}
	}
}

func (s *service) CreateCustomer(ctx context.Context, c *Customer) (*Customer, error) {
	normalize(c)

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn().Str("email", c.Email).Msg("service: customer email already registered")
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create customer in repository")
		return nil, fmt.Errorf("service: failed to create customer: %w", err)
	}

	log.Info().Int64("customer_id", c.ID).Msg("service: customer created")
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch customer: %w", err)
	}
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *service) UpdateCustomer(ctx context.Context, c *Customer) (*Customer, error) {
	normalize(c)

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrEmailExists) {
			log.Warn().Err(err).Int64("customer_id", c.ID).Msg("service: customer not updated")
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to update customer: %w", err)
	}

	return c, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		log.Info().Int64("customer_id", id).Msg("service: customer deleted")
		return nil
	}
	if errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrCustomerInUse) {
		return err
	}
	return fmt.Errorf("service: failed to delete customer: %w", err)
}
