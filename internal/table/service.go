package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
)

var ErrInvalidTable = apperr.Validation("number and capacity must be positive and location cannot be blank")

type Service interface {
	CreateTable(ctx context.Context, t *Table) (*Table, error)
	GetTable(ctx context.Context, id int64) (*Table, error)
	ListTables(ctx context.Context) ([]Table, error)
	DeleteTable(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTable(ctx context.Context, t *Table) (*Table, error) {
	t.Location = strings.TrimSpace(t.Location)
	if t.Number <= 0 || t.Capacity <= 0 || t.Location == "" {
		return nil, ErrInvalidTable
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, ErrTableNumberExists) {
			log.Warn().Int("number", t.Number).Msg("service: table number already taken")
			return nil, ErrTableNumberExists
		}
		return nil, fmt.Errorf("service: failed to create table: %w", err)
	}

	log.Info().Int64("table_id", t.ID).Int("number", t.Number).Int("capacity", t.Capacity).Msg("service: table created")
	return t, nil
}

func (s *service) GetTable(ctx context.Context, id int64) (*Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch table: %w", err)
	}
	return t, nil
}

func (s *service) ListTables(ctx context.Context) ([]Table, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tables: %w", err)
	}
	return tables, nil
}

func (s *service) DeleteTable(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		log.Info().Int64("table_id", id).Msg("service: table deleted")
		return nil
	}
	if errors.Is(err, ErrTableNotFound) || errors.Is(err, ErrTableInUse) {
		return err
	}
	return fmt.Errorf("service: failed to delete table: %w", err)
}
