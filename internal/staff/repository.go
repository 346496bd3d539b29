package staff

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

var (
	ErrWaiterNotFound = apperr.NotFound("waiter not found")
	ErrChefNotFound   = apperr.NotFound("chef not found")
	ErrCPFExists      = apperr.Conflict("cpf already registered")
	ErrWaiterInUse    = apperr.Conflict("waiter has orders and cannot be deleted")
)

type Repository interface {
	CreateWaiter(ctx context.Context, w *Waiter) error
	ListWaiters(ctx context.Context) ([]Waiter, error)
	DeleteWaiter(ctx context.Context, id int64) error
	CreateChef(ctx context.Context, c *Chef) error
	ListChefs(ctx context.Context) ([]Chef, error)
	DeleteChef(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) CreateWaiter(ctx context.Context, w *Waiter) error {
	query := `
		INSERT INTO waiters (name, cpf, salary, shift, commission)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, w.Name, w.CPF, w.Salary, w.Shift, w.Commission).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrCPFExists
		}
		return fmt.Errorf("repository: failed to insert waiter: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListWaiters(ctx context.Context) ([]Waiter, error) {
	query := `
		SELECT id, name, cpf, salary, shift, commission, created_at
		FROM waiters
		ORDER BY name, id
	`

	rows, err := db.Executor(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query waiters: %w", err)
	}

	waiters, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Waiter, error) {
		var w Waiter
		err := row.Scan(&w.ID, &w.Name, &w.CPF, &w.Salary, &w.Shift, &w.Commission, &w.CreatedAt)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to collect waiters: %w", err)
	}

	return waiters, nil
}

func (r *postgresRepository) DeleteWaiter(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM waiters WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrWaiterInUse
		}
		return fmt.Errorf("repository: failed to delete waiter %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrWaiterNotFound
	}

	return nil
}

func (r *postgresRepository) CreateChef(ctx context.Context, c *Chef) error {
	query := `
		INSERT INTO chefs (name, cpf, salary, specialty)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, c.Name, c.CPF, c.Salary, c.Specialty).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrCPFExists
		}
		return fmt.Errorf("repository: failed to insert chef: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListChefs(ctx context.Context) ([]Chef, error) {
	query := `
		SELECT id, name, cpf, salary, specialty, created_at
		FROM chefs
		ORDER BY name, id
	`

	rows, err := db.Executor(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query chefs: %w", err)
	}

	chefs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Chef, error) {
		var c Chef
		err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Salary, &c.Specialty, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to collect chefs: %w", err)
	}

	return chefs, nil
}

func (r *postgresRepository) DeleteChef(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM chefs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete chef %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrChefNotFound
	}

	return nil
}
