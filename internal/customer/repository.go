package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

var (
	ErrCustomerNotFound = apperr.NotFound("customer not found")
	ErrEmailExists      = apperr.Conflict("email already exists")
	ErrCustomerInUse    = apperr.Conflict("customer has orders or reviews and cannot be deleted")
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, c.Name, c.Email, c.Phone, time.Now().UTC()).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("repository: failed to insert customer: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := db.Executor(ctx, r.db).QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("repository: failed to select customer by id %d: %w", id, err)
	}

	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers
		ORDER BY name, id
	`

	rows, err := db.Executor(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, updated_at = $4
		WHERE id = $5
		RETURNING created_at, updated_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, c.Name, c.Email, c.Phone, time.Now().UTC(), c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		if db.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("repository: failed to update customer %d: %w", c.ID, err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCustomerInUse
		}
		return fmt.Errorf("repository: failed to delete customer %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
