package menu

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
	ErrDishNotFound = apperr.NotFound("dish not found")
	ErrDishInUse    = apperr.Conflict("dish is referenced by order items or reviews")
)

type Repository interface {
	Create(ctx context.Context, dish *Dish) error
	GetByID(ctx context.Context, id int64) (*Dish, error)
	List(ctx context.Context, filter ListFilter) ([]Dish, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id int64, update DishUpdate) (*Dish, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

const dishColumns = `id, name, price, category, created_at, updated_at`

func scanDish(row pgx.Row) (*Dish, error) {
	var d Dish
	if err := row.Scan(&d.ID, &d.Name, &d.Price, &d.Category, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, dish *Dish) error {
	query := `
		INSERT INTO dishes (name, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	err := db.Executor(ctx, r.db).QueryRow(ctx, query, dish.Name, dish.Price, dish.Category, now).
		Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert dish: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`

	dish, err := scanDish(db.Executor(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("repository: failed to select dish by id %d: %w", id, err)
	}

	return dish, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]Dish, error) {
	query := `
		SELECT ` + dishColumns + `
		FROM dishes
		WHERE ($1 = '' OR category = $1)
		ORDER BY category, name
	`

	rows, err := db.Executor(ctx, r.db).Query(ctx, query, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query dishes: %w", err)
	}
	defer rows.Close()

	dishes := make([]Dish, 0)
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan dish: %w", err)
		}
		dishes = append(dishes, *dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating dishes: %w", err)
	}

	return dishes, nil
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Executor(ctx, r.db).Query(ctx, `SELECT DISTINCT category FROM dishes ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repository: failed to collect categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, update DishUpdate) (*Dish, error) {
	query := `
		UPDATE dishes
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    category = COALESCE($4, category),
		    updated_at = $5
		WHERE id = $1
		RETURNING ` + dishColumns

	dish, err := scanDish(db.Executor(ctx, r.db).QueryRow(ctx, query,
		id, update.Name, update.Price, update.Category, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("repository: failed to update dish %d: %w", id, err)
	}

	return dish, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrDishInUse
		}
		return fmt.Errorf("repository: failed to delete dish %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrDishNotFound
	}

	return nil
}
