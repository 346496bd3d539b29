package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

var (
	ErrOrderNotFound    = apperr.NotFound("order not found")
	ErrCustomerNotFound = apperr.NotFound("customer not found")
	ErrWaiterNotFound   = apperr.NotFound("waiter not found")
	ErrOrderHasReviews  = apperr.Conflict("order has reviews and cannot be deleted")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	// LockByID reads the header and holds a row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

const selectOrder = `
	SELECT o.id, o.customer_id, c.name, o.table_id, t.number, o.waiter_id, w.name,
	       o.guest_count, o.status, o.total, o.created_at, o.updated_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	JOIN dining_tables t ON t.id = o.table_id
	JOIN waiters w ON w.id = o.waiter_id
`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.TableID,
		&o.TableNumber,
		&o.WaiterID,
		&o.WaiterName,
		&o.GuestCount,
		&o.Status,
		&o.Total,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (customer_id, table_id, waiter_id, guest_count, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query,
		o.CustomerID,
		o.TableID,
		o.WaiterID,
		o.GuestCount,
		string(o.Status),
		o.Total,
		time.Now().UTC(),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			switch db.ConstraintName(err) {
			case "orders_customer_id_fkey":
				return ErrCustomerNotFound
			case "orders_waiter_id_fkey":
				return ErrWaiterNotFound
			}
			return apperr.Detailf(apperr.ErrNotFound, "referenced entity not found")
		}
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(db.Executor(ctx, r.db).QueryRow(ctx, selectOrder+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %d: %w", id, err)
	}
	return o, nil
}

func (r *postgresRepository) LockByID(ctx context.Context, id int64) (*Order, error) {
	query := `
		SELECT id, customer_id, table_id, waiter_id, guest_count, status, total, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`

	var o Order
	err := db.Executor(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.CustomerID,
		&o.TableID,
		&o.WaiterID,
		&o.GuestCount,
		&o.Status,
		&o.Total,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to lock order %d: %w", id, err)
	}

	return &o, nil
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	query := selectOrder + `
		WHERE ($1 = '' OR o.status = $1)
		ORDER BY o.created_at DESC, o.id DESC
	`

	rows, err := db.Executor(ctx, r.db).Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating orders: %w", err)
	}

	return orders, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		log.Error().Err(err).Int64("order_id", id).Stringer("new_status", status).Msg("repository: failed to update order status")
		return fmt.Errorf("repository: failed to update order status %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	query := `
		UPDATE orders
		SET total = $1, updated_at = $2
		WHERE id = $3
	`

	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, query, total, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("repository: failed to update order total %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrOrderHasReviews
		}
		return fmt.Errorf("repository: failed to delete order %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}
