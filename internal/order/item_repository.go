package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/menu"
)

var ErrItemNotFound = apperr.NotFound("order item not found")

type ItemRepository interface {
	// Add inserts the item and fills ID, CreatedAt and the dish-derived fields.
	Add(ctx context.Context, item *OrderItem) error
	ListByOrder(ctx context.Context, orderID int64) ([]OrderItem, error)
	ListByOrders(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error)
	Remove(ctx context.Context, orderID, itemID int64) error
	DeleteByOrder(ctx context.Context, orderID int64) (int64, error)
}

type postgresItemRepository struct {
	db db.DBTX
}

func NewItemRepository(pool db.DBTX) ItemRepository {
	return &postgresItemRepository{db: pool}
}

const selectItem = `
	SELECT i.id, i.order_id, i.dish_id, d.name, d.price, i.quantity, i.notes,
	       d.price * i.quantity AS subtotal, i.created_at
	FROM order_items i
	JOIN dishes d ON d.id = i.dish_id
`

func collectItems(rows pgx.Rows) ([]OrderItem, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (OrderItem, error) {
		var item OrderItem
		err := row.Scan(
			&item.ID,
			&item.OrderID,
			&item.DishID,
			&item.DishName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Notes,
			&item.Subtotal,
			&item.CreatedAt,
		)
		return item, err
	})
}

func (r *postgresItemRepository) Add(ctx context.Context, item *OrderItem) error {
	query := `
		WITH inserted AS (
			INSERT INTO order_items (order_id, dish_id, quantity, notes)
			VALUES ($1, $2, $3, $4)
			RETURNING id, dish_id, quantity, created_at
		)
		SELECT inserted.id, inserted.created_at, d.name, d.price, d.price * inserted.quantity
		FROM inserted
		JOIN dishes d ON d.id = inserted.dish_id
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, item.OrderID, item.DishID, item.Quantity, item.Notes).
		Scan(&item.ID, &item.CreatedAt, &item.DishName, &item.UnitPrice, &item.Subtotal)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			if db.ConstraintName(err) == "order_items_dish_id_fkey" {
				return menu.ErrDishNotFound
			}
			return ErrOrderNotFound
		}
		return fmt.Errorf("repository: failed to insert order item for order %d: %w", item.OrderID, err)
	}

	return nil
}

func (r *postgresItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := db.Executor(ctx, r.db).Query(ctx, selectItem+` WHERE i.order_id = $1 ORDER BY i.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order id %d: %w", orderID, err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan order items for order id %d: %w", orderID, err)
	}

	return items, nil
}

func (r *postgresItemRepository) ListByOrders(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	result := make(map[int64][]OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, selectItem+` WHERE i.order_id = ANY($1) ORDER BY i.order_id, i.id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan order items: %w", err)
	}

	for _, item := range items {
		result[item.OrderID] = append(result[item.OrderID], item)
	}

	return result, nil
}

func (r *postgresItemRepository) Remove(ctx context.Context, orderID, itemID int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM order_items WHERE id = $1 AND order_id = $2`, itemID, orderID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete order item %d: %w", itemID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *postgresItemRepository) DeleteByOrder(ctx context.Context, orderID int64) (int64, error) {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to delete items of order %d: %w", orderID, err)
	}
	return cmdTag.RowsAffected(), nil
}
