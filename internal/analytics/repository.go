package analytics

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository runs the reporting queries. Cancelled orders are excluded from
// every figure.
type Repository interface {
	DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error)
	TopDishes(ctx context.Context, limit int) ([]DishPopularity, error)
	WaiterPerformance(ctx context.Context) ([]WaiterPerformance, error)
}

type sqlxRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &sqlxRepository{db: db}
}

func (r *sqlxRepository) DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(total), 0) AS revenue
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND created_at >= date_trunc('day', NOW()) - make_interval(days => $1)
		GROUP BY 1
		ORDER BY 1 DESC
	`

	rows := make([]DailyRevenue, 0)
	if err := r.db.SelectContext(ctx, &rows, query, days); err != nil {
		return nil, fmt.Errorf("repository: failed to select daily revenue: %w", err)
	}
	return rows, nil
}

func (r *sqlxRepository) TopDishes(ctx context.Context, limit int) ([]DishPopularity, error) {
	query := `
		SELECT d.id AS dish_id,
		       d.name AS dish_name,
		       d.category AS category,
		       SUM(i.quantity) AS total_sold,
		       SUM(i.quantity * d.price) AS estimated_revenue
		FROM order_items i
		JOIN dishes d ON d.id = i.dish_id
		JOIN orders o ON o.id = i.order_id
		WHERE o.status <> 'CANCELLED'
		GROUP BY d.id, d.name, d.category
		ORDER BY total_sold DESC, d.name
		LIMIT $1
	`

	rows := make([]DishPopularity, 0)
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("repository: failed to select top dishes: %w", err)
	}
	return rows, nil
}

func (r *sqlxRepository) WaiterPerformance(ctx context.Context) ([]WaiterPerformance, error) {
	query := `
		SELECT w.id AS waiter_id,
		       w.name AS waiter_name,
		       COUNT(o.id) AS orders_handled,
		       COALESCE(SUM(o.total), 0) AS total_sales,
		       ROUND(COALESCE(SUM(o.total), 0) * COALESCE(w.commission, 0) / 100, 2) AS estimated_commission
		FROM waiters w
		LEFT JOIN orders o ON o.waiter_id = w.id AND o.status <> 'CANCELLED'
		GROUP BY w.id, w.name, w.commission
		ORDER BY total_sales DESC, w.name
	`

	rows := make([]WaiterPerformance, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("repository: failed to select waiter performance: %w", err)
	}
	return rows, nil
}
