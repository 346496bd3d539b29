package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

type DailyRevenue struct {
	Day        time.Time       `db:"day" json:"day"`
	OrderCount int             `db:"order_count" json:"order_count"`
	Revenue    decimal.Decimal `db:"revenue" json:"revenue"`
}

type DishPopularity struct {
	DishID           int64           `db:"dish_id" json:"dish_id"`
	DishName         string          `db:"dish_name" json:"dish_name"`
	Category         string          `db:"category" json:"category"`
	TotalSold        int             `db:"total_sold" json:"total_sold"`
	EstimatedRevenue decimal.Decimal `db:"estimated_revenue" json:"estimated_revenue"`
}

type WaiterPerformance struct {
	WaiterID            int64           `db:"waiter_id" json:"waiter_id"`
	WaiterName          string          `db:"waiter_name" json:"waiter_name"`
	OrdersHandled       int             `db:"orders_handled" json:"orders_handled"`
	TotalSales          decimal.Decimal `db:"total_sales" json:"total_sales"`
	EstimatedCommission decimal.Decimal `db:"estimated_commission" json:"estimated_commission"`
}
