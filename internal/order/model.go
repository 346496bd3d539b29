package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOpen      OrderStatus = "OPEN"
	StatusClosed    OrderStatus = "CLOSED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// Order is an order header. CustomerName, TableNumber and WaiterName are
// filled on reads only.
type Order struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TableID      int64           `json:"table_id"`
	TableNumber  int             `json:"table_number"`
	WaiterID     int64           `json:"waiter_id"`
	WaiterName   string          `json:"waiter_name"`
	GuestCount   int             `json:"guest_count"`
	Status       OrderStatus     `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order. DishName, UnitPrice and Subtotal come
// from the dish row at read time.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	DishID    int64           `json:"dish_id"`
	DishName  string          `json:"dish_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Notes     *string         `json:"notes,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
}

type CreateOrderInput struct {
	CustomerID int64
	TableID    int64
	WaiterID   int64
	GuestCount int
}

type AddItemInput struct {
	DishID   int64
	Quantity int
	Notes    *string
}

type ListFilter struct {
	Status OrderStatus
}

type KitchenTicket struct {
	OrderID        int64       `json:"order_id"`
	TableNumber    int         `json:"table_number"`
	WaiterName     string      `json:"waiter_name"`
	CreatedAt      time.Time   `json:"created_at"`
	ElapsedMinutes int         `json:"elapsed_minutes"`
	Alert          bool        `json:"alert"`
	Items          []OrderItem `json:"items"`
}

// sumItems is the recalculation rule: Σ unit price × quantity, rounded to cents.
func sumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}
