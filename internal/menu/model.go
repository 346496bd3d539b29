package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DishUpdate carries the fields of a partial update; nil fields are left as they are.
type DishUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
}

func (u DishUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Category == nil
}

type ListFilter struct {
	Category string
}
