package review

import "time"

type Review struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	DishID       int64     `json:"dish_id"`
	DishName     string    `json:"dish_name,omitempty"`
	OrderID      int64     `json:"order_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewUpdate carries the editable fields; nil fields are left as they are.
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}
