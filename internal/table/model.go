package table

import "time"

// Table is a dining table. Occupied is derived: the table has at least one OPEN order.
type Table struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	Occupied  bool      `json:"occupied"`
	CreatedAt time.Time `json:"created_at"`
}
