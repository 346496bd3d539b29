package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Waiter struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	CPF        string              `json:"cpf"`
	Salary     decimal.Decimal     `json:"salary"`
	Shift      *string             `json:"shift,omitempty"`
	Commission decimal.NullDecimal `json:"commission"`
	CreatedAt  time.Time           `json:"created_at"`
}

type Chef struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	CPF       string          `json:"cpf"`
	Salary    decimal.Decimal `json:"salary"`
	Specialty *string         `json:"specialty,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
