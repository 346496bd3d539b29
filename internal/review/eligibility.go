package review

import (
	"context"
	"fmt"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
)

type Reason string

const (
	ReasonOrderNotFound  Reason = "order_not_found"
	ReasonNotOrderOwner  Reason = "not_order_owner"
	ReasonDishNotInOrder Reason = "dish_not_in_order"
)

func (r Reason) String() string {
	return string(r)
}

// Eligibility is the guard result. Reason is empty when Eligible is true.
type Eligibility struct {
	Eligible bool
	Reason   Reason
}

func eligible() Eligibility {
	return Eligibility{Eligible: true}
}

func notEligible(reason Reason) Eligibility {
	return Eligibility{Reason: reason}
}

var ErrNotEligible = apperr.Validation("customer did not order this dish in this order")

// EligibilityError is returned by CreateReview when the guard refuses the triple.
type EligibilityError struct {
	Reason Reason
}

func (e *EligibilityError) Error() string {
	switch e.Reason {
	case ReasonOrderNotFound:
		return "order does not exist"
	case ReasonNotOrderOwner:
		return "order belongs to another customer"
	default:
		return ErrNotEligible.Error()
	}
}

func (e *EligibilityError) Unwrap() error {
	return ErrNotEligible
}

// OrderFacts answers the two questions the guard asks about an order.
type OrderFacts interface {
	// OrderOwner returns the order's customer, or found=false.
	OrderOwner(ctx context.Context, orderID int64) (customerID int64, found bool, err error)
	OrderHasDish(ctx context.Context, orderID, dishID int64) (bool, error)
}

type Guard struct {
	facts OrderFacts
}

func NewGuard(facts OrderFacts) *Guard {
	return &Guard{facts: facts}
}

// Check reports whether customerID may review dishID for orderID: the order
// must exist, belong to the customer and contain the dish.
func (g *Guard) Check(ctx context.Context, customerID, orderID, dishID int64) (Eligibility, error) {
	owner, found, err := g.facts.OrderOwner(ctx, orderID)
	if err != nil {
		return Eligibility{}, fmt.Errorf("eligibility: failed to load order owner: %w", err)
	}
	if !found {
		return notEligible(ReasonOrderNotFound), nil
	}
	if owner != customerID {
		return notEligible(ReasonNotOrderOwner), nil
	}

	hasDish, err := g.facts.OrderHasDish(ctx, orderID, dishID)
	if err != nil {
		return Eligibility{}, fmt.Errorf("eligibility: failed to check order items: %w", err)
	}
	if !hasDish {
		return notEligible(ReasonDishNotInOrder), nil
	}

	return eligible(), nil
}
