package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/menu"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/table"
)

var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusOpen: {
		StatusClosed:    true,
		StatusCancelled: true,
	},
	StatusClosed:    {},
	StatusCancelled: {},
}

var (
	ErrCapacityExceeded        = apperr.Validation("table capacity exceeded")
	ErrInvalidGuestCount       = apperr.Validation("guest count must be at least 1")
	ErrInvalidQuantity         = apperr.Validation("quantity must be at least 1")
	ErrInvalidStatus           = apperr.Validation("unknown order status")
	ErrOrderNotOpen            = apperr.Validation("order is not open")
	ErrInvalidStatusTransition = apperr.Validation("invalid order status transition")
)

// mismatchTolerance is the stored-vs-computed total difference that is logged.
var mismatchTolerance = decimal.RequireFromString("0.01")

const defaultKitchenAlertAfter = 20 * time.Minute

// TableLookup and DishLookup are satisfied by the table and menu repositories.
type TableLookup interface {
	GetByID(ctx context.Context, id int64) (*table.Table, error)
}

type DishLookup interface {
	GetByID(ctx context.Context, id int64) (*menu.Dish, error)
}

type Service interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderDetail, error)
	GetOrderDetails(ctx context.Context, id int64) (*OrderDetail, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]Order, error)
	AddItem(ctx context.Context, orderID int64, in AddItemInput) (*OrderDetail, error)
	RemoveItem(ctx context.Context, orderID, itemID int64) error
	CloseOrder(ctx context.Context, id int64) (*OrderDetail, error)
	CancelOrder(ctx context.Context, id int64) (*OrderDetail, error)
	RecalculateTotal(ctx context.Context, id int64) (decimal.Decimal, error)
	DeleteOrder(ctx context.Context, id int64) error
	KitchenTickets(ctx context.Context) ([]KitchenTicket, error)
}

type service struct {
	orderRepo  Repository
	itemRepo   ItemRepository
	tables     TableLookup
	dishes     DishLookup
	tx         db.Transactor
	alertAfter time.Duration
	now        func() time.Time
}

type Option func(*service)

// WithKitchenAlertAfter sets how old an open ticket must be before it is flagged.
func WithKitchenAlertAfter(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.alertAfter = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(orderRepo Repository, itemRepo ItemRepository, tables TableLookup, dishes DishLookup, tx db.Transactor, opts ...Option) Service {
	s := &service{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		tables:     tables,
		dishes:     dishes,
		tx:         tx,
		alertAfter: defaultKitchenAlertAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderDetail, error) {
	if in.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}

	t, err := s.tables.GetByID(ctx, in.TableID)
	if err != nil {
		if errors.Is(err, table.ErrTableNotFound) {
			log.Warn().Int64("table_id", in.TableID).Msg("service: table not found, cannot open order")
			return nil, table.ErrTableNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch table: %w", err)
	}

	if in.GuestCount > t.Capacity {
		log.Warn().Int64("table_id", t.ID).Int("capacity", t.Capacity).Int("guest_count", in.GuestCount).Msg("service: table capacity exceeded")
		return nil, apperr.Detailf(ErrCapacityExceeded, "table capacity exceeded: table %d seats %d, got %d guests", t.Number, t.Capacity, in.GuestCount)
	}

	o := &Order{
		CustomerID: in.CustomerID,
		TableID:    in.TableID,
		WaiterID:   in.WaiterID,
		GuestCount: in.GuestCount,
		Status:     StatusOpen,
		Total:      decimal.Zero,
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn().Err(err).Int64("customer_id", in.CustomerID).Int64("waiter_id", in.WaiterID).Msg("service: order references a missing entity")
			return nil, err
		}
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Int64("order_id", o.ID).Int64("table_id", o.TableID).Int("guest_count", o.GuestCount).Msg("service: order opened")

	return s.GetOrderDetails(ctx, o.ID)
}

func (s *service) GetOrderDetails(ctx context.Context, id int64) (*OrderDetail, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Int64("order_id", id).Msg("service: order not found by id")
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	items, err := s.itemRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch order items: %w", err)
	}

	// Observability only: the stored total is returned as is.
	computed := sumItems(items)
	if computed.Sub(o.Total).Abs().GreaterThan(mismatchTolerance) {
		log.Warn().
			Int64("order_id", id).
			Stringer("stored_total", o.Total).
			Stringer("computed_total", computed).
			Msg("service: order total mismatch")
	}

	return &OrderDetail{Order: *o, Items: items}, nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]Order, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperr.Detailf(ErrInvalidStatus, "unknown order status %q", filter.Status)
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders in repository")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

// lockOpen locks the order row and fails unless the order is OPEN.
func (s *service) lockOpen(ctx context.Context, orderID int64) (*Order, error) {
	o, err := s.orderRepo.LockByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusOpen {
		log.Warn().Int64("order_id", orderID).Stringer("status", o.Status).Msg("service: attempt to modify a non-open order")
		return nil, apperr.Detailf(ErrOrderNotOpen, "cannot modify a %s order", o.Status)
	}
	return o, nil
}

// recalculate rebuilds the total from the current items and persists it.
// It must run inside a transaction that holds the order lock.
func (s *service) recalculate(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	items, err := s.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to load items for recalculation: %w", err)
	}

	total := sumItems(items)
	if err := s.orderRepo.UpdateTotal(ctx, orderID, total); err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to persist order total: %w", err)
	}

	return total, nil
}

func (s *service) AddItem(ctx context.Context, orderID int64, in AddItemInput) (*OrderDetail, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var total decimal.Decimal
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockOpen(ctx, orderID); err != nil {
			return err
		}

		if _, err := s.dishes.GetByID(ctx, in.DishID); err != nil {
			return err
		}

		item := &OrderItem{
			OrderID:  orderID,
			DishID:   in.DishID,
			Quantity: in.Quantity,
			Notes:    in.Notes,
		}
		if err := s.itemRepo.Add(ctx, item); err != nil {
			return err
		}

		var err error
		total, err = s.recalculate(ctx, orderID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
			return nil, err
		}
		log.Error().Err(err).Int64("order_id", orderID).Int64("dish_id", in.DishID).Msg("service: failed to add item")
		return nil, fmt.Errorf("service: failed to add item: %w", err)
	}

	log.Info().Int64("order_id", orderID).Int64("dish_id", in.DishID).Int("quantity", in.Quantity).Stringer("total", total).Msg("service: item added")

	return s.GetOrderDetails(ctx, orderID)
}

func (s *service) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	var total decimal.Decimal
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockOpen(ctx, orderID); err != nil {
			return err
		}

		if err := s.itemRepo.Remove(ctx, orderID, itemID); err != nil {
			return err
		}

		var err error
		total, err = s.recalculate(ctx, orderID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
			return err
		}
		log.Error().Err(err).Int64("order_id", orderID).Int64("item_id", itemID).Msg("service: failed to remove item")
		return fmt.Errorf("service: failed to remove item: %w", err)
	}

	log.Info().Int64("order_id", orderID).Int64("item_id", itemID).Stringer("total", total).Msg("service: item removed")
	return nil
}

func (s *service) CloseOrder(ctx context.Context, id int64) (*OrderDetail, error) {
	if err := s.transition(ctx, id, StatusClosed); err != nil {
		return nil, err
	}
	return s.GetOrderDetails(ctx, id)
}

func (s *service) CancelOrder(ctx context.Context, id int64) (*OrderDetail, error) {
	if err := s.transition(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	return s.GetOrderDetails(ctx, id)
}

// transition moves the order to newStatus. Requesting the current status is a
// successful no-op.
func (s *service) transition(ctx context.Context, id int64, newStatus OrderStatus) error {
	var oldStatus OrderStatus
	changed := false

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.orderRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		oldStatus = current.Status

		if current.Status == newStatus {
			return nil
		}

		transitionsForCurrentStatus, ok := allowedTransitions[current.Status]
		if !ok || !transitionsForCurrentStatus[newStatus] {
			log.Warn().
				Int64("order_id", id).
				Stringer("current_status", current.Status).
				Stringer("new_status", newStatus).
				Msg("service: invalid status transition attempt")
			return apperr.Detailf(ErrInvalidStatusTransition, "cannot change order status from %s to %s", current.Status, newStatus)
		}

		if err := s.orderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Int64("order_id", id).Stringer("new_status", newStatus).Msg("service: order not found, cannot update status")
			return ErrOrderNotFound
		}
		if errors.Is(err, apperr.ErrValidation) {
			return err
		}
		log.Error().Err(err).Int64("order_id", id).Stringer("new_status", newStatus).Msg("service: failed to update order status in repository")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	if !changed {
		log.Info().Int64("order_id", id).Stringer("status", newStatus).Msg("service: order status is already the same, no update needed")
		return nil
	}

	log.Info().Int64("order_id", id).Stringer("old_status", oldStatus).Stringer("new_status", newStatus).Msg("service: order status updated successfully")
	return nil
}

func (s *service) RecalculateTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	var previous, total decimal.Decimal
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		previous = o.Total

		total, err = s.recalculate(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return decimal.Zero, ErrOrderNotFound
		}
		return decimal.Zero, fmt.Errorf("service: failed to recalculate order total: %w", err)
	}

	if !previous.Equal(total) {
		log.Warn().Int64("order_id", id).Stringer("previous_total", previous).Stringer("total", total).Msg("service: order total repaired")
	}

	return total, nil
}

func (s *service) DeleteOrder(ctx context.Context, id int64) error {
	var removedItems int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.orderRepo.LockByID(ctx, id); err != nil {
			return err
		}

		n, err := s.itemRepo.DeleteByOrder(ctx, id)
		if err != nil {
			return err
		}
		removedItems = n

		return s.orderRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrOrderHasReviews) {
			log.Warn().Err(err).Int64("order_id", id).Msg("service: order not deleted")
			return err
		}
		return fmt.Errorf("service: failed to delete order: %w", err)
	}

	log.Info().Int64("order_id", id).Int64("items_removed", removedItems).Msg("service: order deleted")
	return nil
}
