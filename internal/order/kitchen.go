package order

import (
	"context"
	"fmt"
	"sort"
)

// KitchenTickets lists open orders that have at least one item, oldest first.
func (s *service) KitchenTickets(ctx context.Context) ([]KitchenTicket, error) {
	orders, err := s.orderRepo.List(ctx, ListFilter{Status: StatusOpen})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list open orders: %w", err)
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	itemsByOrder, err := s.itemRepo.ListByOrders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load ticket items: %w", err)
	}

	now := s.now()
	tickets := make([]KitchenTicket, 0, len(orders))
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		if len(items) == 0 {
			continue
		}

		elapsed := now.Sub(o.CreatedAt)
		if elapsed < 0 {
			elapsed = 0
		}

		tickets = append(tickets, KitchenTicket{
			OrderID:        o.ID,
			TableNumber:    o.TableNumber,
			WaiterName:     o.WaiterName,
			CreatedAt:      o.CreatedAt,
			ElapsedMinutes: int(elapsed.Minutes()),
			Alert:          elapsed > s.alertAfter,
			Items:          items,
		})
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})

	return tickets, nil
}
