package service

import (
	"context"

	"costume-storefront/internal/dto"
	"costume-storefront/internal/repository"
)

// OrderFetchError marks a reconciliation query failure as retryable; the
// view shows an error state instead of partial data.
type OrderFetchError struct {
	Err error
}

func (e *OrderFetchError) Error() string {
	return "fetch orders: " + e.Err.Error()
}

func (e *OrderFetchError) Unwrap() error {
	return e.Err
}

type OrderService interface {
	ListOrders(ctx context.Context) ([]dto.OrderView, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

// ListOrders fetches all orders newest first, then their item rows in one
// IN query, and groups items under their parents. Item rows whose order was
// not fetched are dropped, not errored.
func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]dto.OrderView, error) {
	orders, err := s.orderRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, &OrderFetchError{Err: err}
	}

	orderIDs := make([]string, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	items, err := s.orderRepo.ItemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, &OrderFetchError{Err: err}
	}

	itemsByOrder := make(map[string][]dto.OrderItemView)
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], dto.OrderItemView{
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
		})
	}

	views := make([]dto.OrderView, len(orders))
	for i, order := range orders {
		orderItems := itemsByOrder[order.ID]
		if orderItems == nil {
			orderItems = []dto.OrderItemView{}
		}
		views[i] = dto.OrderView{
			ID:              order.ID,
			CustomerName:    order.CustomerName,
			CustomerEmail:   order.CustomerEmail,
			TotalAmount:     order.TotalAmount,
			Status:          order.Status,
			ShippingAddress: order.ShippingAddress,
			CreatedAt:       order.CreatedAt,
			Items:           orderItems,
		}
	}

	return views, nil
}
