package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/client"
	"costume-storefront/internal/dto"
	"costume-storefront/internal/model"
	"costume-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart fails a checkout before the payment provider is contacted.
var ErrEmptyCart = errors.New("cart is empty")

type CheckoutService interface {
	Checkout(ctx context.Context, cartID string, items []cart.Item, customer dto.CustomerData, origin string) (*dto.CheckoutResponse, error)
	ConfirmSession(ctx context.Context, sessionID string) (*model.Order, error)
}

type checkoutServiceImpl struct {
	stripeClient client.StripeClient
	orderRepo    repository.OrderRepository
}

func NewCheckoutService(stripeClient client.StripeClient, orderRepo repository.OrderRepository) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient: stripeClient,
		orderRepo:    orderRepo,
	}
}

// Checkout turns the cart snapshot into a provider checkout session and
// records a pending order for it. On success the provider's redirect URL is
// returned unchanged; on provider failure the cart is left intact for a
// user-initiated retry.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, cartID string, items []cart.Item, customer dto.CustomerData, origin string) (*dto.CheckoutResponse, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	origin = strings.TrimSuffix(origin, "/")

	lineItems := make([]client.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = client.LineItem{
			Name:       item.Name,
			Image:      resolveImageURL(origin, item.Image),
			Currency:   "usd",
			UnitAmount: Cents(item.Price),
			Quantity:   item.Quantity,
		}
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, client.SessionParams{
		LineItems:     lineItems,
		CustomerEmail: customer.Email,
		SuccessURL:    origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/checkout",
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	totalAmount := 0.0
	orderItems := make([]*model.OrderItem, len(items))
	for i, item := range items {
		totalPrice := item.Price * float64(item.Quantity)
		totalAmount += totalPrice

		orderItems[i] = &model.OrderItem{
			ProductName:  item.Name,
			ProductImage: item.Image,
			Quantity:     item.Quantity,
			UnitPrice:    item.Price,
			TotalPrice:   totalPrice,
		}
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		SessionID:     session.ID,
		CartID:        cartID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		TotalAmount:   totalAmount,
		Status:        model.OrderStatusPending,
		ShippingAddress: model.ShippingAddress{
			Address: customer.Address,
			City:    customer.City,
			State:   customer.State,
			ZipCode: customer.ZipCode,
			Country: customer.Country,
		},
	}
	for _, item := range orderItems {
		item.OrderID = order.ID
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	return &dto.CheckoutResponse{
		URL: session.URL,
	}, nil
}

// ConfirmSession settles the pending order for a provider session after the
// success redirect. The caller clears the originating cart.
func (s *checkoutServiceImpl) ConfirmSession(ctx context.Context, sessionID string) (*model.Order, error) {
	order, err := s.orderRepo.MarkCompletedBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("confirm session: %w", err)
	}
	return order, nil
}

// Cents converts a dollar price to integer minor units. Fractional cents
// round half away from zero, so 24.995 becomes 2500.
func Cents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// resolveImageURL makes relative catalog images absolute against the
// requesting origin, as the provider requires fetchable URLs.
func resolveImageURL(origin, image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if !strings.HasPrefix(image, "/") {
		image = "/" + image
	}
	return origin + image
}
