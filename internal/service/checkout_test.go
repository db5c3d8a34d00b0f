package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/client"
	"costume-storefront/internal/dto"
	"costume-storefront/internal/model"
)

type fakeStripeClient struct {
	calls   int
	params  client.SessionParams
	session *client.Session
	err     error
}

func (f *fakeStripeClient) CreateCheckoutSession(ctx context.Context, params client.SessionParams) (*client.Session, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeOrderRepo struct {
	createdOrder *model.Order
	createdItems []*model.OrderItem
	createErr    error

	orders   []*model.Order
	listErr  error
	items    []*model.OrderItem
	itemsErr error

	completed   *model.Order
	completeErr error
}

func (f *fakeOrderRepo) CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdOrder = order
	f.createdItems = items
	return nil
}

func (f *fakeOrderRepo) ListNewestFirst(ctx context.Context) ([]*model.Order, error) {
	return f.orders, f.listErr
}

func (f *fakeOrderRepo) ItemsForOrders(ctx context.Context, orderIDs []string) ([]*model.OrderItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeOrderRepo) MarkCompletedBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	return f.completed, f.completeErr
}

func TestCheckoutEmptyCartFailsBeforeProviderCall(t *testing.T) {
	stripe := &fakeStripeClient{}
	svc := NewCheckoutService(stripe, &fakeOrderRepo{})

	_, err := svc.Checkout(context.Background(), "cart-1", nil, dto.CustomerData{}, "http://localhost:8080")

	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if stripe.calls != 0 {
		t.Fatalf("provider must not be contacted for an empty cart, got %d calls", stripe.calls)
	}
}

func TestCheckoutComposesLineItems(t *testing.T) {
	stripe := &fakeStripeClient{
		session: &client.Session{ID: "cs_123", URL: "https://checkout.example.com/cs_123"},
	}
	repo := &fakeOrderRepo{}
	svc := NewCheckoutService(stripe, repo)

	items := []cart.Item{
		{ID: "a", Name: "Tactical Henley", Price: 24.99, Image: "/api/placeholder/100/100", Quantity: 2},
		{ID: "b", Name: "Lab Badge", Price: 10.00, Image: "https://cdn.example.com/badge.png", Quantity: 1},
	}
	customer := dto.CustomerData{Name: "Jane Doe", Email: "jane@example.com"}

	result, err := svc.Checkout(context.Background(), "cart-1", items, customer, "http://localhost:8080")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if result.URL != "https://checkout.example.com/cs_123" {
		t.Fatalf("redirect URL must pass through unchanged, got %q", result.URL)
	}

	line := stripe.params.LineItems
	if len(line) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(line))
	}
	if line[0].UnitAmount != 2499 || line[0].Quantity != 2 {
		t.Fatalf("line 0: expected 2499 cents x2, got %d x%d", line[0].UnitAmount, line[0].Quantity)
	}
	if line[1].UnitAmount != 1000 || line[1].Quantity != 1 {
		t.Fatalf("line 1: expected 1000 cents x1, got %d x%d", line[1].UnitAmount, line[1].Quantity)
	}
	if line[0].Currency != "usd" {
		t.Fatalf("expected usd currency, got %q", line[0].Currency)
	}
	if line[0].Image != "http://localhost:8080/api/placeholder/100/100" {
		t.Fatalf("relative image should resolve against origin, got %q", line[0].Image)
	}
	if line[1].Image != "https://cdn.example.com/badge.png" {
		t.Fatalf("absolute image must stay untouched, got %q", line[1].Image)
	}

	if stripe.params.SuccessURL != "http://localhost:8080/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success URL %q", stripe.params.SuccessURL)
	}
	if stripe.params.CancelURL != "http://localhost:8080/checkout" {
		t.Fatalf("unexpected cancel URL %q", stripe.params.CancelURL)
	}
	if stripe.params.CustomerEmail != "jane@example.com" {
		t.Fatalf("customer email not passed through, got %q", stripe.params.CustomerEmail)
	}
}

func TestCheckoutRecordsPendingOrder(t *testing.T) {
	stripe := &fakeStripeClient{
		session: &client.Session{ID: "cs_123", URL: "https://checkout.example.com/cs_123"},
	}
	repo := &fakeOrderRepo{}
	svc := NewCheckoutService(stripe, repo)

	items := []cart.Item{
		{ID: "a", Name: "Tactical Henley", Price: 24.99, Quantity: 2},
		{ID: "b", Name: "Lab Badge", Price: 10.00, Quantity: 1},
	}

	_, err := svc.Checkout(context.Background(), "cart-1", items, dto.CustomerData{Email: "jane@example.com"}, "http://localhost:8080")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	order := repo.createdOrder
	if order == nil {
		t.Fatal("expected an order record")
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", order.Status)
	}
	if order.SessionID != "cs_123" || order.CartID != "cart-1" {
		t.Fatalf("order must carry session and cart ids, got %q / %q", order.SessionID, order.CartID)
	}

	sum := 0.0
	for _, item := range repo.createdItems {
		if !almostEqual(item.TotalPrice, item.UnitPrice*float64(item.Quantity)) {
			t.Fatalf("item %q violates total_price invariant", item.ProductName)
		}
		if item.OrderID != order.ID {
			t.Fatalf("item %q not linked to order", item.ProductName)
		}
		sum += item.TotalPrice
	}
	if !almostEqual(order.TotalAmount, sum) {
		t.Fatalf("total_amount %v != item sum %v", order.TotalAmount, sum)
	}
	if !almostEqual(order.TotalAmount, 59.98) {
		t.Fatalf("expected total 59.98, got %v", order.TotalAmount)
	}
}

func TestCheckoutProviderFailurePassesMessageThrough(t *testing.T) {
	stripe := &fakeStripeClient{
		err: &client.ProviderError{StatusCode: 402, Message: "Your card was declined."},
	}
	repo := &fakeOrderRepo{}
	svc := NewCheckoutService(stripe, repo)

	_, err := svc.Checkout(context.Background(), "cart-1",
		[]cart.Item{{ID: "a", Price: 5, Quantity: 1}}, dto.CustomerData{}, "http://localhost:8080")

	var providerErr *client.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.Message != "Your card was declined." {
		t.Fatalf("provider message must pass through, got %q", providerErr.Message)
	}
	if repo.createdOrder != nil {
		t.Fatal("no order may be recorded when the provider fails")
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{price: 24.99, want: 2499},
		{price: 10.00, want: 1000},
		{price: 24.995, want: 2500}, // half rounds away from zero
		{price: 10.555, want: 1056},
		{price: 0.07, want: 7},
		{price: 0, want: 0},
	}

	for _, tt := range tests {
		if got := Cents(tt.price); got != tt.want {
			t.Errorf("Cents(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
