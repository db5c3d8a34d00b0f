package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"costume-storefront/internal/config"
)

// StripeClient creates hosted checkout sessions. The composer depends on
// this interface; tests substitute fakes.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
}

type LineItem struct {
	Name       string
	Image      string
	Currency   string
	UnitAmount int64 // minor units (cents)
	Quantity   int
}

type SessionParams struct {
	LineItems     []LineItem
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type Session struct {
	ID  string
	URL string
}

// ProviderError carries the payment provider's own message through to the
// caller. The cart is left intact so the user can resubmit.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider error (status %d): %s", e.StatusCode, e.Message)
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: stripeCfg.BaseApiURL,
		secretKey:  stripeCfg.SecretKey,
	}
}

type stripeSessionResult struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("shipping_address_collection[allowed_countries][0]", "US")
	form.Set("shipping_address_collection[allowed_countries][1]", "CA")
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", item.Currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.Image)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	var result stripeSessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    "malformed session response",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := result.Error.Message
		if message == "" {
			message = "failed to create checkout session"
		}
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	if result.URL == "" {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    "session response missing redirect url",
		}
	}

	return &Session{
		ID:  result.ID,
		URL: result.URL,
	}, nil
}
