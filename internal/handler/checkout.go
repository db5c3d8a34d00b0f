package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/client"
	"costume-storefront/internal/dto"
	"costume-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	carts           *cart.Manager
	baseURL         string
}

func NewCheckoutHandler(checkoutService service.CheckoutService, carts *cart.Manager, baseURL string) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		carts:           carts,
		baseURL:         baseURL,
	}
}

// Checkout creates a provider session from the posted items, or from the
// caller's stored cart when the body carries none. Responds {url} on
// success, {error} with a non-2xx status on failure.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	cartID := c.Request().Header.Get("X-Cart-Id")
	items := req.Items
	if len(items) == 0 && cartID != "" {
		store, err := h.carts.Get(cartID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid X-Cart-Id header")
		}
		items = store.Items()
	}

	result, err := h.checkoutService.Checkout(ctx, cartID, items, req.CustomerData, h.requestOrigin(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cart is empty"})
		}
		var providerErr *client.ProviderError
		if errors.As(err, &providerErr) {
			return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: providerErr.Message})
		}
		slog.Error("checkout failed", "error", err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "checkout failed"})
	}

	return c.JSON(http.StatusOK, result)
}

// HandleSuccess is the provider's success redirect target: it settles the
// pending order and clears the cart it was composed from.
func (h *CheckoutHandler) HandleSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session_id")
	}

	order, err := h.checkoutService.ConfirmSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no pending order for session")
		}
		return err
	}

	if order.CartID != "" {
		if store, err := h.carts.Get(order.CartID); err == nil {
			store.Clear()
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

func (h *CheckoutHandler) requestOrigin(c echo.Context) string {
	if origin := c.Request().Header.Get("Origin"); origin != "" {
		return origin
	}
	return h.baseURL
}
