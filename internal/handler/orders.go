package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"costume-storefront/internal/dto"
	"costume-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx)
	if err != nil {
		var fetchErr *service.OrderFetchError
		if errors.As(err, &fetchErr) {
			slog.Warn("order fetch failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "could not load orders, please retry"})
		}
		return err
	}

	return c.JSON(http.StatusOK, orders)
}
