package handler

import (
	"errors"
	"net/http"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/dto"
	"costume-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	carts         *cart.Manager
	bundleService service.BundleService
}

func NewCartHandler(carts *cart.Manager, bundleService service.BundleService) *CartHandler {
	return &CartHandler{
		carts:         carts,
		bundleService: bundleService,
	}
}

// cartFromHeader resolves the caller's Store from the X-Cart-Id header.
func (h *CartHandler) cartFromHeader(c echo.Context) (*cart.Store, error) {
	cartID := c.Request().Header.Get("X-Cart-Id")
	if cartID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing X-Cart-Id header")
	}

	store, err := h.carts.Get(cartID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid X-Cart-Id header")
	}
	return store, nil
}

func cartResponse(store *cart.Store) dto.CartResponse {
	return dto.CartResponse{
		Items:      store.Items(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	var item cart.Item
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if item.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "item id is required")
	}
	if item.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "item price must not be negative")
	}

	store.AddItem(item)
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	store.UpdateQuantity(c.Param("id"), req.Quantity)
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	store.RemoveItem(c.Param("id"))
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	store.Clear()
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) AddBundle(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	if err := h.bundleService.AddBundleToCart(ctx, store, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrBundleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "bundle not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) AddBundleItems(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.cartFromHeader(c)
	if err != nil {
		return err
	}

	var req dto.AddBundleItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.bundleService.AddBundleItemsToCart(ctx, store, c.Param("id"), req.Selections); err != nil {
		switch {
		case errors.Is(err, service.ErrBundleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "bundle not found")
		case errors.Is(err, service.ErrInvalidBundleIndex):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(http.StatusOK, cartResponse(store))
}
