package handler

import (
	"errors"
	"net/http"

	"costume-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type BundleHandler struct {
	bundleService service.BundleService
}

func NewBundleHandler(bundleService service.BundleService) *BundleHandler {
	return &BundleHandler{
		bundleService: bundleService,
	}
}

func (h *BundleHandler) ListBundles(c echo.Context) error {
	ctx := c.Request().Context()

	bundles, err := h.bundleService.ListBundles(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundles)
}

func (h *BundleHandler) GetBundle(c echo.Context) error {
	ctx := c.Request().Context()

	bundle, err := h.bundleService.GetBundle(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBundleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "bundle not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, bundle)
}

func (h *BundleHandler) SearchBundles(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return h.ListBundles(c)
	}

	bundles, err := h.bundleService.SearchBundles(ctx, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundles)
}
