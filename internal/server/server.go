package server

import (
	"log/slog"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/handler"
	"costume-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	bundleHandler   *handler.BundleHandler
}

func NewServer(
	carts *cart.Manager,
	bundleService service.BundleService,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	baseURL string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		cartHandler:     handler.NewCartHandler(carts, bundleService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, carts, baseURL),
		orderHandler:    handler.NewOrderHandler(orderService),
		bundleHandler:   handler.NewBundleHandler(bundleService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/bundles", s.bundleHandler.ListBundles)
	api.GET("/bundles/search", s.bundleHandler.SearchBundles)
	api.GET("/bundles/:id", s.bundleHandler.GetBundle)

	// -------- cart --------
	api.GET("/cart", s.cartHandler.GetCart)
	api.DELETE("/cart", s.cartHandler.ClearCart)
	api.POST("/cart/items", s.cartHandler.AddItem)
	api.PUT("/cart/items/:id", s.cartHandler.UpdateQuantity)
	api.DELETE("/cart/items/:id", s.cartHandler.RemoveItem)
	api.POST("/cart/bundles/:id", s.cartHandler.AddBundle)
	api.POST("/cart/bundles/:id/items", s.cartHandler.AddBundleItems)

	// -------- checkout / orders --------
	api.POST("/checkout", s.checkoutHandler.Checkout)
	api.GET("/orders", s.orderHandler.ListOrders)

	// provider success redirect lands outside /api
	s.echo.GET("/success", s.checkoutHandler.HandleSuccess)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
