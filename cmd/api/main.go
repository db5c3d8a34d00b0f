package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/client"
	"costume-storefront/internal/config"
	"costume-storefront/internal/repository"
	"costume-storefront/internal/server"
	"costume-storefront/internal/service"
	"costume-storefront/pkg/logger"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "costume-storefront",
		Env:     cfg.Environment.Name,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})

	db := client.InitDBClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	orderRepo := repository.NewOrderRepository(db)
	bundleRepo := repository.NewBundleRepository(db)

	if err := bundleRepo.Seed(context.Background()); err != nil {
		log.Error("seed bundles", "error", err)
		os.Exit(1)
	}

	carts := cart.NewManager(cfg.CartDir)
	bundleService := service.NewBundleService(bundleRepo)
	checkoutService := service.NewCheckoutService(stripeClient, orderRepo)
	orderService := service.NewOrderService(orderRepo)

	srv := server.NewServer(carts, bundleService, checkoutService, orderService, cfg.BaseURL)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}
}
