package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
	"github.com/timeless-elegance/storefront-gateway/internal/clients"
	"github.com/timeless-elegance/storefront-gateway/internal/config"
	httpapi "github.com/timeless-elegance/storefront-gateway/internal/http"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront-gateway] ", log.LstdFlags|log.Lmicroseconds)

	// Base HTTP client (shared)
	sharedHTTP := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	// One backend API behind a single base URL
	backend := clients.NewClient("backend-api", cfg.BackendURL, sharedHTTP)

	// Typed clients
	cart := clients.NewCartClient(backend)
	auth := clients.NewAuthClient(backend)
	delivery := clients.NewDeliveryClient(backend)
	order := clients.NewOrderClient(backend)
	catalog := clients.NewCatalogClient(backend)
	notifications := clients.NewNotificationsClient(backend)

	loader := &checkout.Loader{Cart: cart, Profile: auth, Prices: delivery}
	submitter := &checkout.Submitter{Orders: order}

	healthProbes := []clients.HealthProbe{
		{Name: "backend-api", Client: backend, Path: "/api/health"},
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:        logger,
		Cfg:           cfg,
		Loader:        loader,
		Submitter:     submitter,
		Cart:          cart,
		Order:         order,
		Catalog:       catalog,
		Delivery:      delivery,
		Notifications: notifications,
		HealthProbes:  healthProbes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}
