package http

import (
	"log"
	"net/http"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
	"github.com/timeless-elegance/storefront-gateway/internal/clients"
	"github.com/timeless-elegance/storefront-gateway/internal/config"
	"github.com/timeless-elegance/storefront-gateway/internal/http/handlers"
	"github.com/timeless-elegance/storefront-gateway/internal/middleware"
)

type Deps struct {
	Logger *log.Logger
	Cfg    config.Config

	Loader    *checkout.Loader
	Submitter *checkout.Submitter

	Cart          *clients.CartClient
	Order         *clients.OrderClient
	Catalog       *clients.CatalogClient
	Delivery      *clients.DeliveryClient
	Notifications *clients.NotificationsClient

	HealthProbes []clients.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Health
	health := &handlers.HealthHandler{Probes: d.HealthProbes}
	mux.HandleFunc("GET /health", health.Gateway)
	mux.HandleFunc("GET /health/backend", health.Backend)

	// Checkout flow
	co := handlers.NewCheckoutHandler(d.Loader, d.Submitter)
	mux.HandleFunc("GET /me/checkout", co.GetCheckout)
	mux.HandleFunc("GET /me/checkout/quote", co.QuoteDelivery)
	mux.HandleFunc("POST /me/checkout/orders", co.SubmitOrder)

	// Cart maintenance (pass-through)
	cart := handlers.NewCartHandler(d.Cart)
	mux.HandleFunc("GET /me/cart", cart.GetCartMe)
	mux.HandleFunc("POST /me/cart/items", cart.AddItemMe)
	mux.HandleFunc("PATCH /me/cart/items/{itemId}", cart.UpdateItemMe)
	mux.HandleFunc("DELETE /me/cart/items/{itemId}", cart.RemoveItemMe)

	// Product browsing (pass-through)
	cat := handlers.NewCatalogHandler(d.Catalog)
	mux.HandleFunc("GET /products", cat.ListProducts)
	mux.HandleFunc("GET /products/{id}", cat.GetProduct)

	// Order history (pass-through)
	order := handlers.NewOrderHandler(d.Order)
	mux.HandleFunc("GET /me/orders", order.ListOrdersMe)
	mux.HandleFunc("GET /orders/{orderId}", order.GetOrder)

	// Delivery prices + notification polling (pass-through)
	del := handlers.NewDeliveryHandler(d.Delivery)
	mux.HandleFunc("GET /delivery-prices", del.GetPrices)

	notif := handlers.NewNotificationsHandler(d.Notifications)
	mux.HandleFunc("GET /me/notifications", notif.ListMe)

	// Middlewares (outer -> inner: logging, cors, correlation, auth, recover)
	var h http.Handler = mux
	h = middleware.Recover(d.Logger)(h)
	h = middleware.RequireBearerForMeRoutes(h)
	h = middleware.CorrelationID(h)
	h = middleware.CORS(d.Cfg.CORSAllowOrigins)(h)
	h = middleware.Logging(d.Logger)(h)

	return h
}
