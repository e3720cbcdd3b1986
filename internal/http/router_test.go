package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/timeless-elegance/storefront-gateway/internal/checkout"
	"github.com/timeless-elegance/storefront-gateway/internal/clients"
	"github.com/timeless-elegance/storefront-gateway/internal/config"
	"github.com/timeless-elegance/storefront-gateway/internal/middleware"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// stubBackend plays the storefront backend API. Paths the checkout flow
// reads get canned JSON; everything else echoes {"ok":true}.
type stubBackend struct {
	mu       sync.Mutex
	requests []recordedRequest

	cartStatus int    // non-zero forces this status on GET /api/cart
	pricesJSON string // overrides the delivery price table payload
}

const (
	stubCartJSON = `{"cart":{"items":[
		{"id":"li-1","product":{"id":"p-1","name":"silk scarf","unitPrice":20.00},"size":"M","quantity":2},
		{"id":"li-2","product":{"id":"p-2","name":"leather belt","unitPrice":15.50},"size":"L","quantity":1}
	]}}`
	stubUserJSON   = `{"user":{"region":"Algiers"}}`
	stubPricesJSON = `{"prices":{
		"desk":{"Algiers":5.00,"default":8.00},
		"address":{"Algiers":9.00,"default":12.00}
	}}`
	stubOrderJSON = `{"order":{"id":"abc123"}}`
)

func (sb *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	sb.mu.Lock()
	sb.requests = append(sb.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	sb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/cart":
		if sb.cartStatus != 0 {
			w.WriteHeader(sb.cartStatus)
			_, _ = w.Write([]byte(`{"message":"session expired"}`))
			return
		}
		_, _ = w.Write([]byte(stubCartJSON))
	case r.Method == http.MethodGet && r.URL.Path == "/api/auth/me":
		_, _ = w.Write([]byte(stubUserJSON))
	case r.Method == http.MethodGet && r.URL.Path == "/api/delivery-prices":
		payload := stubPricesJSON
		if sb.pricesJSON != "" {
			payload = sb.pricesJSON
		}
		_, _ = w.Write([]byte(payload))
	case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(stubOrderJSON))
	default:
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func (sb *stubBackend) count(method, path string) int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	n := 0
	for _, rec := range sb.requests {
		if rec.Method == method && rec.Path == path {
			n++
		}
	}
	return n
}

func (sb *stubBackend) last(method, path string) (recordedRequest, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	for i := len(sb.requests) - 1; i >= 0; i-- {
		if sb.requests[i].Method == method && sb.requests[i].Path == path {
			return sb.requests[i], true
		}
	}
	return recordedRequest{}, false
}

func newTestRouter(baseURL string) http.Handler {
	logger := log.New(io.Discard, "", 0)
	httpClient := &http.Client{Timeout: 5 * time.Second}
	backend := clients.NewClient("backend-api", baseURL, httpClient)

	cart := clients.NewCartClient(backend)
	auth := clients.NewAuthClient(backend)
	delivery := clients.NewDeliveryClient(backend)
	order := clients.NewOrderClient(backend)

	return NewRouter(Deps{
		Logger:        logger,
		Cfg:           config.Config{CORSAllowOrigins: []string{"*"}},
		Loader:        &checkout.Loader{Cart: cart, Profile: auth, Prices: delivery},
		Submitter:     &checkout.Submitter{Orders: order},
		Cart:          cart,
		Order:         order,
		Catalog:       clients.NewCatalogClient(backend),
		Delivery:      delivery,
		Notifications: clients.NewNotificationsClient(backend),
	})
}

func TestHealthRoute(t *testing.T) {
	router := newTestRouter("http://example.com")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "storefront-gateway" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRequireBearerMiddleware(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/me/checkout", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] == nil {
		t.Fatalf("expected error message in response: %v", resp)
	}
	if len(sb.requests) != 0 {
		t.Fatalf("expected no backend calls without a credential, got %d", len(sb.requests))
	}
}

func TestCorrelationIDEchoAndGeneration(t *testing.T) {
	router := newTestRouter("http://example.com")

	reqWith := httptest.NewRequest(http.MethodGet, "/health", nil)
	reqWith.Header.Set("X-Correlation-Id", "abc")
	rrWith := httptest.NewRecorder()
	router.ServeHTTP(rrWith, reqWith)
	if got := rrWith.Header().Get("X-Correlation-Id"); got != "abc" {
		t.Fatalf("expected correlation id to be echoed, got %q", got)
	}

	reqGen := httptest.NewRequest(http.MethodGet, "/health", nil)
	rrGen := httptest.NewRecorder()
	router.ServeHTTP(rrGen, reqGen)
	if cid := rrGen.Header().Get("X-Correlation-Id"); cid == "" {
		t.Fatalf("expected generated correlation id to be present")
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter("http://example.com")

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://example.com" {
		t.Fatalf("expected Access-Control-Allow-Origin header")
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" || rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("expected CORS allow headers to be set")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	handler := middleware.Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected error message: %v", body)
	}
}

func TestCheckoutViewHappyPath(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/me/checkout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var view struct {
		Cart struct {
			Items []json.RawMessage `json:"items"`
		} `json:"cart"`
		Region   string  `json:"region"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if view.Region != "Algiers" {
		t.Fatalf("expected pre-seeded region Algiers, got %q", view.Region)
	}
	if len(view.Cart.Items) != 2 {
		t.Fatalf("expected 2 cart items, got %d", len(view.Cart.Items))
	}
	if view.Subtotal != 55.5 {
		t.Fatalf("expected subtotal 55.5, got %v", view.Subtotal)
	}

	for _, path := range []string{"/api/cart", "/api/auth/me", "/api/delivery-prices"} {
		if sb.count(http.MethodGet, path) != 1 {
			t.Fatalf("expected exactly one read of %s", path)
		}
	}
	if rec, ok := sb.last(http.MethodGet, "/api/cart"); !ok || rec.Header.Get("Authorization") != "Bearer tok-1" {
		t.Fatalf("expected bearer credential on cart read")
	}
}

func TestCheckoutQuote(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	cases := []struct {
		name         string
		query        string
		wantDelivery float64
		wantTotal    float64
	}{
		{name: "region override", query: "method=desk&region=Algiers", wantDelivery: 5, wantTotal: 60.5},
		{name: "default fallback", query: "method=desk&region=Unknown", wantDelivery: 8, wantTotal: 63.5},
		{name: "stored region when omitted", query: "method=address", wantDelivery: 9, wantTotal: 64.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me/checkout/quote?"+tc.query, nil)
			req.Header.Set("Authorization", "Bearer tok-1")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
			}
			var quote struct {
				Subtotal      float64 `json:"subtotal"`
				DeliveryPrice float64 `json:"deliveryPrice"`
				Total         float64 `json:"total"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &quote); err != nil {
				t.Fatalf("failed to decode quote: %v", err)
			}
			if quote.Subtotal != 55.5 || quote.DeliveryPrice != tc.wantDelivery || quote.Total != tc.wantTotal {
				t.Fatalf("unexpected quote: %+v", quote)
			}
		})
	}
}

func TestCheckoutQuoteRejectsUnknownMethod(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/me/checkout/quote?method=drone", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if len(sb.requests) != 0 {
		t.Fatalf("expected no backend calls for an invalid method, got %d", len(sb.requests))
	}
}

func TestSubmitOrderHappyPath(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	body := strings.NewReader(`{"deliveryMethod":"desk","region":"Algiers"}`)
	req := httptest.NewRequest(http.MethodPost, "/me/checkout/orders", body)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var conf struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &conf); err != nil {
		t.Fatalf("failed to decode confirmation: %v", err)
	}
	if conf.OrderID != "abc123" {
		t.Fatalf("expected orderId abc123, got %q", conf.OrderID)
	}

	rec, ok := sb.last(http.MethodPost, "/api/orders")
	if !ok {
		t.Fatalf("expected an order-creation call")
	}
	if rec.Header.Get("Authorization") != "Bearer tok-1" {
		t.Fatalf("expected bearer credential on order creation")
	}

	var payload struct {
		Items          []json.RawMessage `json:"items"`
		DeliveryMethod string            `json:"deliveryMethod"`
		Region         string            `json:"region"`
		Subtotal       float64           `json:"subtotal"`
		DeliveryPrice  float64           `json:"deliveryPrice"`
		Total          float64           `json:"total"`
		IdempotencyKey string            `json:"idempotencyKey"`
	}
	if err := json.Unmarshal([]byte(rec.Body), &payload); err != nil {
		t.Fatalf("failed to decode order payload: %v", err)
	}
	if payload.DeliveryMethod != "desk" || payload.Region != "Algiers" {
		t.Fatalf("unexpected delivery fields: %+v", payload)
	}
	if payload.Subtotal != 55.5 || payload.DeliveryPrice != 5 || payload.Total != 60.5 {
		t.Fatalf("unexpected proposed totals: %+v", payload)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(payload.Items))
	}
	if payload.IdempotencyKey == "" {
		t.Fatalf("expected an idempotency key on the order payload")
	}
}

func TestSubmitOrderRejectsMissingAddress(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	body := strings.NewReader(`{"deliveryMethod":"address","region":"Algiers","address":""}`)
	req := httptest.NewRequest(http.MethodPost, "/me/checkout/orders", body)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["field"] != "address" {
		t.Fatalf("expected field-level reason for address, got %v", resp)
	}
	if sb.count(http.MethodPost, "/api/orders") != 0 {
		t.Fatalf("validation failure must not create an order")
	}
}

func TestBackendSessionExpiryPropagatesAs401(t *testing.T) {
	sb := &stubBackend{cartStatus: http.StatusUnauthorized}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/me/checkout", nil)
	req.Header.Set("Authorization", "Bearer stale-tok")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "items") {
		t.Fatalf("must not leak partial cart data on auth failure: %s", rr.Body.String())
	}
}

func TestPriceTableWithoutDefaultIsConfigError(t *testing.T) {
	sb := &stubBackend{pricesJSON: `{"prices":{"desk":{"Algiers":5.00},"address":{"default":12.00}}}`}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/me/checkout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a misconfigured price table, got %d", rr.Code)
	}
}

func TestForwardingPathsAndMethods(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	auth := map[string]string{"Authorization": "Bearer tok-1"}
	cases := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantPath string
	}{
		{name: "product list", method: http.MethodGet, path: "/products?category=women", wantPath: "/api/products"},
		{name: "product by id", method: http.MethodGet, path: "/products/p-7", wantPath: "/api/products/p-7"},
		{name: "my cart", method: http.MethodGet, path: "/me/cart", headers: auth, wantPath: "/api/cart"},
		{name: "remove cart item", method: http.MethodDelete, path: "/me/cart/items/li-1", headers: auth, wantPath: "/api/cart/items/li-1"},
		{name: "my orders", method: http.MethodGet, path: "/me/orders", headers: auth, wantPath: "/api/orders"},
		{name: "order by id", method: http.MethodGet, path: "/orders/ord-1", wantPath: "/api/orders/ord-1"},
		{name: "delivery prices", method: http.MethodGet, path: "/delivery-prices", wantPath: "/api/delivery-prices"},
		{name: "notifications poll", method: http.MethodGet, path: "/me/notifications", headers: auth, wantPath: "/api/notifications"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code < 200 || rr.Code > 299 {
				t.Fatalf("unexpected status: %d", rr.Code)
			}

			rec, ok := sb.last(tc.method, tc.wantPath)
			if !ok {
				t.Fatalf("expected upstream request %s %s", tc.method, tc.wantPath)
			}
			if cid := rec.Header.Get("X-Correlation-Id"); cid == "" {
				t.Fatalf("expected correlation id forwarded")
			}
		})
	}
}

func TestForwardingBodyHeadersAndHopByHopStripping(t *testing.T) {
	sb := &stubBackend{}
	srv := httptest.NewServer(sb)
	defer srv.Close()

	router := newTestRouter(srv.URL)

	body := strings.NewReader(`{"productId":"p-1","size":"M","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/me/cart/items", body)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Transfer-Encoding", "chunked")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rec, ok := sb.last(http.MethodPost, "/api/cart/items")
	if !ok {
		t.Fatalf("expected upstream request")
	}
	if got := rec.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type not forwarded, got %q", got)
	}
	if got := rec.Header.Get("Authorization"); got != "Bearer tok-1" {
		t.Fatalf("authorization not forwarded, got %q", got)
	}
	if strings.TrimSpace(rec.Body) != `{"productId":"p-1","size":"M","quantity":1}` {
		t.Fatalf("unexpected body: %q", rec.Body)
	}
	if rec.Header.Get("Connection") != "" {
		t.Fatalf("hop-by-hop headers should not be forwarded: %v", rec.Header)
	}
}
