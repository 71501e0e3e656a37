package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/heladeria-app/storefront/internal/auth"
	"github.com/heladeria-app/storefront/internal/cart"
	"github.com/heladeria-app/storefront/internal/catalog"
	"github.com/heladeria-app/storefront/internal/order"
)

type testApp struct {
	router  *gin.Engine
	cart    *cart.Cart
	session *auth.Session
}

// newTestApp wires the full in-memory stack behind the real handlers.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	entry := logrus.NewEntry(l)

	svc := catalog.NewService(catalog.NewSeededSource(), entry)
	session := auth.NewSession(context.Background(), auth.NewMemoryUserStore(), auth.NewMemoryCredentialStore(), entry)
	sessionCart := cart.New()
	store := order.NewMemoryStore()
	ctrl := order.NewController(store, order.NewFeed(store), entry)

	r := gin.New()
	r.GET("/products", listProductsHandler(svc))
	r.POST("/auth/register", registerHandler(session))
	r.POST("/auth/login", loginHandler(session))
	r.POST("/auth/logout", logoutHandler(session))
	r.GET("/auth/me", meHandler(session))
	r.GET("/cart", getCartHandler(sessionCart))
	r.POST("/cart/items", addCartItemHandler(sessionCart, svc))
	r.PUT("/cart/items/:id", setCartQuantityHandler(sessionCart))
	r.DELETE("/cart/items/:id", removeCartItemHandler(sessionCart))
	r.POST("/orders", placeOrderHandler(ctrl, sessionCart, session))
	r.GET("/orders", listOrdersHandler(ctrl))
	r.GET("/orders/:id", getOrderHandler(ctrl))

	return &testApp{router: r, cart: sessionCart, session: session}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestListProducts_SearchFilter(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/products?q=gran", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Items []catalog.Product `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Granizado" {
		t.Fatalf("expected only Granizado, got %+v", got.Items)
	}
}

func TestAuthFlow_OverHTTP(t *testing.T) {
	app := newTestApp(t)

	// unauthenticated
	if w := app.do(t, http.MethodGet, "/auth/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", w.Code)
	}

	// register
	w := app.do(t, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"1234","name":"Ana"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", w.Code, w.Body.String())
	}

	// duplicate
	if w := app.do(t, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"1234","name":"Ana"}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", w.Code)
	}

	// logout, bad login, good login
	if w := app.do(t, http.MethodPost, "/auth/logout", ""); w.Code != http.StatusNoContent {
		t.Fatalf("logout status=%d", w.Code)
	}
	if w := app.do(t, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}
	if w := app.do(t, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"1234"}`); w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodGet, "/auth/me", "")
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d", w.Code)
	}
	var me auth.User
	_ = json.Unmarshal(w.Body.Bytes(), &me)
	if me.Name != "Ana" {
		t.Fatalf("me name=%q, expected Ana", me.Name)
	}
}

func TestCartAndOrder_FullFlow(t *testing.T) {
	app := newTestApp(t)

	if w := app.do(t, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"1234","name":"Ana"}`); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %s", w.Body.String())
	}

	// empty cart order is rejected and persists nothing
	if w := app.do(t, http.MethodPost, "/orders", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", w.Code)
	}

	// add two strawberry (id 5, 4.50) and one granizado (id 4, 4.00)
	for _, body := range []string{
		`{"product_id":"5"}`, `{"product_id":"5"}`, `{"product_id":"4"}`,
	} {
		if w := app.do(t, http.MethodPost, "/cart/items", body); w.Code != http.StatusOK {
			t.Fatalf("add item status=%d body=%s", w.Code, w.Body.String())
		}
	}

	// unknown product
	if w := app.do(t, http.MethodPost, "/cart/items", `{"product_id":"999"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", w.Code)
	}

	// drop the granizado via quantity 0
	if w := app.do(t, http.MethodPut, "/cart/items/4", `{"quantity":0}`); w.Code != http.StatusOK {
		t.Fatalf("set quantity status=%d", w.Code)
	}
	if app.cart.Len() != 1 {
		t.Fatalf("cart len=%d, expected 1 after zeroing", app.cart.Len())
	}

	// place the order: 2 × 4.50 = 9.00
	w := app.do(t, http.MethodPost, "/orders", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("place order status=%d body=%s", w.Code, w.Body.String())
	}
	var placed order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if placed.Total.String() != "9" && placed.Total.String() != "9.00" {
		t.Fatalf("total=%s, expected 9.00", placed.Total)
	}
	if len(placed.Items) != 1 || placed.Items[0].ProductName != "Helado de fresa" {
		t.Fatalf("unexpected items: %+v", placed.Items)
	}

	// cart cleared on success
	if app.cart.Len() != 0 {
		t.Fatalf("cart not cleared after order")
	}

	// order is retrievable and listed
	if w := app.do(t, http.MethodGet, "/orders/"+placed.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("get order status=%d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/orders/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", w.Code)
	}
	w = app.do(t, http.MethodGet, "/orders", "")
	var list struct {
		Items []order.Order `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Items) != 1 {
		t.Fatalf("orders list len=%d, expected 1", len(list.Items))
	}
}

func TestPlaceOrder_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	if w := app.do(t, http.MethodPost, "/cart/items", `{"product_id":"4"}`); w.Code != http.StatusOK {
		t.Fatalf("add item failed")
	}
	if w := app.do(t, http.MethodPost, "/orders", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}
}
