package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/heladeria-app/storefront/internal/auth"
	"github.com/heladeria-app/storefront/internal/cart"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Controller orchestrates order placement against the store and notifies the
// feed. It never mutates an order after placement.
type Controller struct {
	store      Store
	feed       *Feed
	log        *logrus.Entry
	now        func() time.Time
	retainCart bool
}

type Option func(*Controller)

// WithRetainCart keeps the cart after a successful placement instead of
// clearing it.
func WithRetainCart() Option {
	return func(c *Controller) { c.retainCart = true }
}

// WithClock overrides the placement timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(store Store, feed *Feed, log *logrus.Entry, opts ...Option) *Controller {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &Controller{
		store: store,
		feed:  feed,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlaceOrder snapshots the cart into a new persisted Order owned by the
// session's current user. The cart is cleared on success unless the
// controller was built with WithRetainCart.
func (c *Controller) PlaceOrder(ctx context.Context, ct *cart.Cart, session *auth.Session) (*Order, error) {
	user := session.CurrentUser()
	if user == nil {
		return nil, ErrUnauthenticated
	}
	entries := ct.Items()
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		PlacedAt: c.now(),
		Items:    make([]LineItem, 0, len(entries)),
	}
	total := decimal.Zero
	for _, e := range entries {
		li := LineItem{
			ProductID:   e.Product.ID,
			ProductName: e.Product.Name,
			UnitPrice:   e.Product.Price,
			Quantity:    e.Quantity,
		}
		o.Items = append(o.Items, li)
		total = total.Add(li.Subtotal())
	}
	o.Total = total

	if err := c.store.Insert(ctx, o); err != nil {
		return nil, err
	}
	if !c.retainCart {
		ct.Clear()
	}
	if c.feed != nil {
		c.feed.Publish(ctx)
	}
	c.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"user_id":  o.UserID,
		"total":    o.Total.String(),
		"items":    len(o.Items),
	}).Info("order placed")
	return o, nil
}

// GetOrder returns the persisted order, or ErrNotFound.
func (c *Controller) GetOrder(ctx context.Context, id string) (*Order, error) {
	return c.store.GetByID(ctx, id)
}

// ListOrders returns every persisted order, newest first.
func (c *Controller) ListOrders(ctx context.Context) ([]Order, error) {
	return c.store.ListAll(ctx)
}

// ObserveOrders yields a live sequence of the full order list, starting with
// the current state. Canceling ctx (or calling stop) ends the stream.
func (c *Controller) ObserveOrders(ctx context.Context) (<-chan []Order, func()) {
	return c.feed.Subscribe(ctx)
}
