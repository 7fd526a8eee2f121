package client

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/cart"
)

var (
	ErrNotAuthenticated = errors.New("please login to place an order")
	ErrEmptyCart        = errors.New("your cart is empty")
)

// Shipping is the checkout form.
type Shipping struct {
	Address       string
	Phone         string
	PaymentMethod string
}

// App is the client-side application state: who is logged in and what is in
// the cart. The cart is shared by every user of the same storage.
type App struct {
	mu   sync.Mutex
	api  *Client
	user *User
	cart *cart.Cart
}

func NewApp(api *Client, storage cart.Storage) (*App, error) {
	c, err := cart.Open(storage)
	if err != nil {
		return nil, err
	}
	return &App{api: api, cart: c}, nil
}

// CurrentUser returns the logged in user, or nil.
func (a *App) CurrentUser() *User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Refresh asks the server who the session belongs to. Any failure leaves the
// app logged out.
func (a *App) Refresh(ctx context.Context) *User {
	user, err := a.api.Me(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.user = nil
		return nil
	}
	a.user = &user
	u := user
	return &u
}

func (a *App) Login(ctx context.Context, email, password string) (User, error) {
	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	a.setUser(&user)
	return user, nil
}

func (a *App) Register(ctx context.Context, name, email, password string) (User, error) {
	user, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return User{}, err
	}
	a.setUser(&user)
	return user, nil
}

// Logout ends the session and empties the cart.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	return a.cart.Clear()
}

func (a *App) AddToCart(item cart.Item) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Add(item)
}

func (a *App) RemoveFromCart(productID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Remove(productID)
}

func (a *App) CartItems() []cart.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Items()
}

func (a *App) CartCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Count()
}

func (a *App) CartTotal() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Total()
}

// Checkout places an order for the whole cart. Once the server accepts it,
// the ordered lines are taken off the cart; anything added while the order
// was in flight stays.
func (a *App) Checkout(ctx context.Context, ship Shipping) (OrderSummary, error) {
	a.mu.Lock()
	if a.user == nil {
		a.mu.Unlock()
		return OrderSummary{}, ErrNotAuthenticated
	}
	if a.cart.IsEmpty() {
		a.mu.Unlock()
		return OrderSummary{}, ErrEmptyCart
	}

	lines := a.cart.Items()
	req := OrderRequest{
		Items:           make([]OrderItem, 0, len(lines)),
		TotalAmount:     a.cart.Total(),
		ShippingAddress: ship.Address,
		Phone:           ship.Phone,
		PaymentMethod:   ship.PaymentMethod,
	}
	for _, line := range lines {
		req.Items = append(req.Items, OrderItem(line))
	}
	a.mu.Unlock()

	summary, err := a.api.PlaceOrder(ctx, req)
	if err != nil {
		return OrderSummary{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return summary, a.cart.Subtract(lines)
}

func (a *App) setUser(u *User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}
