// Package client is a typed client for the storefront REST API. It keeps the
// session cookie in a cookie jar, the way a browser would.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/telemetry"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	Phone           string      `json:"phone"`
	PaymentMethod   string      `json:"paymentMethod"`
}

type OrderSummary struct {
	OrderID     string    `json:"orderId"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*http.Client)

// WithTransport replaces the base transport. It is still wrapped for tracing.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *http.Client) { c.Transport = telemetry.Transport(rt) }
}

func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) { c.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	hc := &http.Client{
		Jar:       jar,
		Transport: telemetry.Transport(nil),
		Timeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(hc)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}, nil
}

/* =========================
   CATALOG
========================= */

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products", nil, &out)
	return out, err
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/featured", nil, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var out models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out)
	return out, err
}

/* =========================
   AUTH
========================= */

type userEnvelope struct {
	User User `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &out)
	return out.User, err
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out)
	return out.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out.User, err
}

/* =========================
   ORDERS, CONTACT, HEALTH
========================= */

func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (OrderSummary, error) {
	var out struct {
		Order OrderSummary `json:"order"`
	}
	err := c.do(ctx, http.MethodPost, "/api/orders", req, &out)
	return out.Order, err
}

func (c *Client) Order(ctx context.Context, orderID string) (models.PopulatedOrder, error) {
	var out models.PopulatedOrder
	err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &out)
	return out, err
}

// Contact submits the contact form and returns the confirmation message.
func (c *Client) Contact(ctx context.Context, name, email, message string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/contact", map[string]string{
		"name": name, "email": email, "message": message,
	}, &out)
	return out.Message, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "Request failed"}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
