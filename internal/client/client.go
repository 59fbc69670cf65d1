// Package client is the storefront's API client. Credentials live in an
// explicit Session and are attached per request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/matiasroldan/cuchilleria/internal/order"
	"github.com/shopspring/decimal"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: session,
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and stores the returned credentials in the
// session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &resp); err != nil {
		return nil, err
	}
	c.session.SetCredentials(resp.Token, resp.User)
	return resp.User, nil
}

// Login authenticates and stores the returned credentials in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	c.session.SetCredentials(resp.Token, resp.User)
	return resp.User, nil
}

// Logout clears the session. No server call is involved.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) ListProducts(ctx context.Context, category, material, ptype string) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if material != "" {
		q.Set("material", material)
	}
	if ptype != "" {
		q.Set("type", ptype)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PlaceOrder submits the cart's line requests. Only product ids and
// quantities cross the wire; the server computes the total.
func (c *Client) PlaceOrder(ctx context.Context, lines []order.LineRequest) (*order.PlacedOrder, error) {
	type item struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	items := make([]item, 0, len(lines))
	for _, line := range lines {
		items = append(items, item{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	var resp struct {
		OrderID     int64           `json:"orderId"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	return &order.PlacedOrder{OrderID: resp.OrderID, TotalAmount: resp.TotalAmount}, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id int64) (*models.OrderWithItems, error) {
	var o models.OrderWithItems
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
