// Package client is the storefront-side consumer of the JSON API: a typed HTTP
// client, the remote-synced cart store, and order placement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kartify-in/storefront-api/errs"
)

// Session supplies the bearer credential. The subsystem never reaches into
// ambient storage; whoever constructs the client owns the session lifecycle.
type Session interface {
	Authenticated() bool
	Token() string
}

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	session Session
	httpc   *http.Client
}

func New(baseURL string, session Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) authenticated() bool {
	return c.session != nil && c.session.Authenticated()
}

// do runs one round trip and maps failures onto the error taxonomy: transport
// and timeout failures become Unreachable (retryable), 401/403 become
// AuthRequired, and other error responses keep the server message verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errs.Unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errs.AuthRequired()
	}
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		var apiErr errs.Error
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return &apiErr
		}
		return errs.New("", http.StatusText(resp.StatusCode))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// -------- Wire Types --------

type CartItem struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line     string `json:"line"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

type OrderRequest struct {
	ShippingAddress Address `json:"shipping_address"`
	PaymentMethod   string  `json:"payment_method"`
	CouponCode      string  `json:"coupon_code,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type OrderItem struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

type Order struct {
	ID           uint        `json:"id"`
	OrderRef     string      `json:"order_ref"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	Discount     float64     `json:"discount"`
	ShippingCost float64     `json:"shipping_cost"`
	Tax          float64     `json:"tax"`
	TotalAmount  float64     `json:"total_amount"`
}

// -------- Operations --------

func (c *Client) FetchCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/user/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if !c.authenticated() {
		return nil, errs.AuthRequired()
	}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Order(ctx context.Context, idOrRef string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+idOrRef, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/user", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ValidateCoupon returns the discount amount, or a coupon taxonomy error.
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderAmount float64) (float64, error) {
	body := map[string]interface{}{"code": code, "order_amount": orderAmount}
	var resp struct {
		Valid          bool      `json:"valid"`
		DiscountAmount float64   `json:"discount_amount"`
		Code           errs.Code `json:"code"`
		Error          string    `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/coupons/validate", body, &resp); err != nil {
		return 0, err
	}
	if !resp.Valid {
		return 0, errs.New(resp.Code, resp.Error)
	}
	return resp.DiscountAmount, nil
}
