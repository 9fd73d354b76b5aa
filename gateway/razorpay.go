// Package gateway is a small REST client for a Razorpay-style payment gateway.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrNotFound = errors.New("gateway: resource not found")

// APIError is a non-2xx gateway answer. Description is for logs only.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: status %d: %s: %s", e.Status, e.Code, e.Description)
}

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

type Payment struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	OrderID   string `json:"order_id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type errorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		timeout:   cfg.Timeout,
	}
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	agent := fiber.Post(c.baseURL + "/orders").JSON(req)

	var order Order
	if err := c.do(ctx, agent, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) FetchPayment(ctx context.Context, id string) (*Payment, error) {
	agent := fiber.Get(c.baseURL + "/payments/" + url.PathEscape(id))

	var payment Payment
	if err := c.do(ctx, agent, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) do(ctx context.Context, agent *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent.BasicAuth(c.keyID, c.keySecret).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Timeout(timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("gateway: request failed: %w", errors.Join(errs...))
	}

	if status < 200 || status >= 300 {
		return decodeError(status, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("gateway: malformed response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Error.Code
		apiErr.Description = eb.Error.Description
	}

	if status == fiber.StatusNotFound || strings.Contains(strings.ToLower(apiErr.Description), "does not exist") {
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error())
	}
	return apiErr
}
