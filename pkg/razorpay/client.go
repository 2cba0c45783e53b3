package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/config"
)

var (
	errKeyIDRequired     = errors.New("razorpay key id is required")
	errKeySecretRequired = errors.New("razorpay key secret is required")
)

// Client is a thin wrapper over the Razorpay Orders REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
}

// Order is the gateway order handle returned by CreateOrder.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewClient validates the configured credentials and builds the API client.
func NewClient(cfg config.RazorpayConfig) (*Client, error) {
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		return nil, errKeyIDRequired
	}
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keySecret == "" {
		return nil, errKeySecretRequired
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "INR"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		currency:   currency,
	}, nil
}

// KeyID returns the publishable key clients use to open the checkout widget.
func (c *Client) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// Currency reports the configured settlement currency.
func (c *Client) Currency() string {
	if c == nil {
		return ""
	}
	return c.currency
}

// CreateOrder registers a gateway order for the given rupee amount.
// The API takes amounts in the smallest currency unit, so rupees are
// converted to paise before the call.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*Order, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("order amount must be positive, got %s", amount)
	}

	paise := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	body, err := json.Marshal(createOrderRequest{
		Amount:   paise,
		Currency: c.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling razorpay: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if jsonErr := json.Unmarshal(payload, &apiErr); jsonErr == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay order create failed (%d): %s", resp.StatusCode, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay order create failed with status %d", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fmt.Errorf("decoding razorpay order: %w", err)
	}
	if order.ID == "" {
		return nil, errors.New("razorpay returned an order without an id")
	}
	return &order, nil
}
