package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ordersports "github.com/pethaven/pethaven-api/internal/domains/orders/ports"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

var _ ordersports.PaymentGateway = (*Client)(nil)

// Client talks to a Razorpay-compatible payment gateway. Amounts cross the
// wire in minor currency units (paise for INR).
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the endpoint, used by tests to point at a stub server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient builds a gateway client authenticated with the key pair.
func NewClient(keyID, keySecret string, opts ...Option) (*Client, error) {
	keyID = strings.TrimSpace(keyID)
	keySecret = strings.TrimSpace(keySecret)
	if keyID == "" || keySecret == "" {
		return nil, errors.New("payment gateway key id and secret are required")
	}
	c := &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder registers a payment intent and returns the gateway's order id.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error) {
	payload := createOrderRequest{
		Amount:   toMinorUnits(amount),
		Currency: currency,
		Receipt:  receipt,
	}
	var parsed createOrderResponse
	if err := c.post(ctx, "/orders", payload, &parsed); err != nil {
		return "", err
	}
	if parsed.ID == "" {
		return "", errors.New("payment gateway returned no order id")
	}
	return parsed.ID, nil
}

// VerifySignature checks the HMAC-SHA256 signature the gateway computes over
// "orderID|paymentID" with the key secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type refundRequest struct {
	Amount int64 `json:"amount"`
}

// Refund initiates a refund for the captured payment.
func (c *Client) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) error {
	if strings.TrimSpace(paymentID) == "" {
		return errors.New("payment id is required for a refund")
	}
	return c.post(ctx, "/payments/"+paymentID+"/refund", refundRequest{Amount: toMinorUnits(amount)}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode gateway request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("payment gateway error: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}

// toMinorUnits converts a major-unit amount to integral minor units.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
