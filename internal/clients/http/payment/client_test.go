package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func signed(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrderSendsMinorUnits(t *testing.T) {
	var captured createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key_test", user)
		require.Equal(t, "secret_test", pass)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"id":"order_abc123"}`))
	}))
	defer server.Close()

	client, err := NewClient("key_test", "secret_test", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	id, err := client.CreateOrder(context.Background(), decimal.RequireFromString("474.80"), "INR", "ORD-1")
	require.NoError(t, err)
	require.Equal(t, "order_abc123", id)
	require.Equal(t, int64(47480), captured.Amount)
	require.Equal(t, "INR", captured.Currency)
	require.Equal(t, "ORD-1", captured.Receipt)
}

func TestVerifySignature(t *testing.T) {
	client, err := NewClient("key_test", "secret_test")
	require.NoError(t, err)

	good := signed("secret_test", "order_1", "pay_1")
	require.True(t, client.VerifySignature("order_1", "pay_1", good))
	require.False(t, client.VerifySignature("order_1", "pay_2", good))
	require.False(t, client.VerifySignature("order_1", "pay_1", "forged"))
	require.False(t, client.VerifySignature("", "pay_1", good))
}

func TestRefundPostsToPaymentPath(t *testing.T) {
	var path string
	var captured refundRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient("key_test", "secret_test", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	require.NoError(t, client.Refund(context.Background(), "pay_9", decimal.NewFromInt(500)))
	require.Equal(t, "/payments/pay_9/refund", path)
	require.Equal(t, int64(50000), captured.Amount)
}

func TestGatewayErrorsSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient("key_test", "secret_test", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = client.CreateOrder(context.Background(), decimal.NewFromInt(100), "INR", "ORD-2")
	require.ErrorContains(t, err, "payment gateway error")
}
