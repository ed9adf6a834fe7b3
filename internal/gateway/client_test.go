package gateway_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newClient() *gateway.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return gateway.NewClient(logger, config.Gateway{
		Timeout:     time.Second,
		MaxAttempts: 3,
		RPS:         1000,
		Burst:       10,
	})
}

func orderRequest() gateway.OrderRequest {
	return gateway.OrderRequest{
		Method:    "acacia_pay",
		Reference: "SHR-abc",
		Subject:   "Order SO-1",
		Amount:    decimal.RequireFromString("100"),
		NotifyURL: "https://shop.example.com/webhooks/acacia",
		ReturnURL: "https://shop.example.com/payment/success?share=abc",
	}
}

func TestClient_CreateOrder(t *testing.T) {
	testCases := []struct {
		name        string
		handler     func(calls *atomic.Int32) http.HandlerFunc
		wantSuccess bool
		wantURL     string
		wantCalls   int32
	}{
		{
			name: "success",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
					assert.NoError(t, r.ParseForm())

					fields := gateway.FieldsFromForm(r.PostForm)
					assert.NoError(t, gateway.Verify(fields, secret))
					assert.Equal(t, "100.00", fields["money"])
					assert.Equal(t, "SHR-abc", fields["out_trade_no"])
					assert.Equal(t, "MD5", fields["sign_type"])
					assert.Equal(t, "SHR-abc", r.Header.Get("Idempotency-Key"))

					w.Write([]byte(`{"code":1,"msg":"ok","trade_no":"T1","payurl":"https://pay.example.com/p/T1"}`))
				}
			},
			wantSuccess: true,
			wantURL:     "https://pay.example.com/p/T1",
			wantCalls:   1,
		},
		{
			name: "business error is not retried",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
					w.Write([]byte(`{"code":-1,"msg":"merchant disabled"}`))
				}
			},
			wantCalls: 1,
		},
		{
			name: "server error is retried",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if calls.Add(1) < 3 {
						w.WriteHeader(http.StatusBadGateway)
						return
					}
					w.Write([]byte(`{"code":"1","payurl":"https://pay.example.com/p/T2"}`))
				}
			},
			wantSuccess: true,
			wantURL:     "https://pay.example.com/p/T2",
			wantCalls:   3,
		},
		{
			name: "client error is not retried",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
					w.WriteHeader(http.StatusUnauthorized)
				}
			},
			wantCalls: 1,
		},
		{
			name: "malformed response",
			handler: func(calls *atomic.Int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					calls.Add(1)
					w.Write([]byte(`<html>`))
				}
			},
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(tc.handler(&calls))
			defer srv.Close()

			creds := gateway.Credentials{MerchantID: "1001", Secret: secret, APIURL: srv.URL}
			res := newClient().CreateOrder(t.Context(), creds, orderRequest())

			assert.Equal(t, tc.wantSuccess, res.Success)
			assert.Equal(t, tc.wantURL, res.PaymentURL)
			assert.Equal(t, tc.wantCalls, calls.Load())
			if !tc.wantSuccess {
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestClient_CreateOrder_NotConfigured(t *testing.T) {
	res := newClient().CreateOrder(t.Context(), gateway.Credentials{}, orderRequest())
	assert.False(t, res.Success)
	assert.Equal(t, "gateway is not configured", res.Error)
}
