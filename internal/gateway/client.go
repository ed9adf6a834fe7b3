package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 64 << 10

var errPermanent = errors.New("permanent gateway failure")

type Credentials struct {
	MerchantID string
	Secret     string
	APIURL     string
}

type OrderRequest struct {
	Method    string
	Reference string
	Subject   string
	Amount    decimal.Decimal
	NotifyURL string
	ReturnURL string
}

// Result is the normalized gateway answer. A failed call is never a Go error.
type Result struct {
	Success    bool
	PaymentURL string
	TradeNo    string
	Error      string
}

type createOrderResponse struct {
	Code    json.Number `json:"code"`
	Msg     string      `json:"msg"`
	TradeNo string      `json:"trade_no"`
	PayURL  string      `json:"payurl"`
}

type Client struct {
	logger  *slog.Logger
	http    *http.Client
	limiter *rate.Limiter
	retry   utils.RetryConfig
	tracer  trace.Tracer
}

func NewClient(logger *slog.Logger, cfg config.Gateway) *Client {
	return &Client{
		logger:  logger.With(slog.String("component", "gateway")),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		retry: utils.RetryConfig{
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2,
		},
		tracer: otel.Tracer("shared-payment-service/gateway"),
	}
}

// SignedFields builds the signed form sent to the gateway.
func SignedFields(creds Credentials, req OrderRequest) map[string]string {
	fields := map[string]string{
		FieldPID:        creds.MerchantID,
		FieldType:       req.Method,
		FieldOutTradeNo: req.Reference,
		FieldNotifyURL:  req.NotifyURL,
		FieldReturnURL:  req.ReturnURL,
		FieldName:       req.Subject,
		FieldMoney:      req.Amount.StringFixed(2),
		FieldSignType:   SignTypeMD5,
	}
	fields[FieldSign] = Sign(fields, creds.Secret)
	return fields
}

// CreateOrder registers the payment at the gateway and returns the payer redirect URL.
// Network errors and 5xx answers are retried, everything else is reported as is.
func (c *Client) CreateOrder(ctx context.Context, creds Credentials, req OrderRequest) Result {
	ctx, span := c.tracer.Start(ctx, "gateway.CreateOrder", trace.WithAttributes(
		attribute.String("payment.reference", req.Reference),
		attribute.String("payment.method", req.Method),
	))
	defer span.End()

	if creds.APIURL == "" || creds.MerchantID == "" || creds.Secret == "" {
		gatewayRequests.WithLabelValues("misconfigured").Inc()
		return Result{Error: "gateway is not configured"}
	}

	form := url.Values{}
	for k, v := range SignedFields(creds, req) {
		form.Set(k, v)
	}

	var resp createOrderResponse
	err := utils.Retry(ctx, c.retry, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", errPermanent, err)
		}
		var err error
		resp, err = c.post(ctx, creds.APIURL, req.Reference, form)
		return err
	}, errPermanent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway request failed")
		gatewayRequests.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "gateway request failed",
			slog.String("reference", req.Reference), slog.Any("error", err))
		return Result{Error: "payment gateway is unavailable"}
	}

	if resp.Code.String() != "1" || resp.PayURL == "" {
		msg := resp.Msg
		if msg == "" {
			msg = "payment gateway rejected the request"
		}
		span.SetStatus(codes.Error, msg)
		gatewayRequests.WithLabelValues("rejected").Inc()
		return Result{Error: msg}
	}

	gatewayRequests.WithLabelValues("ok").Inc()
	return Result{Success: true, PaymentURL: resp.PayURL, TradeNo: resp.TradeNo}
}

func (c *Client) post(ctx context.Context, apiURL, reference string, form url.Values) (createOrderResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return createOrderResponse{}, fmt.Errorf("%w: %v", errPermanent, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", reference)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return createOrderResponse{}, fmt.Errorf("failed to call gateway: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return createOrderResponse{}, fmt.Errorf("failed to read gateway response: %w", err)
	}

	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		return createOrderResponse{}, fmt.Errorf("gateway answered %d", res.StatusCode)
	case res.StatusCode >= http.StatusBadRequest:
		return createOrderResponse{}, fmt.Errorf("%w: gateway answered %d", errPermanent, res.StatusCode)
	}

	var out createOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return createOrderResponse{}, fmt.Errorf("%w: malformed gateway response: %v", errPermanent, err)
	}
	return out, nil
}
