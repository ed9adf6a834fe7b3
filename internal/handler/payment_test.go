package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/shared-payment-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentHandler_PaymentMethods(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	svc.EXPECT().PaymentMethods(mock.Anything).Return([]entities.PaymentMethod{
		{Method: "alipay", DisplayName: "Alipay", GatewayID: "g-1"},
		{Method: "balance", DisplayName: "Wallet", GatewayID: "g-2", TestMode: true},
	}, nil).Once()

	h := handler.NewPaymentHandler(discardLogger(), svc, handler.Guards{})
	r := chi.NewRouter()
	h.Init(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/payment-methods", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"method":"alipay","display_name":"Alipay","test_mode":false},
		{"method":"balance","display_name":"Wallet","test_mode":true}
	]`, rr.Body.String())
}

func TestPaymentHandler_Pay(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		guards       handler.Guards
		mockBehavior func(svc *mocks.MockPaymentService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "redirect to gateway",
			body: `{"method":"alipay"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "alipay", "").
					Return(entities.PaymentOutcome{RedirectURL: "https://pay.example.com/c/1"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"settled":false,"redirect_url":"https://pay.example.com/c/1"}`,
		},
		{
			name:   "settled by signed in payer",
			body:   `{"method":"balance"}`,
			guards: handler.Guards{Visitor: asUser(middleware.User{ID: "payer-9"})},
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "balance", "payer-9").
					Return(entities.PaymentOutcome{Settled: true, RedirectURL: "https://shop.example.com/payment/success"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"settled":true`,
		},
		{
			name:         "missing method",
			body:         `{}`,
			mockBehavior: func(*mocks.MockPaymentService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"method":"required"`,
		},
		{
			name:         "unknown field",
			body:         `{"method":"alipay","amount":"1.00"}`,
			mockBehavior: func(*mocks.MockPaymentService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name: "method unavailable",
			body: `{"method":"bitcoin"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "bitcoin", "").
					Return(entities.PaymentOutcome{}, entities.ErrMethodUnavailable).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "share expired",
			body: `{"method":"alipay"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "alipay", "").
					Return(entities.PaymentOutcome{}, entities.ErrShareExpired).Once()
			},
			wantStatus: http.StatusGone,
		},
		{
			name: "already paid",
			body: `{"method":"alipay"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "alipay", "").
					Return(entities.PaymentOutcome{}, entities.ErrAlreadyPaid).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"order already paid"`,
		},
		{
			name: "out of stock",
			body: `{"method":"balance"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "balance", "").
					Return(entities.PaymentOutcome{}, &entities.InsufficientInventoryError{ProductID: "p-2", Requested: 1}).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"insufficient inventory","product_id":"p-2","available":0}`,
		},
		{
			name: "gateway failure",
			body: `{"method":"alipay"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "alipay", "").
					Return(entities.PaymentOutcome{}, &entities.GatewayError{Message: "merchant is blocked"}).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `merchant is blocked`,
		},
		{
			name: "internal error",
			body: `{"method":"alipay"}`,
			mockBehavior: func(svc *mocks.MockPaymentService) {
				svc.EXPECT().SubmitPayment(mock.Anything, token, "alipay", "").
					Return(entities.PaymentOutcome{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockPaymentService(t)
			tc.mockBehavior(svc)

			h := handler.NewPaymentHandler(discardLogger(), svc, tc.guards)

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodPost, "/shared-order/"+token+"/pay", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}
