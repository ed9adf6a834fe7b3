package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/shared-payment-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func adminGuards() handler.Guards {
	return handler.Guards{
		User:  asUser(middleware.User{ID: "op-1", Role: middleware.RoleAdmin}),
		Admin: middleware.RequireRole(middleware.RoleAdmin),
	}
}

func TestAdminHandler_GetOrder(t *testing.T) {
	order := entities.Order{
		ID:            orderID,
		OrderNumber:   "SO-1001",
		Status:        entities.StatusProcessing,
		PaymentStatus: entities.PaymentCompleted,
		Total:         decimal.RequireFromString("100"),
	}

	testCases := []struct {
		name         string
		guards       handler.Guards
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:   "success",
			guards: adminGuards(),
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrder(mock.Anything, orderID).Return(order, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":"100.00"`,
		},
		{
			name: "not an operator",
			guards: handler.Guards{
				User:  asUser(middleware.User{ID: "user-1"}),
				Admin: middleware.RequireRole(middleware.RoleAdmin),
			},
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusForbidden,
		},
		{
			name:   "not found",
			guards: adminGuards(),
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrder(mock.Anything, orderID).Return(entities.Order{}, entities.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			h := handler.NewAdminHandler(discardLogger(), svc, tc.guards)

			r := chi.NewRouter()
			h.Init(r)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/orders/"+orderID, nil))

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "shipped",
			body: `{"status":"shipped","tracking_number":"TRK-77"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateStatus(mock.Anything, orderID, entities.StatusShipped, "TRK-77").
					Return(entities.Order{ID: orderID, Status: entities.StatusShipped, TrackingNumber: "TRK-77"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"tracking_number":"TRK-77"`,
		},
		{
			name:         "unknown status",
			body:         `{"status":"lost"}`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"status":"oneof"`,
		},
		{
			name: "invalid transition",
			body: `{"status":"pending"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateStatus(mock.Anything, orderID, entities.StatusPending, "").
					Return(entities.Order{}, entities.ErrInvalidTransition).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"invalid status transition"`,
		},
		{
			name:         "broken body",
			body:         `{"status":`,
			mockBehavior: func(*mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			h := handler.NewAdminHandler(discardLogger(), svc, adminGuards())

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+orderID+"/status", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}
