package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, trackingNumber string) (entities.Order, error)
}

type AdminHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	guards   Guards
}

func NewAdminHandler(logger *slog.Logger, svc OrderService, guards Guards) *AdminHandler {
	return &AdminHandler{
		logger:   logger.With(slog.String("handler", "admin")),
		validate: validator.New(),
		svc:      svc,
		guards:   guards.withDefaults(),
	}
}

func (h *AdminHandler) Init(r chi.Router) {
	r.Route("/admin/orders/{order_id}", func(r chi.Router) {
		r.Use(h.guards.User, h.guards.Admin)
		r.Get("/", h.GetOrder)
		r.Patch("/status", h.UpdateStatus)
	})
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         admin
// @Security     BearerAuth
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Нет токена"
// @Failure      403  {object}  utils.ErrorResponse "Нужна роль admin"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /admin/orders/{order_id} [get]
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required,uuid"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.GetOrder(ctx, orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateStatus меняет статус заказа.
// @Summary      Изменить статус заказа
// @Description  Разрешены только переходы pending→processing→shipped→delivered и отмена незавершенного заказа.
// @Tags         admin
// @Security     BearerAuth
// @Param        order_id   path      string               true  "Идентификатор заказа"
// @Param        body       body      UpdateStatusRequest  true  "Новый статус"
// @Success      200  {object}  OrderResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /admin/orders/{order_id}/status [patch]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required,uuid"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateStatus(ctx, orderID, entities.OrderStatus(req.Status), req.TrackingNumber)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
