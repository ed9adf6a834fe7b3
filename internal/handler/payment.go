package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type PaymentService interface {
	PaymentMethods(ctx context.Context) ([]entities.PaymentMethod, error)
	SubmitPayment(ctx context.Context, token, method, payerID string) (entities.PaymentOutcome, error)
}

type PaymentHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      PaymentService
	guards   Guards
}

func NewPaymentHandler(logger *slog.Logger, svc PaymentService, guards Guards) *PaymentHandler {
	return &PaymentHandler{
		logger:   logger.With(slog.String("handler", "payment")),
		validate: validator.New(),
		svc:      svc,
		guards:   guards.withDefaults(),
	}
}

func (h *PaymentHandler) Init(r chi.Router) {
	r.Get("/payment-methods", h.PaymentMethods)
	r.With(h.guards.Limited, h.guards.Visitor).Post("/shared-order/{token}/pay", h.Pay)
}

// PaymentMethods возвращает доступные способы оплаты.
// @Summary      Способы оплаты
// @Tags         payments
// @Success      200  {array}   PaymentMethod
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payment-methods [get]
func (h *PaymentHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.svc.PaymentMethods(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	utils.WriteJSON(w, PaymentMethodsToJSON(methods), http.StatusOK)
}

// Pay оплачивает заказ по ссылке.
// @Summary      Оплатить заказ по ссылке
// @Description  Для шлюзов возвращает адрес страницы оплаты, для внутренних способов оплачивает сразу.
// @Tags         payments
// @Param        token   path      string      true  "Токен ссылки"
// @Param        body    body      PayRequest  true  "Способ оплаты"
// @Success      200  {object}  PaymentOutcome
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Ссылка не найдена"
// @Failure      409  {object}  InsufficientInventoryResponse "Заказ уже оплачен или товара не хватает"
// @Failure      410  {object}  utils.ErrorResponse "Срок действия ссылки истек"
// @Failure      422  {object}  utils.ErrorResponse "Способ оплаты недоступен"
// @Failure      429  {object}  utils.ErrorResponse "Слишком много запросов"
// @Failure      502  {object}  utils.ErrorResponse "Ошибка платежного шлюза"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /shared-order/{token}/pay [post]
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	if err := h.validate.Var(token, "required,alphanum,max=64"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	var req PayRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	// плательщик может быть анонимным
	var payerID string
	if user, ok := middleware.UserFromContext(ctx); ok {
		payerID = user.ID
	}

	outcome, err := h.svc.SubmitPayment(ctx, token, req.Method, payerID)
	if err != nil {
		paymentSubmissions.WithLabelValues(submissionFailure(err)).Inc()
		writeServiceError(h.logger, w, r, err)
		return
	}

	if outcome.Settled {
		paymentSubmissions.WithLabelValues("settled").Inc()
	} else {
		paymentSubmissions.WithLabelValues("redirected").Inc()
	}
	utils.WriteJSON(w, PaymentOutcome{Settled: outcome.Settled, RedirectURL: outcome.RedirectURL}, http.StatusOK)
}

func submissionFailure(err error) string {
	switch {
	case errors.Is(err, entities.ErrGateway):
		return "gateway_error"
	case errors.Is(err, entities.ErrInsufficientInventory):
		return "out_of_stock"
	case errors.Is(err, entities.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, entities.ErrShareExpired):
		return "expired"
	case errors.Is(err, entities.ErrValidation), errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrInvalidState):
		return "rejected"
	}
	return "error"
}
