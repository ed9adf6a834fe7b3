package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ShareService interface {
	CreateShare(ctx context.Context, userID, orderID string) (entities.ShareLink, error)
	GetSharedOrder(ctx context.Context, token string) (entities.SharedOrderView, error)
}

type ShareHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      ShareService
	guards   Guards
}

func NewShareHandler(logger *slog.Logger, svc ShareService, guards Guards) *ShareHandler {
	return &ShareHandler{
		logger:   logger.With(slog.String("handler", "share")),
		validate: validator.New(),
		svc:      svc,
		guards:   guards.withDefaults(),
	}
}

func (h *ShareHandler) Init(r chi.Router) {
	r.With(h.guards.User).Post("/orders/{order_id}/share", h.CreateShare)
	r.With(h.guards.Limited).Get("/shared-order/{token}", h.GetSharedOrder)
}

// CreateShare создает ссылку для оплаты заказа.
// @Summary      Поделиться заказом
// @Description  Создает ссылку, по которой любой человек может оплатить заказ. Повторный вызов возвращает ту же ссылку.
// @Tags         shares
// @Security     BearerAuth
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      201  {object}  ShareResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Нет токена"
// @Failure      403  {object}  utils.ErrorResponse "Заказ принадлежит другому пользователю"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ уже оплачен или отменен"
// @Failure      410  {object}  utils.ErrorResponse "Срок действия ссылки истек"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id}/share [post]
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required,uuid"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	link, err := h.svc.CreateShare(ctx, user.ID, orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sharesCreated.Inc()
	utils.WriteJSON(w, ShareLinkToJSON(link), http.StatusCreated)
}

// GetSharedOrder возвращает заказ по токену ссылки.
// @Summary      Заказ по ссылке
// @Description  Состав и суммы заказа. Просроченные и оплаченные ссылки остаются доступными для просмотра.
// @Tags         shares
// @Param        token   path      string  true  "Токен ссылки"
// @Success      200  {object}  SharedOrderResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Ссылка не найдена"
// @Failure      429  {object}  utils.ErrorResponse "Слишком много запросов"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /shared-order/{token} [get]
func (h *ShareHandler) GetSharedOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	if err := h.validate.Var(token, "required,alphanum,max=64"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	view, err := h.svc.GetSharedOrder(ctx, token)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, SharedOrderToJSON(view), http.StatusOK)
}
