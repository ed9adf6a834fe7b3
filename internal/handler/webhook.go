package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

const maxWebhookBytes = 64 << 10

type WebhookProcessor interface {
	Process(ctx context.Context, n entities.WebhookNotification) (entities.WebhookResult, error)
}

type WebhookHandler struct {
	logger *slog.Logger
	svc    WebhookProcessor
}

func NewWebhookHandler(logger *slog.Logger, svc WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{
		logger: logger.With(slog.String("handler", "webhook")),
		svc:    svc,
	}
}

func (h *WebhookHandler) Init(r chi.Router) {
	r.HandleFunc("/webhooks/{gateway}", h.Receive)
}

// Receive принимает уведомление платежного шлюза.
// @Summary      Уведомление шлюза
// @Description  Подпись проверяется по секрету шлюза. Повторные уведомления подтверждаются без изменений.
// @Tags         webhooks
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        gateway   path      string  true  "Имя шлюза"
// @Success      200  {object}  WebhookResponse
// @Failure      400  {object}  utils.ErrorResponse "Некорректное уведомление или подпись"
// @Failure      404  {object}  utils.ErrorResponse "Шлюз или заказ не найден"
// @Failure      405  {object}  utils.ErrorResponse "Метод не поддерживается"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера, шлюз повторит уведомление"
// @Router       /webhooks/{gateway} [post]
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gw := chi.URLParam(r, "gateway")

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fields, err := decodeNotification(w, r)
	if err != nil {
		webhookOutcomes.WithLabelValues(gw, "malformed").Inc()
		writeBadRequest(w, "malformed notification")
		return
	}

	res, err := h.svc.Process(ctx, entities.WebhookNotification{
		Gateway: gw,
		Fields:  fields,
		Remote:  r.RemoteAddr,
	})
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrNotFound):
		// имя шлюза приходит из url, в метрики его не пишем
		webhookOutcomes.WithLabelValues("unknown", "not_found").Inc()
		writeServiceError(h.logger, w, r, err)
		return
	case errors.Is(err, entities.ErrSignatureInvalid):
		webhookOutcomes.WithLabelValues(gw, "bad_signature").Inc()
		writeBadRequest(w, "invalid signature")
		return
	case errors.Is(err, entities.ErrValidation):
		webhookOutcomes.WithLabelValues(gw, "rejected").Inc()
		writeBadRequest(w, err.Error())
		return
	case errors.Is(err, entities.ErrInsufficientInventory):
		// 5xx, чтобы шлюз повторял уведомление, пока остаток не вернут
		webhookOutcomes.WithLabelValues(gw, "out_of_stock").Inc()
		utils.WriteError(w, "payment can't be applied right now", http.StatusInternalServerError)
		return
	default:
		webhookOutcomes.WithLabelValues(gw, "error").Inc()
		writeServiceError(h.logger, w, r, err)
		return
	}

	webhookOutcomes.WithLabelValues(gw, string(res.Outcome)).Inc()
	utils.WriteJSON(w, WebhookResponse{Success: true, Message: res.Message}, http.StatusOK)
}

// decodeNotification accepts both JSON objects and form posts, which is what gateways send.
func decodeNotification(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return gateway.FieldsFromForm(r.PostForm), nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return gateway.FieldsFromJSON(body)
}
