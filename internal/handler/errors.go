package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"
)

// writeServiceError maps domain errors to responses. Unknown errors are logged and hidden.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var invErr *entities.InsufficientInventoryError
	if errors.As(err, &invErr) {
		utils.WriteJSON(w, InsufficientInventoryResponse{
			Error:     "insufficient inventory",
			ProductID: invErr.ProductID,
			Available: invErr.Available,
		}, http.StatusConflict)
		return
	}

	// порядок важен: ErrShareExpired оборачивает ErrInvalidState, ErrMethodUnavailable оборачивает ErrValidation
	switch {
	case errors.Is(err, entities.ErrShareExpired):
		utils.WriteError(w, "shared order expired", http.StatusGone)
	case errors.Is(err, entities.ErrNotFound):
		utils.WriteError(w, "not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, entities.ErrAlreadyPaid):
		utils.WriteError(w, "order already paid", http.StatusConflict)
	case errors.Is(err, entities.ErrMethodUnavailable):
		utils.WriteError(w, "payment method is not available", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidState), errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entities.ErrValidation):
		utils.WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrSignatureInvalid):
		utils.WriteError(w, "invalid signature", http.StatusBadRequest)
	case errors.Is(err, entities.ErrGateway):
		utils.WriteError(w, err.Error(), http.StatusBadGateway)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	utils.WriteError(w, message, http.StatusBadRequest)
}
