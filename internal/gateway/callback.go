package gateway

import (
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

const (
	FieldPID         = "pid"
	FieldType        = "type"
	FieldOutTradeNo  = "out_trade_no"
	FieldTradeNo     = "trade_no"
	FieldTradeStatus = "trade_status"
	FieldNotifyURL   = "notify_url"
	FieldReturnURL   = "return_url"
	FieldName        = "name"
	FieldMoney       = "money"
)

// ParseCallback extracts the order reference and status of an already verified notification.
func ParseCallback(fields map[string]string) (entities.Callback, error) {
	cb := entities.Callback{
		Reference: fields[FieldOutTradeNo],
		Status:    fields[FieldTradeStatus],
		TradeNo:   fields[FieldTradeNo],
		Amount:    fields[FieldMoney],
	}
	if cb.Reference == "" {
		return entities.Callback{}, fmt.Errorf("%w: missing %s", entities.ErrValidation, FieldOutTradeNo)
	}
	if cb.Status == "" {
		return entities.Callback{}, fmt.Errorf("%w: missing %s", entities.ErrValidation, FieldTradeStatus)
	}
	return cb, nil
}
