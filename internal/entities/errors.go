package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidState          = errors.New("invalid state")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrAlreadyPaid           = errors.New("order already paid")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrSignatureInvalid      = errors.New("invalid signature")
	ErrGateway               = errors.New("payment gateway error")
	ErrValidation            = errors.New("validation error")

	ErrShareExpired      = fmt.Errorf("%w: shared order expired", ErrInvalidState)
	ErrMethodUnavailable = fmt.Errorf("%w: payment method is not available", ErrValidation)
)

type InsufficientInventoryError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "payment gateway error: " + e.Message
}

func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}
