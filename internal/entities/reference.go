package entities

import (
	"fmt"
	"strings"
)

type RefKind int

const (
	RefShared RefKind = iota + 1
	RefDirect
)

const (
	sharedRefPrefix = "SHR-"
	directRefPrefix = "ORD-"
)

// GatewayRef is the merchant order reference sent to the gateway and echoed back in callbacks.
// It is either SharedRef(token) or DirectRef(orderNumber).
type GatewayRef struct {
	Kind  RefKind
	Value string
}

func SharedRef(token string) GatewayRef {
	return GatewayRef{Kind: RefShared, Value: token}
}

func DirectRef(orderNumber string) GatewayRef {
	return GatewayRef{Kind: RefDirect, Value: orderNumber}
}

func (r GatewayRef) String() string {
	switch r.Kind {
	case RefShared:
		return sharedRefPrefix + r.Value
	case RefDirect:
		return directRefPrefix + r.Value
	}
	return ""
}

func ParseGatewayRef(s string) (GatewayRef, error) {
	switch {
	case strings.HasPrefix(s, sharedRefPrefix) && len(s) > len(sharedRefPrefix):
		return SharedRef(strings.TrimPrefix(s, sharedRefPrefix)), nil
	case strings.HasPrefix(s, directRefPrefix) && len(s) > len(directRefPrefix):
		return DirectRef(strings.TrimPrefix(s, directRefPrefix)), nil
	}
	return GatewayRef{}, fmt.Errorf("%w: unknown order reference %q", ErrValidation, s)
}
