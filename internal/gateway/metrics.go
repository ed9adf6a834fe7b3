package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shared_payment",
	Subsystem: "gateway",
	Name:      "create_order_total",
	Help:      "Outbound payment creation requests by outcome.",
}, []string{"outcome"})
