package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK           = "ok"
	statusInvalid      = "invalid"
	statusUnauthorized = "unauthorized"
	statusLimited      = "rate_limited"
	statusFailed       = "failed"
)

var webhookRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "Inbound webhook requests by outcome",
	},
	[]string{"status"},
)
