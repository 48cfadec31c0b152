package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSent   = "sent"
	statusFailed = "failed"
)

var messagesSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_messages_total",
		Help: "Outbound chat messages by delivery status",
	},
	[]string{"status"},
)
