package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK      = "ok"
	statusUsage   = "usage"
	statusError   = "error"
	statusUnknown = "unknown"
)

var commandsExecuted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "commands_executed_total",
		Help: "Slash commands executed by command and outcome",
	},
	[]string{"command", "status"},
)
