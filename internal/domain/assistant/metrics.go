package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opRegisterUser      = "register_user"
	opRecordTransaction = "record_transaction"
	opRunCommand        = "run_command"
	opSendReply         = "send_reply"
	opAuthGate          = "auth_gate"
)

var (
	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Routed chat messages by classified intent",
		},
		[]string{"intent"},
	)

	extractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_extraction_failures_total",
			Help: "Transactional messages whose amount or description could not be read",
		},
		[]string{"intent"},
	)

	collaboratorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_collaborator_errors_total",
			Help: "Failed collaborator calls by operation",
		},
		[]string{"operation"},
	)
)
