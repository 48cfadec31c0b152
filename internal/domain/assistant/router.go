// Package assistant turns inbound chat messages into actions: it classifies
// free text, records transactions and delegates queries to the command
// handlers.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/commands"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/report"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

var tracer = otel.Tracer("github.com/FACorreiaa/finance-chat-assistant/internal/domain/assistant")

// Message is one inbound chat message. Replies go to SenderID.
type Message struct {
	Text              string
	SenderID          string
	SenderDisplayName string
}

// UserRegistry creates or refreshes the sender's user row.
type UserRegistry interface {
	RegisterOrTouch(ctx context.Context, senderID, displayName string) (uuid.UUID, error)
}

// TransactionRecorder stores an extracted transaction.
type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (uuid.UUID, error)
}

// CommandRunner executes a named command and sends its own replies.
type CommandRunner interface {
	Run(ctx context.Context, req commands.Request) error
}

// Sender delivers a reply.
type Sender interface {
	Send(ctx context.Context, destination, text string) error
}

// DefaultChartType is used when a chart request names no type.
const DefaultChartType = string(report.ChartPie)

// Router classifies free text and dispatches it.
type Router struct {
	library  *nlp.Library
	users    UserRegistry
	recorder TransactionRecorder
	runner   CommandRunner
	sender   Sender
	currency string
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewRouter creates a router over the default pattern library.
func NewRouter(users UserRegistry, recorder TransactionRecorder, runner CommandRunner, sender Sender, currency string, loc *time.Location, logger *slog.Logger) *Router {
	if loc == nil {
		loc = time.UTC
	}
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return &Router{
		library:  nlp.DefaultLibrary(),
		users:    users,
		recorder: recorder,
		runner:   runner,
		sender:   sender,
		currency: currency,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source used for "current month".
func (r *Router) WithClock(now func() time.Time) *Router {
	r.now = now
	return r
}

// WithLibrary replaces the pattern library.
func (r *Router) WithLibrary(lib *nlp.Library) *Router {
	r.library = lib
	return r
}

// Route handles one free-text message. The sender is registered first, on
// every path. Extraction failures are answered with guidance and are not
// errors; collaborator failures are answered with a generic reply and
// returned.
func (r *Router) Route(ctx context.Context, msg Message) error {
	ctx, span := tracer.Start(ctx, "assistant.Route")
	defer span.End()

	userID, err := r.users.RegisterOrTouch(ctx, msg.SenderID, msg.SenderDisplayName)
	if err != nil {
		return r.fail(ctx, span, msg, opRegisterUser, err)
	}

	res := r.library.Classify(nlp.Normalize(msg.Text))
	messagesTotal.WithLabelValues(res.Intent.String()).Inc()
	span.SetAttributes(
		attribute.String("intent", res.Intent.String()),
		attribute.String("rule", res.RuleName()),
	)
	r.logger.DebugContext(ctx, "message classified",
		slog.String("user_id", userID.String()),
		slog.String("intent", res.Intent.String()),
		slog.String("rule", res.RuleName()),
	)

	switch res.Intent {
	case nlp.Expense, nlp.Income:
		return r.record(ctx, span, userID, msg, res)
	case nlp.BalanceQuery:
		return r.run(ctx, span, userID, msg, "balance")
	case nlp.ReportQuery:
		return r.run(ctx, span, userID, msg, "report", r.monthArgs()...)
	case nlp.AnalysisQuery:
		return r.run(ctx, span, userID, msg, "analysis", r.monthArgs()...)
	case nlp.GoalsQuery:
		return r.run(ctx, span, userID, msg, "goals")
	case nlp.BudgetQuery:
		return r.run(ctx, span, userID, msg, "budget")
	case nlp.RemindersQuery:
		return r.run(ctx, span, userID, msg, "reminders")
	case nlp.ChartRequest:
		chartType := res.ChartType
		if chartType == "" {
			chartType = DefaultChartType
		}
		return r.run(ctx, span, userID, msg, "chart", append([]string{chartType}, r.monthArgs()...)...)
	case nlp.HelpRequest:
		return r.reply(ctx, span, msg, HelpReply)
	default:
		return r.reply(ctx, span, msg, FallbackReply)
	}
}

func (r *Router) record(ctx context.Context, span trace.Span, userID uuid.UUID, msg Message, res nlp.ClassificationResult) error {
	tx, err := nlp.ExtractTransaction(res)
	if err != nil {
		extractionFailures.WithLabelValues(res.Intent.String()).Inc()
		r.logger.InfoContext(ctx, "extraction failed",
			slog.String("user_id", userID.String()),
			slog.String("intent", res.Intent.String()),
			slog.Any("error", err),
		)
		return r.reply(ctx, span, msg, guidanceReply(res.Intent))
	}

	id, err := r.recorder.RecordTransaction(ctx, userID, tx.Kind, tx.Amount, tx.Description)
	if err != nil {
		return r.fail(ctx, span, msg, opRecordTransaction, err)
	}
	span.SetAttributes(attribute.String("transaction_id", id.String()))

	return r.reply(ctx, span, msg, confirmationReply(tx, r.currency))
}

func (r *Router) run(ctx context.Context, span trace.Span, userID uuid.UUID, msg Message, name string, args ...string) error {
	err := r.runner.Run(ctx, commands.Request{
		UserID:      userID,
		Destination: msg.SenderID,
		Name:        name,
		Args:        args,
	})
	if err != nil {
		return r.fail(ctx, span, msg, opRunCommand, err)
	}
	return nil
}

func (r *Router) reply(ctx context.Context, span trace.Span, msg Message, text string) error {
	if err := r.sender.Send(ctx, msg.SenderID, text); err != nil {
		collaboratorErrors.WithLabelValues(opSendReply).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", opSendReply, err)
	}
	return nil
}

// fail answers a collaborator failure with the generic reply and returns the
// failure.
func (r *Router) fail(ctx context.Context, span trace.Span, msg Message, op string, err error) error {
	return failWithReply(ctx, span, r.sender, r.logger, msg, op, err)
}

func failWithReply(ctx context.Context, span trace.Span, sender Sender, logger *slog.Logger, msg Message, op string, err error) error {
	collaboratorErrors.WithLabelValues(op).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.ErrorContext(ctx, "collaborator failed",
		slog.String("operation", op),
		slog.String("sender_id", msg.SenderID),
		slog.Any("error", err),
	)

	err = fmt.Errorf("%s: %w", op, err)
	if sendErr := sender.Send(ctx, msg.SenderID, GenericFailureReply); sendErr != nil {
		collaboratorErrors.WithLabelValues(opSendReply).Inc()
		return errors.Join(err, fmt.Errorf("%s: %w", opSendReply, sendErr))
	}
	return err
}

// monthArgs returns the current month as "MM YYYY".
func (r *Router) monthArgs() []string {
	now := r.now().In(r.loc)
	return []string{fmt.Sprintf("%02d", int(now.Month())), fmt.Sprintf("%d", now.Year())}
}
