// Package commands executes the slash commands users type in the chat
// ("/saldo", "/relatorio 10 2026", ...). Each handler turns a request into one
// or more reply texts; the dispatcher sends them.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

var tracer = otel.Tracer("github.com/FACorreiaa/finance-chat-assistant/internal/domain/commands")

// Request is one command from a user. Destination receives the replies.
type Request struct {
	UserID      uuid.UUID
	Destination string
	Name        string
	Args        []string
}

// UsageError is a validation failure whose message is the reply to send.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usage(msg string) error {
	return &UsageError{Message: msg}
}

// Sender delivers a reply to a chat destination.
type Sender interface {
	Send(ctx context.Context, destination, text string) error
}

// UnknownCommandText answers names no handler serves.
const UnknownCommandText = "❌ Comando não encontrado!\n\n" +
	"*Comandos disponíveis:*\n" +
	"• /ajuda - Ver todos os comandos\n" +
	"• /saldo - Ver saldo atual\n" +
	"• /relatorio - Ver relatório mensal\n" +
	"• /metas - Ver suas metas\n" +
	"• /orcamento - Ver seus orçamentos\n" +
	"• /lembretes - Ver seus lembretes\n\n" +
	"Digite /ajuda para ver todos os comandos e suas opções."

var aliases = map[string]string{
	"relatorios": "relatorio",
	"relatório":  "relatorio",
	"relatórios": "relatorio",
	"report":     "relatorio",
	"objetivo":   "metas",
	"objetivos":  "metas",
	"goals":      "metas",
	"orcamentos": "orcamento",
	"orçamento":  "orcamento",
	"orçamentos": "orcamento",
	"budget":     "orcamento",
	"alarme":     "lembretes",
	"alarmes":    "lembretes",
	"reminders":  "lembretes",
}

// runnerNames maps the names the natural-language router uses onto commands.
var runnerNames = map[string]string{
	"balance":   "saldo",
	"report":    "relatorio",
	"analysis":  "relatorio",
	"goals":     "metas",
	"budget":    "orcamento",
	"reminders": "lembretes",
	"chart":     "grafico",
	"help":      "ajuda",
}

type handlerFunc func(ctx context.Context, req Request) ([]string, error)

// Dispatcher routes commands to handlers and sends their replies.
type Dispatcher struct {
	deps     Deps
	sender   Sender
	handlers map[string]handlerFunc
	currency string
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewDispatcher wires every command.
func NewDispatcher(deps Deps, sender Sender, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		deps:     deps,
		sender:   sender,
		currency: deps.Currency,
		loc:      deps.Location,
		now:      time.Now,
		logger:   logger,
	}
	if d.currency == "" {
		d.currency = money.DefaultCurrency
	}
	if d.loc == nil {
		d.loc = time.UTC
	}

	d.handlers = map[string]handlerFunc{
		"ajuda":         d.help,
		"saldo":         d.balance,
		"receita":       d.income,
		"despesa":       d.expense,
		"relatorio":     d.report,
		"comparar":      d.compare,
		"media":         d.averages,
		"grafico":       d.chart,
		"categorias":    d.listCategories,
		"categoria_add": d.addCategory,
		"categoria_del": d.removeCategory,
		"orcamento":     d.budget,
		"orcamento_del": d.removeBudget,
		"metas":         d.listGoals,
		"meta":          d.createGoal,
		"meta_update":   d.contributeGoal,
		"meta_del":      d.deleteGoal,
		"lembretes":     d.listReminders,
		"lembrete":      d.createReminder,
		"lembrete_rec":  d.createRecurringReminder,
		"concluir":      d.completeReminder,
		"buscar":        d.search,
		"exportar":      d.export,
		"logout":        d.logout,
	}
	return d
}

// WithClock replaces the time source.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Parse splits "/relatorio 10 2026" into its name and arguments. ok is false
// when text is not a command.
func Parse(text string) (name string, args []string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}
	fields := strings.Fields(text)
	name = strings.TrimPrefix(fields[0], "/")
	if name == "" {
		return "", nil, false
	}
	return name, fields[1:], true
}

// Normalize lower-cases a command name and resolves aliases.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Run executes a command requested by the natural-language router, which
// speaks in runner names ("balance", "chart", ...).
func (d *Dispatcher) Run(ctx context.Context, req Request) error {
	if name, ok := runnerNames[req.Name]; ok {
		req.Name = name
	}
	return d.Dispatch(ctx, req)
}

// Dispatch executes req and sends its replies. Usage errors are answered and
// not returned; storage and delivery errors are returned wrapped.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	name := Normalize(req.Name)

	ctx, span := tracer.Start(ctx, "commands.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", name),
		attribute.Int("args", len(req.Args)),
	)

	handler, ok := d.handlers[name]
	if !ok {
		commandsExecuted.WithLabelValues("unknown", statusUnknown).Inc()
		return d.send(ctx, req.Destination, []string{UnknownCommandText})
	}

	replies, err := handler(ctx, req)
	var ue *UsageError
	switch {
	case errors.As(err, &ue):
		commandsExecuted.WithLabelValues(name, statusUsage).Inc()
		replies = []string{ue.Message}
	case err != nil:
		commandsExecuted.WithLabelValues(name, statusError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.ErrorContext(ctx, "command failed",
			slog.String("command", name),
			slog.String("user_id", req.UserID.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("command %s: %w", name, err)
	default:
		commandsExecuted.WithLabelValues(name, statusOK).Inc()
	}

	return d.send(ctx, req.Destination, replies)
}

func (d *Dispatcher) send(ctx context.Context, destination string, replies []string) error {
	for _, text := range replies {
		if text == "" {
			continue
		}
		if err := d.sender.Send(ctx, destination, text); err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}
	}
	return nil
}

func (d *Dispatcher) today() time.Time {
	return d.now().In(d.loc)
}

// words joins arguments into a name, turning underscores into spaces.
func words(args []string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.Join(args, " "), "_", " "))
}

// parseDate accepts 2026-12-31 and 31/12/2026.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func categoryNotFound(err error) bool {
	return errors.Is(err, categorization.ErrCategoryNotFound)
}
