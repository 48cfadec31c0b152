package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/reminders"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

const (
	remindersEmptyText = "Você não tem lembretes pendentes.\n\n" +
		"Para criar: /lembrete [descrição] [data] [valor]\n" +
		"Exemplo: /lembrete Conta_de_luz 2024-02-10 150.00"
	reminderUsageText          = "Formato correto: /lembrete [descrição] [data] [valor]\nExemplo: /lembrete Conta_de_luz 2024-02-10 150.00"
	reminderDateText           = "Data inválida. Use o formato YYYY-MM-DD\nExemplo: 2024-02-10"
	recurringReminderUsageText = "Formato correto: /lembrete_rec [descrição] [valor] [dia] [freq]\n" +
		"Frequências: diario, semanal, mensal ou anual\n" +
		"Exemplo: /lembrete_rec Aluguel 1200 5 mensal"
	reminderDayText        = "Dia inválido. Use um número de 1 a 31."
	completeUsageText      = "Por favor, forneça o número do lembrete.\nUse /lembrete para ver a lista de lembretes."
	reminderNumberText     = "Número de lembrete inválido."
	remindersFooterText    = "Para marcar como concluído: /concluir [número]"
	dailyRemindersFootText = "Para marcar como concluído, responda com \"/concluir [número]\""
)

func (d *Dispatcher) listReminders(ctx context.Context, req Request) ([]string, error) {
	list, err := d.deps.Reminders.Pending(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	if len(list) == 0 {
		return []string{remindersEmptyText}, nil
	}

	var b strings.Builder
	b.WriteString("*⏰ Seus Lembretes:*\n\n")
	for i, p := range list {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, p.Description)
		if p.AmountMinor > 0 {
			fmt.Fprintf(&b, "   Valor: %s\n", money.FormatCents(p.AmountMinor))
		}
		fmt.Fprintf(&b, "   Data: %s\n", formatDate(p.DueDate))
		fmt.Fprintf(&b, "   Status: %s\n", p.Label)
		if p.Recurring {
			fmt.Fprintf(&b, "   Repete: %s\n", p.Frequency.Label())
		}
		b.WriteString("\n")
	}
	b.WriteString(remindersFooterText)
	return []string{b.String()}, nil
}

// createReminder handles "/lembrete descrição data valor"; without arguments
// it lists the pending reminders.
func (d *Dispatcher) createReminder(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) == 0 {
		return d.listReminders(ctx, req)
	}
	if len(req.Args) < 3 {
		return nil, usage(reminderUsageText)
	}

	n := len(req.Args)
	due, ok := parseDate(req.Args[n-2], d.loc)
	if !ok {
		return nil, usage(reminderDateText)
	}
	amount, _, ok := d.parseAmount(req.Args[n-1])
	if !ok {
		return nil, usage(invalidAmountText)
	}

	rem, err := d.deps.Reminders.Create(ctx, req.UserID, words(req.Args[:n-2]), due, amount)
	if err != nil {
		if errors.Is(err, reminders.ErrInvalidDescription) {
			return nil, usage(reminderUsageText)
		}
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return []string{fmt.Sprintf("✅ Lembrete criado!\n\nDescrição: %s\nData: %s\nValor: %s",
		rem.Description, formatDate(rem.DueDate), money.FormatCents(rem.AmountMinor))}, nil
}

// createRecurringReminder handles "/lembrete_rec descrição valor dia [freq]".
func (d *Dispatcher) createRecurringReminder(ctx context.Context, req Request) ([]string, error) {
	args := req.Args
	freq := reminders.FrequencyMonthly
	if len(args) >= 4 {
		if f, err := reminders.ParseFrequency(args[len(args)-1]); err == nil {
			freq = f
			args = args[:len(args)-1]
		}
	}
	if len(args) < 3 {
		return nil, usage(recurringReminderUsageText)
	}

	n := len(args)
	day, err := strconv.Atoi(args[n-1])
	if err != nil || day < 1 || day > 31 {
		return nil, usage(reminderDayText)
	}
	amount, _, ok := d.parseAmount(args[n-2])
	if !ok {
		return nil, usage(invalidAmountText)
	}

	rem, err := d.deps.Reminders.CreateRecurring(ctx, req.UserID, words(args[:n-2]), amount, day, freq)
	switch {
	case errors.Is(err, reminders.ErrInvalidDescription):
		return nil, usage(recurringReminderUsageText)
	case errors.Is(err, reminders.ErrInvalidDay):
		return nil, usage(reminderDayText)
	case err != nil:
		return nil, fmt.Errorf("failed to create recurring reminder: %w", err)
	}

	return []string{fmt.Sprintf("✅ Lembrete recorrente criado!\n\nDescrição: %s\nValor: %s\nPróximo vencimento: %s\nFrequência: %s",
		rem.Description, money.FormatCents(rem.AmountMinor), formatDate(rem.DueDate), rem.Frequency.Label())}, nil
}

func (d *Dispatcher) completeReminder(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 1 {
		return nil, usage(completeUsageText)
	}
	position, err := strconv.Atoi(req.Args[0])
	if err != nil {
		return nil, usage(completeUsageText)
	}

	done, err := d.deps.Reminders.Complete(ctx, req.UserID, position)
	if err != nil {
		if errors.Is(err, reminders.ErrReminderNotFound) {
			return nil, usage(reminderNumberText)
		}
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Lembrete concluído!\n\n%s", done.Reminder.Description)
	if done.Reminder.AmountMinor > 0 {
		fmt.Fprintf(&b, "\nValor: %s", money.FormatCents(done.Reminder.AmountMinor))
	}
	if done.Next != nil {
		fmt.Fprintf(&b, "\n\n🔁 Próximo lembrete: %s", formatDate(done.Next.DueDate))
	}
	return []string{b.String()}, nil
}

// DailyReminders renders the morning message for reminders due on day.
func DailyReminders(day string, due []reminders.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 *Lembretes para hoje (%s)*\n\n", day)
	for i, r := range due {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, r.Description)
		if r.AmountMinor > 0 {
			fmt.Fprintf(&b, "   Valor: %s\n", money.FormatCents(r.AmountMinor))
		}
		b.WriteString("\n")
	}
	b.WriteString(dailyRemindersFootText)
	return b.String()
}
