package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	goalsrepo "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
	goals "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/service"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

const (
	goalsEmptyText = "Você não tem metas definidas.\n\n" +
		"Para criar: /meta [valor] [descrição] [data]\n" +
		"Exemplo: /meta 1000 Reserva_de_emergência 2024-12-31"
	goalUsageText       = "Formato correto: /meta [valor] [descrição] [data]\nExemplo: /meta 1000 Reserva_de_emergência 2024-12-31"
	goalDateText        = "Data inválida. Use o formato YYYY-MM-DD\nExemplo: 2024-12-31"
	goalPastDateText    = "A data da meta precisa ser hoje ou no futuro."
	goalNumberText      = "Número de meta inválido.\nUse /metas para ver a lista de metas."
	goalUpdateUsageText = "Formato correto: /meta_update [número] [valor]\nExemplo: /meta_update 1 200"
	goalDelUsageText    = "Formato correto: /meta_del [número]"
)

func (d *Dispatcher) listGoals(ctx context.Context, req Request) ([]string, error) {
	list, err := d.deps.Goals.ListGoals(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if len(list) == 0 {
		return []string{goalsEmptyText}, nil
	}

	var b strings.Builder
	b.WriteString("*🎯 Suas Metas:*\n\n")
	for i, p := range list {
		g := p.Goal
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, g.Name)
		fmt.Fprintf(&b, "Meta: %s\n", money.FormatCents(g.TargetAmountMinor))
		fmt.Fprintf(&b, "Atual: %s\n", money.FormatCents(g.CurrentAmountMinor))
		fmt.Fprintf(&b, "Progresso: %s%%\n", pct(p.ProgressPercent))
		switch {
		case p.DaysRemaining > 1:
			fmt.Fprintf(&b, "Faltam %d dias\n\n", p.DaysRemaining)
		case p.DaysRemaining == 1:
			b.WriteString("Falta 1 dia\n\n")
		case p.DaysRemaining == 0:
			b.WriteString("Vence hoje\n\n")
		default:
			b.WriteString("Prazo encerrado\n\n")
		}
	}
	b.WriteString("Para atualizar: /meta_update [número] [valor]")
	return []string{b.String()}, nil
}

// createGoal handles "/meta valor descrição data"; without arguments it
// lists the goals.
func (d *Dispatcher) createGoal(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) == 0 {
		return d.listGoals(ctx, req)
	}
	if len(req.Args) < 3 {
		return nil, usage(goalUsageText)
	}

	_, target, ok := d.positiveAmount(req.Args[0])
	if !ok {
		return nil, usage(invalidAmountText)
	}
	due, ok := parseDate(req.Args[len(req.Args)-1], d.loc)
	if !ok {
		return nil, usage(goalDateText)
	}
	name := words(req.Args[1 : len(req.Args)-1])

	g, err := d.deps.Goals.CreateGoal(ctx, req.UserID, name, target, due)
	switch {
	case errors.Is(err, goals.ErrPastDate):
		return nil, usage(goalPastDateText)
	case errors.Is(err, goals.ErrInvalidName):
		return nil, usage(goalUsageText)
	case errors.Is(err, goals.ErrInvalidTarget):
		return nil, usage(invalidAmountText)
	case err != nil:
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return []string{fmt.Sprintf("✅ Meta criada com sucesso!\n\nDescrição: %s\nValor: %s\nData: %s",
		g.Name, money.FormatCents(g.TargetAmountMinor), formatDate(g.EndAt.In(d.loc)))}, nil
}

func (d *Dispatcher) contributeGoal(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 2 {
		return nil, usage(goalUpdateUsageText)
	}
	position, err := strconv.Atoi(req.Args[0])
	if err != nil || position < 1 {
		return nil, usage(goalNumberText)
	}
	_, contribution, ok := d.positiveAmount(req.Args[1])
	if !ok {
		return nil, usage(invalidAmountText)
	}

	p, milestone, err := d.deps.Goals.ContributeToGoal(ctx, req.UserID, position, contribution)
	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		return nil, usage(goalNumberText)
	case errors.Is(err, goals.ErrInvalidAmount):
		return nil, usage(invalidAmountText)
	case err != nil:
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	g := p.Goal
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Meta atualizada!\n\n*%s*\nAtual: %s de %s (%s%%)",
		g.Name, money.FormatCents(g.CurrentAmountMinor), money.FormatCents(g.TargetAmountMinor), pct(p.ProgressPercent))
	if milestone != nil {
		b.WriteString("\n\n" + milestone.Message)
	}
	if g.Status == goalsrepo.GoalStatusCompleted && (milestone == nil || milestone.Percent < 100) {
		b.WriteString("\n\n🎉 Meta concluída!")
	}
	return []string{b.String()}, nil
}

func (d *Dispatcher) deleteGoal(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 1 {
		return nil, usage(goalDelUsageText)
	}
	position, err := strconv.Atoi(req.Args[0])
	if err != nil || position < 1 {
		return nil, usage(goalNumberText)
	}

	g, err := d.deps.Goals.DeleteGoal(ctx, req.UserID, position)
	if err != nil {
		if errors.Is(err, goals.ErrGoalNotFound) {
			return nil, usage(goalNumberText)
		}
		return nil, fmt.Errorf("failed to delete goal: %w", err)
	}
	return []string{"🗑️ Meta removida: " + g.Name}, nil
}

// pct renders one decimal with a comma.
func pct(p float64) string {
	return strings.Replace(strconv.FormatFloat(p, 'f', 1, 64), ".", ",", 1)
}
