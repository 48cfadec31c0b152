package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

const budgetEmptyText = "Você ainda não definiu nenhum orçamento.\n\nPara definir: /orcamento [categoria] [valor]"

// budget lists budgets, or sets one when a category and value are given.
func (d *Dispatcher) budget(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 2 {
		return d.listBudgets(ctx, req)
	}

	amount, _, ok := d.positiveAmount(req.Args[len(req.Args)-1])
	if !ok {
		return nil, usage(invalidAmountText)
	}
	b, err := d.deps.Budgets.Set(ctx, req.UserID, words(req.Args[:len(req.Args)-1]), amount)
	switch {
	case categoryNotFound(err):
		return nil, usage(categoryNotFoundText)
	case errors.Is(err, budget.ErrInvalidAmount):
		return nil, usage(invalidAmountText)
	case err != nil:
		return nil, fmt.Errorf("failed to set budget: %w", err)
	}

	return []string{fmt.Sprintf("✅ Orçamento definido!\n\nCategoria: %s\nValor: %s",
		b.CategoryName, money.FormatCents(b.AmountMinor))}, nil
}

func (d *Dispatcher) listBudgets(ctx context.Context, req Request) ([]string, error) {
	progress, err := d.deps.Budgets.Progress(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if len(progress) == 0 {
		return []string{budgetEmptyText}, nil
	}

	var b strings.Builder
	b.WriteString("*💰 Seus Orçamentos:*\n\n")
	for _, p := range progress {
		label := "✅ OK"
		switch p.Status {
		case budget.StatusExceeded:
			label = "⚠️ EXCEDIDO"
		case budget.StatusWarning:
			label = "⚡ ATENÇÃO"
		}
		fmt.Fprintf(&b, "%s %s\n", label, p.CategoryName)
		fmt.Fprintf(&b, "Orçado: %s\n", money.FormatCents(p.AmountMinor))
		fmt.Fprintf(&b, "Gasto: %s (%s%%)\n\n", money.FormatCents(p.SpentMinor), pct(p.Percent))
	}
	return []string{strings.TrimRight(b.String(), "\n")}, nil
}

func (d *Dispatcher) removeBudget(ctx context.Context, req Request) ([]string, error) {
	name := words(req.Args)
	if name == "" {
		return nil, usage("Formato correto: /orcamento_del [categoria]")
	}

	cat, err := d.deps.Budgets.Remove(ctx, req.UserID, name)
	switch {
	case categoryNotFound(err):
		return nil, usage(categoryNotFoundText)
	case errors.Is(err, budget.ErrNoBudget):
		return nil, usage("Não há orçamento definido para essa categoria.")
	case err != nil:
		return nil, fmt.Errorf("failed to remove budget: %w", err)
	}
	return []string{"🗑️ Orçamento removido: " + cat.Name}, nil
}
