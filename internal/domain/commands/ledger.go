package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/report"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

const invalidAmountText = "Por favor, forneça um valor válido."

func (d *Dispatcher) balance(ctx context.Context, req Request) ([]string, error) {
	res, err := d.deps.Balance.GetBalance(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return []string{"💰 *Seu saldo atual*\n\n" + money.FormatCents(res.BalanceMinor)}, nil
}

func (d *Dispatcher) income(ctx context.Context, req Request) ([]string, error) {
	return d.record(ctx, req, nlp.KindIncome)
}

func (d *Dispatcher) expense(ctx context.Context, req Request) ([]string, error) {
	return d.record(ctx, req, nlp.KindExpense)
}

func (d *Dispatcher) record(ctx context.Context, req Request, kind nlp.TransactionKind) ([]string, error) {
	name, title, example := "despesa", "Despesa", "45,90 mercado"
	if kind == nlp.KindIncome {
		name, title, example = "receita", "Receita", "2500 salário"
	}

	if len(req.Args) < 2 {
		return nil, usage(fmt.Sprintf("Formato correto: /%s [valor] [descrição]\nExemplo: /%s %s", name, name, example))
	}
	amount, _, ok := d.positiveAmount(req.Args[0])
	if !ok {
		return nil, usage(invalidAmountText)
	}

	tx, err := d.deps.Ledger.Record(ctx, req.UserID, kind, amount, words(req.Args[1:]))
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidDescription) {
			return nil, usage(fmt.Sprintf("Formato correto: /%s [valor] [descrição]", name))
		}
		return nil, fmt.Errorf("failed to record %s: %w", name, err)
	}

	return []string{fmt.Sprintf("✅ %s registrada!\n\nValor: %s\nDescrição: %s\nCategoria: %s",
		title, tx.Amount().Format(), tx.Description, categoryLabel(tx.CategoryName))}, nil
}

func (d *Dispatcher) search(ctx context.Context, req Request) ([]string, error) {
	term := strings.Join(req.Args, " ")
	if strings.TrimSpace(term) == "" {
		return nil, usage("Formato correto: /buscar [termo]\nExemplo: /buscar mercado")
	}

	found, err := d.deps.Ledger.Search(ctx, req.UserID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}
	if len(found) == 0 {
		return []string{fmt.Sprintf("Nenhuma transação encontrada para \"%s\".", term)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 *Resultados para \"%s\":*\n\n", term)
	for _, tx := range found {
		icon := "➖"
		if tx.Kind == nlp.KindIncome {
			icon = "➕"
		}
		fmt.Fprintf(&b, "%s %s [%s] %s - %s\n",
			icon, formatDate(tx.OccurredAt.In(d.loc)), categoryLabel(tx.CategoryName), tx.Description, tx.Amount().Format())
	}
	return []string{b.String()}, nil
}

func (d *Dispatcher) export(ctx context.Context, req Request) ([]string, error) {
	year, month, err := d.monthArgs(req.Args)
	if err != nil {
		return nil, err
	}

	csv, n, err := d.deps.Ledger.ExportCSV(ctx, req.UserID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}
	if n == 0 {
		return []string{fmt.Sprintf("Não há transações em %s de %d para exportar.", report.MonthTitle(month), year)}, nil
	}
	return []string{fmt.Sprintf("📎 *Exportação - %s de %d* (%d transações)\n\n```\n%s```",
		report.MonthTitle(month), year, n, csv)}, nil
}

// positiveAmount reads an amount that is at least one cent once stored.
func (d *Dispatcher) positiveAmount(token string) (decimal.Decimal, int64, bool) {
	amount, minor, ok := d.parseAmount(token)
	if !ok || minor <= 0 {
		return decimal.Zero, 0, false
	}
	return amount, minor, true
}

// parseAmount reads a non-negative amount that fits in stored minor units.
func (d *Dispatcher) parseAmount(token string) (decimal.Decimal, int64, bool) {
	amount, err := nlp.ParseAmount(token)
	if err != nil {
		return decimal.Zero, 0, false
	}
	minor, err := money.MinorUnits(amount, d.currency)
	if err != nil || minor < 0 {
		return decimal.Zero, 0, false
	}
	return amount, minor, true
}

func categoryLabel(name string) string {
	if name == "" {
		return report.Uncategorized
	}
	return name
}
