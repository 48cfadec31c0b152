package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/report"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

const (
	reportUsageText = "Por favor, forneça mês e ano válidos.\n" +
		"Formato: /relatorio [mes] [ano] [opcional: receita/despesa/categoria [nome_categoria]]"
	compareUsageText   = "Formato correto: /comparar [mes1] [ano1] [mes2] [ano2]\nExemplo: /comparar 01 2024 02 2024"
	compareInvalidText = "Por favor, forneça meses e anos válidos."
	averagesUsageText  = "Por favor, forneça um número de meses válido (1-12)."
	chartUsageText     = "Formato correto: /grafico [tipo: pizza/linha/barra] [mes] [ano]"
	chartKindText      = "Tipo de gráfico inválido. Use: pizza, linha ou barra"
	monthYearText      = "Por favor, forneça mês e ano válidos."
	chartNoDataText    = "Não há dados suficientes para gerar um gráfico neste período."

	defaultAverageMonths = 3
	maxAverageMonths     = 12
)

// monthArgs reads "[mes ano]" from the front of args, defaulting to the
// current month when both are absent.
func (d *Dispatcher) monthArgs(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		now := d.today()
		return now.Year(), now.Month(), nil
	}
	if len(args) < 2 {
		return 0, 0, usage(monthYearText)
	}
	year, month, ok := parseMonthYear(args[0], args[1])
	if !ok {
		return 0, 0, usage(monthYearText)
	}
	return year, month, nil
}

func parseMonthYear(m, y string) (int, time.Month, bool) {
	month, ok := report.ParseMonth(m)
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 1900 || year > 9999 {
		return 0, 0, false
	}
	return year, month, true
}

// parseFilter reads "receita", "despesa" or "categoria <nome>".
func parseFilter(args []string) (transaction.Filter, bool) {
	switch categorization.Fold(args[0]) {
	case "receita", "receitas":
		return transaction.Filter{Kind: nlp.KindIncome}, len(args) == 1
	case "despesa", "despesas":
		return transaction.Filter{Kind: nlp.KindExpense}, len(args) == 1
	case "categoria":
		name := words(args[1:])
		return transaction.Filter{Category: name}, name != ""
	}
	return transaction.Filter{}, false
}

func (d *Dispatcher) report(ctx context.Context, req Request) ([]string, error) {
	year, month, err := d.monthArgs(req.Args)
	if err != nil {
		return nil, usage(reportUsageText)
	}

	var filter transaction.Filter
	if len(req.Args) > 2 {
		f, ok := parseFilter(req.Args[2:])
		if !ok {
			return nil, usage(reportUsageText)
		}
		filter = f
	}

	txs, err := d.deps.Ledger.Month(ctx, req.UserID, year, month, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list month: %w", err)
	}
	bal, err := d.deps.Balance.GetBalance(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	replies := []string{report.Report(report.Monthly{
		Year:         year,
		Month:        month,
		Filter:       filter,
		Transactions: txs,
		BalanceMinor: bal.BalanceMinor,
		Location:     d.loc,
	})}
	if filter != (transaction.Filter{}) {
		return replies, nil
	}

	data, err := d.chartData(ctx, req, year, month)
	if err != nil {
		return nil, err
	}
	for _, kind := range []report.ChartKind{report.ChartPie, report.ChartLine} {
		if !data.Empty(kind) {
			replies = append(replies, report.TextChart(kind, data, year, month))
		}
	}

	progress, err := d.deps.Budgets.Progress(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if chart := report.BudgetChart(progress); chart != "" {
		replies = append(replies, chart)
	}
	return replies, nil
}

func (d *Dispatcher) chartData(ctx context.Context, req Request, year int, month time.Month) (report.ChartData, error) {
	totals, err := d.deps.Ledger.CategoryTotals(ctx, req.UserID, nlp.KindExpense, year, month)
	if err != nil {
		return report.ChartData{}, fmt.Errorf("failed to load category totals: %w", err)
	}
	days, err := d.deps.Ledger.DailyTotals(ctx, req.UserID, year, month)
	if err != nil {
		return report.ChartData{}, fmt.Errorf("failed to load daily totals: %w", err)
	}
	return report.ChartData{Totals: totals, Days: days}, nil
}

func (d *Dispatcher) compare(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 4 {
		return nil, usage(compareUsageText)
	}
	y1, m1, ok1 := parseMonthYear(req.Args[0], req.Args[1])
	y2, m2, ok2 := parseMonthYear(req.Args[2], req.Args[3])
	if !ok1 || !ok2 {
		return nil, usage(compareInvalidText)
	}

	a, err := d.monthSummary(ctx, req, y1, m1)
	if err != nil {
		return nil, err
	}
	b, err := d.monthSummary(ctx, req, y2, m2)
	if err != nil {
		return nil, err
	}
	return []string{report.Comparison(a, b)}, nil
}

func (d *Dispatcher) monthSummary(ctx context.Context, req Request, year int, month time.Month) (report.MonthSummary, error) {
	total, err := d.deps.Ledger.MonthTotal(ctx, req.UserID, year, month)
	if err != nil {
		return report.MonthSummary{}, fmt.Errorf("failed to load month total: %w", err)
	}
	cats, err := d.deps.Ledger.CategoryTotals(ctx, req.UserID, nlp.KindExpense, year, month)
	if err != nil {
		return report.MonthSummary{}, fmt.Errorf("failed to load category totals: %w", err)
	}
	return report.MonthSummary{
		Year:         year,
		Month:        month,
		IncomeMinor:  total.IncomeMinor,
		ExpenseMinor: total.ExpenseMinor,
		Categories:   cats,
	}, nil
}

func (d *Dispatcher) averages(ctx context.Context, req Request) ([]string, error) {
	n := defaultAverageMonths
	if len(req.Args) > 0 {
		v, err := strconv.Atoi(req.Args[0])
		if err != nil || v < 1 || v > maxAverageMonths {
			return nil, usage(averagesUsageText)
		}
		n = v
	}

	months, err := d.deps.Ledger.LastMonths(ctx, req.UserID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}
	cats, err := d.deps.Ledger.CategoryTotalsLastMonths(ctx, req.UserID, nlp.KindExpense, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}
	return []string{report.Averages(months, cats)}, nil
}

func (d *Dispatcher) chart(ctx context.Context, req Request) ([]string, error) {
	if len(req.Args) < 3 {
		return nil, usage(chartUsageText)
	}
	kind, ok := report.ParseChartKind(req.Args[0])
	if !ok {
		return nil, usage(chartKindText)
	}
	year, month, ok := parseMonthYear(req.Args[1], req.Args[2])
	if !ok {
		return nil, usage(monthYearText)
	}

	data, err := d.chartData(ctx, req, year, month)
	if err != nil {
		return nil, err
	}
	if data.Empty(kind) {
		return []string{chartNoDataText}, nil
	}
	return []string{report.TextChart(kind, data, year, month)}, nil
}
