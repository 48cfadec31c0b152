package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

// ChartKind selects a text chart.
type ChartKind string

const (
	ChartPie  ChartKind = "pizza"
	ChartLine ChartKind = "linha"
	ChartBar  ChartKind = "barra"
)

var chartWords = map[string]ChartKind{
	"pizza": ChartPie, "torta": ChartPie, "pie": ChartPie,
	"linha": ChartLine, "linhas": ChartLine, "line": ChartLine,
	"barra": ChartBar, "barras": ChartBar, "bar": ChartBar,
}

// ParseChartKind accepts the chart names users type.
func ParseChartKind(s string) (ChartKind, bool) {
	k, ok := chartWords[categorization.Fold(s)]
	return k, ok
}

// ChartData feeds TextChart. Totals drive the pie and bar charts and Days
// drive the line chart.
type ChartData struct {
	Totals []transaction.CategoryTotal
	Days   []transaction.DailyTotal
}

// Empty reports whether the chart would have nothing to draw.
func (d ChartData) Empty(kind ChartKind) bool {
	if kind == ChartLine {
		return len(d.Days) == 0
	}
	return len(d.Totals) == 0
}

const (
	NoChartData   = "*Não há dados suficientes para gerar o gráfico.*"
	noLineData    = "*Não há dados para gerar o gráfico*"
	barWidth      = 20
	pieBarWidth   = 10
	lineHeight    = 12
	summaryBlocks = 10
)

var pieSymbols = []string{"🔵", "🟢", "🟡", "🟣", "🟠", "🟤", "⚫", "⚪"}

// TextChart renders a titled chart for a month.
func TextChart(kind ChartKind, data ChartData, year int, month time.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Análise Financeira - %s de %d*\n\n", MonthTitle(month), year)

	switch {
	case kind == ChartPie && len(data.Totals) > 0:
		b.WriteString("*Distribuição de Despesas:*\n\n")
		b.WriteString(PieChart(data.Totals))
	case kind == ChartBar && len(data.Totals) > 0:
		b.WriteString("*Comparativo de Gastos por Categoria:*\n\n")
		b.WriteString(BarChart(data.Totals))
	case kind == ChartLine && len(data.Days) > 0:
		b.WriteString("*Evolução Diária de Receitas e Despesas:*\n\n")
		b.WriteString(LineChart(data.Days))
	default:
		b.WriteString(NoChartData)
	}
	return b.String()
}

// PieChart lists each slice with its share of the total.
func PieChart(totals []transaction.CategoryTotal) string {
	var sum int64
	for _, t := range totals {
		sum += t.AmountMinor
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 *Total de Gastos: %s*\n\n", brl(sum))

	for i, t := range sortedTotals(totals) {
		p := share(t.AmountMinor, sum)
		filled := int(math.Round(p / 10))
		filled = max(0, min(filled, pieBarWidth))
		bar := strings.Repeat("▰", filled) + strings.Repeat("░", pieBarWidth-filled)

		fmt.Fprintf(&b, "%s *%s:* %s %s%%\n", pieSymbols[i%len(pieSymbols)], t.Name, bar, percent(p))
		fmt.Fprintf(&b, "   %s\n\n", brl(t.AmountMinor))
	}
	return b.String()
}

// BarChart draws horizontal bars scaled to the largest value.
func BarChart(totals []transaction.CategoryTotal) string {
	sorted := sortedTotals(totals)
	if len(sorted) == 0 {
		return ""
	}
	top := sorted[0].AmountMinor

	var b strings.Builder
	for _, t := range sorted {
		length := 0
		if top > 0 {
			length = int(math.Round(float64(t.AmountMinor) / float64(top) * barWidth))
		}
		fmt.Fprintf(&b, "%-15s: %s %s\n", t.Name, strings.Repeat("█", length), brl(t.AmountMinor))
	}
	return b.String()
}

// LineChart plots daily income and expense on a fixed-height grid, then
// summarizes the month.
func LineChart(days []transaction.DailyTotal) string {
	if len(days) == 0 {
		return noLineData
	}

	var peak, totalIncome, totalExpense int64
	for _, d := range days {
		peak = max(peak, d.IncomeMinor, d.ExpenseMinor)
		totalIncome += d.IncomeMinor
		totalExpense += d.ExpenseMinor
	}
	if peak == 0 {
		return noLineData
	}

	// 10% headroom, in major units
	top := float64(peak) / 100 * 1.1
	rows := float64(lineHeight - 1)

	var b strings.Builder
	b.WriteString("*Evolução Financeira do Mês*\n\n")

	for i := lineHeight - 1; i >= 0; i-- {
		value := top * float64(i) / rows
		fmt.Fprintf(&b, "%8s │", fmt.Sprintf("R$ %.0f", value))

		for _, d := range days {
			income := float64(d.IncomeMinor) / 100 / top * rows
			expense := float64(d.ExpenseMinor) / 100 / top * rows
			atIncome := math.Abs(float64(i)-income) < 0.5
			atExpense := math.Abs(float64(i)-expense) < 0.5

			switch {
			case atIncome && atExpense:
				b.WriteString("⚡")
			case atIncome:
				b.WriteString("📈")
			case atExpense:
				b.WriteString("💸")
			case i == 0:
				b.WriteString("─")
			default:
				b.WriteString("┄")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("        ├" + strings.Repeat("─", len(days)) + "┤\n")
	b.WriteString("        ")
	for _, d := range days {
		fmt.Fprintf(&b, "%d", d.Day.Day()%10)
	}

	b.WriteString("\n\n📊 *Legenda:*\n")
	b.WriteString("📈 Receita   💸 Despesa   ⚡ Ambos\n\n")

	ratio := 0.0
	if totalIncome > 0 {
		ratio = math.Min(float64(totalExpense)/float64(totalIncome), 1)
	}
	balance := totalIncome - totalExpense
	mark := "✅"
	if balance < 0 {
		mark = "⚠️"
	}

	fmt.Fprintf(&b, "📥 *Receitas:* %s %s\n", strings.Repeat("🟩", summaryBlocks), brl(totalIncome))
	fmt.Fprintf(&b, "📤 *Despesas:* %s %s\n", strings.Repeat("🟥", int(math.Round(ratio*summaryBlocks))), brl(totalExpense))
	fmt.Fprintf(&b, "%s *Saldo:* %s (%s%%)\n", mark, brl(balance), signedPercent(share(balance, totalIncome)))
	return b.String()
}

// BudgetChart shows every budget as a colored progress bar, most used first.
// It returns "" when there are no budgets.
func BudgetChart(progress []budget.Progress) string {
	if len(progress) == 0 {
		return ""
	}
	sorted := append([]budget.Progress(nil), progress...)
	sortProgress(sorted)

	var b strings.Builder
	b.WriteString("*📊 Status dos Orçamentos*\n\n")

	for _, p := range sorted {
		label, block := "✅ OK", "🟩"
		switch p.Status {
		case budget.StatusExceeded:
			label, block = "🚨 EXCEDIDO!", "🟥"
		case budget.StatusWarning:
			label, block = "⚠️ ATENÇÃO!", "🟨"
		}

		filled := min(int(math.Round(p.Percent/100*pieBarWidth)), pieBarWidth)
		filled = max(filled, 0)

		fmt.Fprintf(&b, "*%s* - %s\n", p.CategoryName, label)
		fmt.Fprintf(&b, "%s%s *%s%%*\n", strings.Repeat(block, filled), strings.Repeat("⬜", pieBarWidth-filled), percent(p.Percent))
		fmt.Fprintf(&b, "📋 Orçado: %s\n", brl(p.AmountMinor))
		fmt.Fprintf(&b, "💸 Gasto: %s\n", brl(p.SpentMinor))
		fmt.Fprintf(&b, "💰 Restante: %s\n\n", brl(p.RemainingMinor()))
	}

	b.WriteString("_Use /orcamento [categoria] [valor] para definir orçamentos_")
	return b.String()
}
