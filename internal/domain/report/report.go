package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

// Uncategorized labels transactions without a category.
const Uncategorized = "Sem categoria"

// RecentLimit is how many transactions an unfiltered report shows.
const RecentLimit = 5

// Monthly is the input of a monthly report. Transactions are already
// filtered and ordered newest first.
type Monthly struct {
	Year         int
	Month        time.Month
	Filter       transaction.Filter
	Transactions []transaction.Transaction
	BalanceMinor int64
	Location     *time.Location
}

func (m Monthly) filtered() bool {
	return m.Filter.Kind != "" || m.Filter.Category != ""
}

// Report renders the monthly summary: totals, per-category shares and the
// transaction list.
func Report(m Monthly) string {
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}

	var income, expense int64
	incomeByCat := map[string]int64{}
	expenseByCat := map[string]int64{}
	for _, tx := range m.Transactions {
		name := tx.CategoryName
		if name == "" {
			name = Uncategorized
		}
		if tx.Kind == nlp.KindIncome {
			income += tx.AmountMinor
			incomeByCat[name] += tx.AmountMinor
		} else {
			expense += tx.AmountMinor
			expenseByCat[name] += tx.AmountMinor
		}
	}

	showIncome := !m.filtered() || m.Filter.Kind == nlp.KindIncome || m.Filter.Category != ""
	showExpense := !m.filtered() || m.Filter.Kind == nlp.KindExpense || m.Filter.Category != ""

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Relatório Financeiro - %s de %d*\n", MonthTitle(m.Month), m.Year)
	switch {
	case m.Filter.Category != "":
		fmt.Fprintf(&b, "*Filtro: Categoria \"%s\"*\n\n", m.Filter.Category)
	case m.Filter.Kind == nlp.KindIncome:
		b.WriteString("*Filtro: Apenas receitas*\n\n")
	case m.Filter.Kind == nlp.KindExpense:
		b.WriteString("*Filtro: Apenas despesas*\n\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString("*Resumo Geral:*\n")
	if showIncome {
		fmt.Fprintf(&b, "➕ Total de receitas: %s\n", brl(income))
	}
	if showExpense {
		fmt.Fprintf(&b, "➖ Total de despesas: %s\n", brl(expense))
	}
	if !m.filtered() {
		fmt.Fprintf(&b, "📈 Saldo do período: %s\n", brl(income-expense))
		fmt.Fprintf(&b, "💰 Saldo atual: %s\n", brl(m.BalanceMinor))
	}
	b.WriteString("\n")

	if showIncome && len(incomeByCat) > 0 {
		b.WriteString("*Receitas por categoria:*\n")
		writeShares(&b, incomeByCat, income)
		b.WriteString("\n")
	}
	if showExpense && len(expenseByCat) > 0 {
		b.WriteString("*Despesas por categoria:*\n")
		writeShares(&b, expenseByCat, expense)
		b.WriteString("\n")
	}

	if len(m.Transactions) > 0 {
		list := m.Transactions
		if m.filtered() {
			b.WriteString("*Todas as transações:*\n")
		} else {
			b.WriteString("*Últimas transações:*\n")
			if len(list) > RecentLimit {
				list = list[:RecentLimit]
			}
		}

		for _, tx := range list {
			sign := "➖"
			if tx.Kind == nlp.KindIncome {
				sign = "➕"
			}
			category := ""
			if tx.CategoryName != "" {
				category = " [" + tx.CategoryName + "]"
			}
			fmt.Fprintf(&b, "%s %s%s - %s - %s\n",
				sign, tx.OccurredAt.In(loc).Format("02/01"), category, tx.Description, brl(tx.AmountMinor))
		}

		if !m.filtered() && len(m.Transactions) > RecentLimit {
			b.WriteString("\n... e mais transações. Use filtros para ver todas.")
		}
	}

	b.WriteString("\n\n*Dica:* Use filtros para ver relatórios específicos:")
	b.WriteString("\n• /relatorio [mes] [ano] receita - Apenas receitas")
	b.WriteString("\n• /relatorio [mes] [ano] despesa - Apenas despesas")
	b.WriteString("\n• /relatorio [mes] [ano] categoria [nome] - Por categoria")
	return b.String()
}

func writeShares(b *strings.Builder, byCat map[string]int64, total int64) {
	totals := make([]transaction.CategoryTotal, 0, len(byCat))
	for name, v := range byCat {
		totals = append(totals, transaction.CategoryTotal{Name: name, AmountMinor: v})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].AmountMinor != totals[j].AmountMinor {
			return totals[i].AmountMinor > totals[j].AmountMinor
		}
		return totals[i].Name < totals[j].Name
	})
	for _, t := range totals {
		fmt.Fprintf(b, "• %s: %s (%s%%)\n", t.Name, brl(t.AmountMinor), percent(share(t.AmountMinor, total)))
	}
}

// MonthSummary is one side of a comparison. Categories holds expense totals.
type MonthSummary struct {
	Year         int
	Month        time.Month
	IncomeMinor  int64
	ExpenseMinor int64
	Categories   []transaction.CategoryTotal
}

func (s MonthSummary) label() string {
	return fmt.Sprintf("%s/%d", MonthName(s.Month), s.Year)
}

// ComparisonLimit is how many category changes a comparison lists.
const ComparisonLimit = 5

// Comparison renders the change from month a to month b.
func Comparison(a, b MonthSummary) string {
	var out strings.Builder
	fmt.Fprintf(&out, "📊 *Comparativo: %s/%d x %s/%d*\n\n", MonthTitle(a.Month), a.Year, MonthTitle(b.Month), b.Year)

	section := func(title string, va, vb int64, withPercent bool) {
		diff := vb - va
		fmt.Fprintf(&out, "*%s:*\n", title)
		fmt.Fprintf(&out, "%s: %s\n", a.label(), brl(va))
		fmt.Fprintf(&out, "%s: %s\n", b.label(), brl(vb))
		if withPercent {
			fmt.Fprintf(&out, "Diferença: %s (%s%%)\n\n", signed(diff), signedPercent(change(va, vb)))
		} else {
			fmt.Fprintf(&out, "Diferença: %s\n\n", signed(diff))
		}
	}

	section("Receitas", a.IncomeMinor, b.IncomeMinor, true)
	section("Despesas", a.ExpenseMinor, b.ExpenseMinor, true)
	section("Saldo do Período", a.IncomeMinor-a.ExpenseMinor, b.IncomeMinor-b.ExpenseMinor, false)

	type delta struct {
		name   string
		before int64
		after  int64
	}
	byName := map[string]*delta{}
	var order []string
	add := func(totals []transaction.CategoryTotal, after bool) {
		for _, t := range totals {
			d, ok := byName[t.Name]
			if !ok {
				d = &delta{name: t.Name}
				byName[t.Name] = d
				order = append(order, t.Name)
			}
			if after {
				d.after += t.AmountMinor
			} else {
				d.before += t.AmountMinor
			}
		}
	}
	add(a.Categories, false)
	add(b.Categories, true)

	deltas := make([]*delta, 0, len(order))
	for _, name := range order {
		deltas = append(deltas, byName[name])
	}
	abs := func(v int64) int64 {
		if v < 0 {
			return -v
		}
		return v
	}
	sort.SliceStable(deltas, func(i, j int) bool {
		return abs(deltas[i].after-deltas[i].before) > abs(deltas[j].after-deltas[j].before)
	})
	if len(deltas) > ComparisonLimit {
		deltas = deltas[:ComparisonLimit]
	}

	out.WriteString("*Maiores variações por categoria:*\n")
	for _, d := range deltas {
		fmt.Fprintf(&out, "• %s: %s (%s%%)\n", d.name, signed(d.after-d.before), signedPercent(change(d.before, d.after)))
	}
	return out.String()
}

// change is the percent variation from before to after; 0 when before is 0.
func change(before, after int64) float64 {
	if before <= 0 {
		return 0
	}
	return float64(after-before) / float64(before) * 100
}

// Averages renders per-month averages over the given months. Categories are
// expense totals over the whole range.
func Averages(months []transaction.MonthlyTotal, categories []transaction.CategoryTotal) string {
	n := int64(len(months))
	if n == 0 {
		n = 1
	}

	var income, expense int64
	for _, m := range months {
		income += m.IncomeMinor
		expense += m.ExpenseMinor
	}
	avgIncome := divRound(income, n)
	avgExpense := divRound(expense, n)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Média Mensal (últimos %d meses)*\n\n", n)
	b.WriteString("*Resumo:*\n")
	fmt.Fprintf(&b, "➕ Receitas: %s/mês\n", brl(avgIncome))
	fmt.Fprintf(&b, "➖ Despesas: %s/mês\n", brl(avgExpense))
	fmt.Fprintf(&b, "📈 Saldo médio: %s/mês\n\n", brl(avgIncome-avgExpense))

	b.WriteString("*Despesas por categoria (média mensal):*\n")
	for _, c := range sortedTotals(categories) {
		avg := divRound(c.AmountMinor, n)
		fmt.Fprintf(&b, "• %s: %s (%s%%)\n", c.Name, brl(avg), percent(share(c.AmountMinor, expense)))
	}
	return b.String()
}

func divRound(v, n int64) int64 {
	return int64(math.Round(float64(v) / float64(n)))
}

func sortProgress(p []budget.Progress) {
	sort.SliceStable(p, func(i, j int) bool { return p[i].Percent > p[j].Percent })
}
