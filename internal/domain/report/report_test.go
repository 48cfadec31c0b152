package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

func tx(kind nlp.TransactionKind, minor int64, desc, category string, d int) transaction.Transaction {
	return transaction.Transaction{
		Kind:         kind,
		AmountMinor:  minor,
		CurrencyCode: "BRL",
		Description:  desc,
		CategoryName: category,
		OccurredAt:   day(d).Add(15 * time.Hour),
	}
}

func sampleMonth() []transaction.Transaction {
	return []transaction.Transaction{
		tx(nlp.KindExpense, 3000, "uber", "Transporte", 20),
		tx(nlp.KindExpense, 500, "pão", "Alimentação", 18),
		tx(nlp.KindExpense, 1500, "cinema", "Lazer", 15),
		tx(nlp.KindExpense, 9000, "mercado", "Alimentação", 10),
		tx(nlp.KindIncome, 250000, "salário", "Salário", 5),
		tx(nlp.KindExpense, 1000, "presente", "", 2),
	}
}

func TestReport_Unfiltered(t *testing.T) {
	out := Report(Monthly{
		Year:         2026,
		Month:        time.October,
		Transactions: sampleMonth(),
		BalanceMinor: 1234567,
	})

	assert.True(t, strings.HasPrefix(out, "📊 *Relatório Financeiro - Outubro de 2026*\n\n*Resumo Geral:*\n"))
	assert.Contains(t, out, "➕ Total de receitas: R$ 2.500,00\n")
	assert.Contains(t, out, "➖ Total de despesas: R$ 150,00\n")
	assert.Contains(t, out, "📈 Saldo do período: R$ 2.350,00\n")
	assert.Contains(t, out, "💰 Saldo atual: R$ 12.345,67\n")
	assert.Contains(t, out, "*Receitas por categoria:*\n• Salário: R$ 2.500,00 (100,0%)\n")
	assert.Contains(t, out, "*Despesas por categoria:*\n• Alimentação: R$ 95,00 (63,3%)\n• Transporte: R$ 30,00 (20,0%)\n• Lazer: R$ 15,00 (10,0%)\n• Sem categoria: R$ 10,00 (6,7%)\n")
	assert.Contains(t, out, "*Últimas transações:*\n➖ 20/10 [Transporte] - uber - R$ 30,00\n")
	assert.Contains(t, out, "➕ 05/10 [Salário] - salário - R$ 2.500,00\n")
	assert.NotContains(t, out, "presente - R$")
	assert.Contains(t, out, "... e mais transações. Use filtros para ver todas.")
	assert.Contains(t, out, "*Dica:*")
}

func TestReport_KindFilter(t *testing.T) {
	var expenses []transaction.Transaction
	for _, item := range sampleMonth() {
		if item.Kind == nlp.KindExpense {
			expenses = append(expenses, item)
		}
	}

	out := Report(Monthly{
		Year:         2026,
		Month:        time.October,
		Filter:       transaction.Filter{Kind: nlp.KindExpense},
		Transactions: expenses,
	})

	assert.Contains(t, out, "*Filtro: Apenas despesas*\n\n")
	assert.NotContains(t, out, "Total de receitas")
	assert.NotContains(t, out, "Saldo atual")
	assert.Contains(t, out, "*Todas as transações:*\n")
	assert.Contains(t, out, "➖ 02/10 - presente - R$ 10,00\n")
	assert.NotContains(t, out, "e mais transações")
}

func TestReport_CategoryFilterAndEmpty(t *testing.T) {
	out := Report(Monthly{
		Year:   2026,
		Month:  time.January,
		Filter: transaction.Filter{Category: "lazer"},
	})
	assert.Contains(t, out, "*Filtro: Categoria \"lazer\"*")
	assert.Contains(t, out, "➕ Total de receitas: R$ 0,00")
	assert.NotContains(t, out, "transações:*")
}

func TestReport_Location(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	late := transaction.Transaction{Kind: nlp.KindExpense, AmountMinor: 100, Description: "x", OccurredAt: time.Date(2026, 10, 2, 1, 0, 0, 0, time.UTC)}

	out := Report(Monthly{Year: 2026, Month: time.October, Transactions: []transaction.Transaction{late}, Location: loc})
	assert.Contains(t, out, "➖ 01/10 - x - R$ 1,00")
}

func TestComparison(t *testing.T) {
	a := MonthSummary{Year: 2026, Month: time.September, IncomeMinor: 200000, ExpenseMinor: 100000,
		Categories: []transaction.CategoryTotal{{Name: "Alimentação", AmountMinor: 60000}, {Name: "Lazer", AmountMinor: 40000}}}
	b := MonthSummary{Year: 2026, Month: time.October, IncomeMinor: 250000, ExpenseMinor: 80000,
		Categories: []transaction.CategoryTotal{{Name: "Alimentação", AmountMinor: 70000}, {Name: "Saúde", AmountMinor: 10000}}}

	out := Comparison(a, b)

	assert.True(t, strings.HasPrefix(out, "📊 *Comparativo: Setembro/2026 x Outubro/2026*\n\n"))
	assert.Contains(t, out, "*Receitas:*\nsetembro/2026: R$ 2.000,00\noutubro/2026: R$ 2.500,00\nDiferença: +R$ 500,00 (+25,0%)\n\n")
	assert.Contains(t, out, "*Despesas:*\nsetembro/2026: R$ 1.000,00\noutubro/2026: R$ 800,00\nDiferença: -R$ 200,00 (-20,0%)\n\n")
	assert.Contains(t, out, "*Saldo do Período:*\nsetembro/2026: R$ 1.000,00\noutubro/2026: R$ 1.700,00\nDiferença: +R$ 700,00\n\n")
	assert.Contains(t, out, "*Maiores variações por categoria:*\n• Lazer: -R$ 400,00 (-100,0%)\n• Alimentação: +R$ 100,00 (+16,7%)\n• Saúde: +R$ 100,00 (+0,0%)\n")
}

func TestAverages(t *testing.T) {
	months := []transaction.MonthlyTotal{
		{Month: day(1).AddDate(0, -2, 0), IncomeMinor: 300000, ExpenseMinor: 100000},
		{Month: day(1).AddDate(0, -1, 0), IncomeMinor: 300000, ExpenseMinor: 200000},
		{Month: day(1), IncomeMinor: 0, ExpenseMinor: 0},
	}
	categories := []transaction.CategoryTotal{
		{Name: "Lazer", AmountMinor: 60000},
		{Name: "Alimentação", AmountMinor: 240000},
	}

	out := Averages(months, categories)

	assert.True(t, strings.HasPrefix(out, "📊 *Média Mensal (últimos 3 meses)*\n\n*Resumo:*\n"))
	assert.Contains(t, out, "➕ Receitas: R$ 2.000,00/mês\n")
	assert.Contains(t, out, "➖ Despesas: R$ 1.000,00/mês\n")
	assert.Contains(t, out, "📈 Saldo médio: R$ 1.000,00/mês\n\n")
	assert.Contains(t, out, "*Despesas por categoria (média mensal):*\n• Alimentação: R$ 800,00 (80,0%)\n• Lazer: R$ 200,00 (20,0%)\n")
}
