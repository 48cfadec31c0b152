package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/balance"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	goalsrepo "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
	goals "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/service"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/reminders"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

var (
	fixedNow  = time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)
	errDB     = errors.New("connection refused")
	testUser  = uuid.MustParse("7f1d2a4e-0c55-4a57-9a43-1f3f51c2b7a1")
	testPhone = "5511999990000"
)

type sentMessage struct {
	To   string
	Text string
}

type recordingSender struct {
	sent []sentMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, destination, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{To: destination, Text: text})
	return nil
}

func (s *recordingSender) texts() []string {
	out := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.Text)
	}
	return out
}

type fakeBalance struct {
	result balance.BalanceResult
	err    error
}

func (f *fakeBalance) GetBalance(context.Context, uuid.UUID) (*balance.BalanceResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	r := f.result
	return &r, nil
}

type recordCall struct {
	Kind        nlp.TransactionKind
	Amount      decimal.Decimal
	Description string
}

type fakeLedger struct {
	recorded   []recordCall
	month      []transaction.Transaction
	filter     transaction.Filter
	totals     []transaction.CategoryTotal
	days       []transaction.DailyTotal
	monthTotal transaction.MonthlyTotal
	lastMonths []transaction.MonthlyTotal
	lastN      int
	found      []transaction.Transaction
	csv        string
	csvRows    int
	err        error
}

func (f *fakeLedger) Record(_ context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (*transaction.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recorded = append(f.recorded, recordCall{kind, amount, description})
	return &transaction.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: "Alimentação",
		Kind:         kind,
		AmountMinor:  amount.Shift(2).IntPart(),
		CurrencyCode: "BRL",
		Description:  description,
		OccurredAt:   fixedNow,
	}, nil
}

func (f *fakeLedger) Month(_ context.Context, _ uuid.UUID, _ int, _ time.Month, filter transaction.Filter) ([]transaction.Transaction, error) {
	f.filter = filter
	return f.month, f.err
}

func (f *fakeLedger) CategoryTotals(context.Context, uuid.UUID, nlp.TransactionKind, int, time.Month) ([]transaction.CategoryTotal, error) {
	return f.totals, f.err
}

func (f *fakeLedger) DailyTotals(context.Context, uuid.UUID, int, time.Month) ([]transaction.DailyTotal, error) {
	return f.days, f.err
}

func (f *fakeLedger) MonthTotal(_ context.Context, _ uuid.UUID, year int, month time.Month) (transaction.MonthlyTotal, error) {
	t := f.monthTotal
	t.Month = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return t, f.err
}

func (f *fakeLedger) LastMonths(_ context.Context, _ uuid.UUID, n int) ([]transaction.MonthlyTotal, error) {
	f.lastN = n
	return f.lastMonths, f.err
}

func (f *fakeLedger) CategoryTotalsLastMonths(context.Context, uuid.UUID, nlp.TransactionKind, int) ([]transaction.CategoryTotal, error) {
	return f.totals, f.err
}

func (f *fakeLedger) Search(context.Context, uuid.UUID, string) ([]transaction.Transaction, error) {
	return f.found, f.err
}

func (f *fakeLedger) ExportCSV(context.Context, uuid.UUID, int, time.Month) (string, int, error) {
	return f.csv, f.csvRows, f.err
}

type fakeCategories struct {
	list    []categorization.Category
	added   []categorization.Category
	addErr  error
	removed string
	err     error
}

func (f *fakeCategories) List(context.Context, uuid.UUID) ([]categorization.Category, error) {
	return f.list, f.err
}

func (f *fakeCategories) Add(_ context.Context, userID uuid.UUID, name string, kind categorization.Kind) (*categorization.Category, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	c := categorization.Category{ID: uuid.New(), UserID: userID, Name: name, Kind: kind}
	f.added = append(f.added, c)
	return &c, nil
}

func (f *fakeCategories) Remove(_ context.Context, _ uuid.UUID, name string) (*categorization.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.removed = name
	return &categorization.Category{Name: "Lazer"}, nil
}

type fakeBudgets struct {
	progress []budget.Progress
	setName  string
	setValue decimal.Decimal
	err      error
}

func (f *fakeBudgets) Set(_ context.Context, _ uuid.UUID, name string, amount decimal.Decimal) (*budget.Budget, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.setName, f.setValue = name, amount
	return &budget.Budget{CategoryName: "Alimentação", AmountMinor: amount.Shift(2).IntPart()}, nil
}

func (f *fakeBudgets) Progress(context.Context, uuid.UUID) ([]budget.Progress, error) {
	return f.progress, nil
}

func (f *fakeBudgets) Remove(context.Context, uuid.UUID, string) (*categorization.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &categorization.Category{Name: "Lazer"}, nil
}

type fakeGoals struct {
	list      []*goals.GoalProgress
	created   *goalsrepo.Goal
	progress  *goals.GoalProgress
	milestone *goals.MilestoneReached
	position  int
	err       error
}

func (f *fakeGoals) CreateGoal(_ context.Context, userID uuid.UUID, name string, targetMinor int64, due time.Time) (*goalsrepo.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &goalsrepo.Goal{ID: uuid.New(), UserID: userID, Name: name, TargetAmountMinor: targetMinor, EndAt: due}
	return f.created, nil
}

func (f *fakeGoals) ListGoals(context.Context, uuid.UUID) ([]*goals.GoalProgress, error) {
	return f.list, f.err
}

func (f *fakeGoals) ContributeToGoal(_ context.Context, _ uuid.UUID, position int, _ int64) (*goals.GoalProgress, *goals.MilestoneReached, error) {
	f.position = position
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.progress, f.milestone, nil
}

func (f *fakeGoals) DeleteGoal(_ context.Context, _ uuid.UUID, position int) (*goalsrepo.Goal, error) {
	f.position = position
	if f.err != nil {
		return nil, f.err
	}
	return &goalsrepo.Goal{Name: "Viagem"}, nil
}

type fakeReminders struct {
	pending   []reminders.Pending
	created   *reminders.Reminder
	frequency reminders.Frequency
	day       int
	done      *reminders.Completion
	err       error
}

func (f *fakeReminders) Create(_ context.Context, _ uuid.UUID, description string, due time.Time, amount decimal.Decimal) (*reminders.Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &reminders.Reminder{
		Description: description,
		DueDate:     time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC),
		AmountMinor: amount.Shift(2).IntPart(),
	}
	return f.created, nil
}

func (f *fakeReminders) CreateRecurring(_ context.Context, _ uuid.UUID, description string, amount decimal.Decimal, day int, freq reminders.Frequency) (*reminders.Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.frequency, f.day = freq, day
	f.created = &reminders.Reminder{
		Description: description,
		DueDate:     time.Date(2026, 11, day, 0, 0, 0, 0, time.UTC),
		AmountMinor: amount.Shift(2).IntPart(),
		Recurring:   true,
		Frequency:   freq,
	}
	return f.created, nil
}

func (f *fakeReminders) Pending(context.Context, uuid.UUID) ([]reminders.Pending, error) {
	return f.pending, f.err
}

func (f *fakeReminders) Complete(context.Context, uuid.UUID, int) (*reminders.Completion, error) {
	return f.done, f.err
}

type fakeSessions struct {
	loggedOut string
}

func (f *fakeSessions) Logout(_ context.Context, senderID string) error {
	f.loggedOut = senderID
	return nil
}

type fixture struct {
	balance    *fakeBalance
	ledger     *fakeLedger
	categories *fakeCategories
	budgets    *fakeBudgets
	goals      *fakeGoals
	reminders  *fakeReminders
	sessions   *fakeSessions
	sender     *recordingSender
	dispatcher *Dispatcher
}

func newFixture() *fixture {
	f := &fixture{
		balance:    &fakeBalance{},
		ledger:     &fakeLedger{},
		categories: &fakeCategories{},
		budgets:    &fakeBudgets{},
		goals:      &fakeGoals{},
		reminders:  &fakeReminders{},
		sessions:   &fakeSessions{},
		sender:     &recordingSender{},
	}
	f.dispatcher = NewDispatcher(Deps{
		Balance:    f.balance,
		Ledger:     f.ledger,
		Categories: f.categories,
		Budgets:    f.budgets,
		Goals:      f.goals,
		Reminders:  f.reminders,
		Sessions:   f.sessions,
		Currency:   "BRL",
		Location:   time.UTC,
	}, f.sender, slog.New(slog.NewTextHandler(io.Discard, nil))).WithClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) run(t *testing.T, text string) error {
	t.Helper()
	name, args, ok := Parse(text)
	require.True(t, ok, "not a command: %q", text)
	return f.dispatcher.Dispatch(context.Background(), Request{
		UserID:      testUser,
		Destination: testPhone,
		Name:        name,
		Args:        args,
	})
}

func (f *fixture) onlyReply(t *testing.T) string {
	t.Helper()
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, testPhone, f.sender.sent[0].To)
	return f.sender.sent[0].Text
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		name  string
		args  []string
		ok    bool
	}{
		{"/saldo", "saldo", []string{}, true},
		{"  /relatorio 10 2026  ", "relatorio", []string{"10", "2026"}, true},
		{"/meta 1000   Viagem 2026-12-31", "meta", []string{"1000", "Viagem", "2026-12-31"}, true},
		{"saldo", "", nil, false},
		{"/", "", nil, false},
		{"", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "relatorio", Normalize("/Relatório"))
	assert.Equal(t, "metas", Normalize("objetivos"))
	assert.Equal(t, "orcamento", Normalize("ORÇAMENTO"))
	assert.Equal(t, "lembretes", Normalize("alarmes"))
	assert.Equal(t, "meta", Normalize("meta"))
	assert.Equal(t, "lembrete", Normalize("lembrete"))
}

func TestDispatch_UnknownCommand(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/voar"))
	assert.Equal(t, UnknownCommandText, f.onlyReply(t))
}

func TestDispatch_Help(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/ajuda"))
	reply := f.onlyReply(t)
	assert.Contains(t, reply, "/comparar")
	assert.Contains(t, reply, "/logout")
	assert.NotContains(t, reply, "/config")
}

func TestRun_MapsRunnerNames(t *testing.T) {
	f := newFixture()
	f.balance.result = balance.BalanceResult{BalanceMinor: 123456}

	err := f.dispatcher.Run(context.Background(), Request{UserID: testUser, Destination: testPhone, Name: "balance"})
	require.NoError(t, err)
	assert.Equal(t, "💰 *Seu saldo atual*\n\nR$ 1.234,56", f.onlyReply(t))
}

func TestRun_Chart(t *testing.T) {
	f := newFixture()
	f.ledger.totals = []transaction.CategoryTotal{{Name: "Alimentação", AmountMinor: 5000}}

	err := f.dispatcher.Run(context.Background(), Request{
		UserID: testUser, Destination: testPhone, Name: "chart", Args: []string{"pizza", "10", "2026"},
	})
	require.NoError(t, err)
	reply := f.onlyReply(t)
	assert.Contains(t, reply, "Outubro de 2026")
	assert.Contains(t, reply, "Alimentação")
}

func TestDispatch_StorageErrorIsReturned(t *testing.T) {
	f := newFixture()
	f.balance.err = errDB

	err := f.run(t, "/saldo")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDB)
	assert.Empty(t, f.sender.sent)
}

func TestDispatch_SendErrorIsReturned(t *testing.T) {
	f := newFixture()
	f.sender.err = errors.New("gateway down")

	err := f.run(t, "/ajuda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway down")
}

func TestRecordCommands(t *testing.T) {
	t.Run("expense", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/despesa 45,90 mercado_do_bairro"))

		require.Len(t, f.ledger.recorded, 1)
		call := f.ledger.recorded[0]
		assert.Equal(t, nlp.KindExpense, call.Kind)
		assert.True(t, decimal.RequireFromString("45.90").Equal(call.Amount))
		assert.Equal(t, "mercado do bairro", call.Description)
		assert.Equal(t, "✅ Despesa registrada!\n\nValor: R$ 45,90\nDescrição: mercado do bairro\nCategoria: Alimentação", f.onlyReply(t))
	})

	t.Run("income", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/receita 2500 salário"))
		require.Len(t, f.ledger.recorded, 1)
		assert.Equal(t, nlp.KindIncome, f.ledger.recorded[0].Kind)
		assert.Contains(t, f.onlyReply(t), "✅ Receita registrada!")
	})

	t.Run("missing description", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/despesa 10"))
		assert.Empty(t, f.ledger.recorded)
		assert.Contains(t, f.onlyReply(t), "Formato correto: /despesa [valor] [descrição]")
	})

	t.Run("invalid amount", func(t *testing.T) {
		for _, text := range []string{
			"/despesa -3 pão",
			"/despesa 0,001 bala",
			"/despesa 1e3 carro",
			"/receita 92233720368547758,08 herança",
			"/despesa 99999999999999999999 carro",
		} {
			f := newFixture()
			require.NoError(t, f.run(t, text))
			assert.Empty(t, f.ledger.recorded, text)
			assert.Equal(t, invalidAmountText, f.onlyReply(t), text)
		}
	})
}

func TestReport(t *testing.T) {
	t.Run("unfiltered sends charts", func(t *testing.T) {
		f := newFixture()
		f.ledger.month = []transaction.Transaction{
			{Kind: nlp.KindExpense, AmountMinor: 5000, CurrencyCode: "BRL", CategoryName: "Alimentação", Description: "mercado", OccurredAt: fixedNow},
		}
		f.ledger.totals = []transaction.CategoryTotal{{Name: "Alimentação", AmountMinor: 5000}}
		f.ledger.days = []transaction.DailyTotal{{Day: fixedNow, ExpenseMinor: 5000}}
		f.budgets.progress = []budget.Progress{{
			Budget:     budget.Budget{CategoryName: "Alimentação", AmountMinor: 10000},
			SpentMinor: 5000, Percent: 50, Status: budget.StatusOK,
		}}

		require.NoError(t, f.run(t, "/relatorio 10 2026"))
		texts := f.sender.texts()
		require.Len(t, texts, 4)
		assert.Contains(t, texts[1], "Distribuição de Despesas")
		assert.Contains(t, texts[2], "Evolução Diária")
		assert.Contains(t, texts[3], "Status dos Orçamentos")
		assert.Equal(t, transaction.Filter{}, f.ledger.filter)
	})

	t.Run("current month without arguments and no chart data", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/relatorio"))
		assert.Len(t, f.sender.sent, 1)
	})

	t.Run("category filter", func(t *testing.T) {
		f := newFixture()
		f.ledger.totals = []transaction.CategoryTotal{{Name: "Lazer", AmountMinor: 100}}
		require.NoError(t, f.run(t, "/relatorio outubro 2026 categoria conta_de_luz"))
		assert.Equal(t, transaction.Filter{Category: "conta de luz"}, f.ledger.filter)
		assert.Len(t, f.sender.sent, 1)
	})

	t.Run("kind filter", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/relatorio 10 2026 receitas"))
		assert.Equal(t, transaction.Filter{Kind: nlp.KindIncome}, f.ledger.filter)
	})

	for _, input := range []string{"/relatorio 13 2026", "/relatorio 10", "/relatorio 10 2026 banana", "/relatorio 10 2026 categoria"} {
		t.Run("usage "+input, func(t *testing.T) {
			f := newFixture()
			require.NoError(t, f.run(t, input))
			assert.Equal(t, reportUsageText, f.onlyReply(t))
		})
	}
}

func TestChart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing args", "/grafico pizza", chartUsageText},
		{"bad kind", "/grafico radar 10 2026", chartKindText},
		{"bad month", "/grafico pizza 0 2026", monthYearText},
		{"no data", "/grafico linha 10 2026", chartNoDataText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			require.NoError(t, f.run(t, tt.input))
			assert.Equal(t, tt.want, f.onlyReply(t))
		})
	}
}

func TestCompare(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/comparar 01 2026"))
	assert.Equal(t, compareUsageText, f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/comparar 01 2026 14 2026"))
	assert.Equal(t, compareInvalidText, f.onlyReply(t))

	f = newFixture()
	f.ledger.monthTotal = transaction.MonthlyTotal{IncomeMinor: 100000, ExpenseMinor: 50000}
	require.NoError(t, f.run(t, "/comparar 09 2026 10 2026"))
	assert.Contains(t, f.onlyReply(t), "Comparativo")
}

func TestAverages(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/media"))
	assert.Equal(t, defaultAverageMonths, f.ledger.lastN)
	assert.Contains(t, f.onlyReply(t), "Média Mensal")

	f = newFixture()
	require.NoError(t, f.run(t, "/media 6"))
	assert.Equal(t, 6, f.ledger.lastN)

	for _, input := range []string{"/media 0", "/media 13", "/media três"} {
		f = newFixture()
		require.NoError(t, f.run(t, input))
		assert.Equal(t, averagesUsageText, f.onlyReply(t), input)
	}
}

func TestSearchAndExport(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/buscar"))
	assert.Contains(t, f.onlyReply(t), "/buscar [termo]")

	f = newFixture()
	require.NoError(t, f.run(t, "/buscar uber"))
	assert.Equal(t, "Nenhuma transação encontrada para \"uber\".", f.onlyReply(t))

	f = newFixture()
	f.ledger.found = []transaction.Transaction{
		{Kind: nlp.KindExpense, AmountMinor: 2350, CurrencyCode: "BRL", Description: "uber centro", OccurredAt: fixedNow},
	}
	require.NoError(t, f.run(t, "/buscar uber"))
	assert.Contains(t, f.onlyReply(t), "➖ 15/10/2026 [Sem categoria] uber centro - R$ 23,50")

	f = newFixture()
	require.NoError(t, f.run(t, "/exportar"))
	assert.Equal(t, "Não há transações em Outubro de 2026 para exportar.", f.onlyReply(t))

	f = newFixture()
	f.ledger.csv, f.ledger.csvRows = "data,tipo\n15/10/2026,despesa\n", 1
	require.NoError(t, f.run(t, "/exportar 10 2026"))
	assert.Contains(t, f.onlyReply(t), "📎 *Exportação - Outubro de 2026* (1 transações)")
}

func TestCategories(t *testing.T) {
	f := newFixture()
	f.categories.list = []categorization.Category{
		{Name: "Salário", Kind: categorization.KindIncome},
		{Name: "Moradia", Kind: categorization.KindExpense},
	}
	require.NoError(t, f.run(t, "/categorias"))
	assert.Equal(t, "*📋 Suas Categorias:*\n\n*Receitas:*\n• Salário\n\n*Despesas:*\n• Moradia\n"+
		"\nPara adicionar: /categoria_add [nome] [tipo]\nPara remover: /categoria_del [nome]", f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/categoria_add Pets_da_casa despesa"))
	require.Len(t, f.categories.added, 1)
	assert.Equal(t, "Pets da casa", f.categories.added[0].Name)
	assert.Equal(t, "✅ Categoria criada!\n\nNome: Pets da casa\nTipo: despesa", f.onlyReply(t))

	f = newFixture()
	f.categories.addErr = categorization.ErrCategoryExists
	require.NoError(t, f.run(t, "/categoria_add Lazer despesa"))
	assert.Equal(t, "Essa categoria já existe.", f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/categoria_add Lazer coisa"))
	assert.Equal(t, categoryAddUsageText, f.onlyReply(t))

	f = newFixture()
	f.categories.err = categorization.ErrCategoryNotFound
	require.NoError(t, f.run(t, "/categoria_del xyz"))
	assert.Equal(t, categoryNotFoundText, f.onlyReply(t))
}

func TestBudgets(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/orcamento"))
	assert.Equal(t, budgetEmptyText, f.onlyReply(t))

	f = newFixture()
	f.budgets.progress = []budget.Progress{
		{Budget: budget.Budget{CategoryName: "Lazer", AmountMinor: 20000}, SpentMinor: 25000, Percent: 125, Status: budget.StatusExceeded},
		{Budget: budget.Budget{CategoryName: "Moradia", AmountMinor: 100000}, SpentMinor: 85000, Percent: 85, Status: budget.StatusWarning},
	}
	require.NoError(t, f.run(t, "/orcamentos"))
	assert.Equal(t, "*💰 Seus Orçamentos:*\n\n"+
		"⚠️ EXCEDIDO Lazer\nOrçado: R$ 200,00\nGasto: R$ 250,00 (125,0%)\n\n"+
		"⚡ ATENÇÃO Moradia\nOrçado: R$ 1.000,00\nGasto: R$ 850,00 (85,0%)", f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/orcamento alimentacao 800,50"))
	assert.Equal(t, "alimentacao", f.budgets.setName)
	assert.Equal(t, "✅ Orçamento definido!\n\nCategoria: Alimentação\nValor: R$ 800,50", f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/orcamento lazer abc"))
	assert.Equal(t, invalidAmountText, f.onlyReply(t))

	f = newFixture()
	require.NoError(t, f.run(t, "/orcamento lazer 99999999999999999999"))
	assert.Empty(t, f.budgets.setName)
	assert.Equal(t, invalidAmountText, f.onlyReply(t))

	f = newFixture()
	f.budgets.err = categorization.ErrCategoryNotFound
	require.NoError(t, f.run(t, "/orcamento xyz 100"))
	assert.Equal(t, categoryNotFoundText, f.onlyReply(t))

	f = newFixture()
	f.budgets.err = budget.ErrNoBudget
	require.NoError(t, f.run(t, "/orcamento_del lazer"))
	assert.Equal(t, "Não há orçamento definido para essa categoria.", f.onlyReply(t))
}

func TestGoals(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/metas"))
		assert.Equal(t, goalsEmptyText, f.onlyReply(t))
	})

	t.Run("list", func(t *testing.T) {
		f := newFixture()
		f.goals.list = []*goals.GoalProgress{{
			Goal:            &goalsrepo.Goal{Name: "Viagem", TargetAmountMinor: 500000, CurrentAmountMinor: 125000},
			ProgressPercent: 25,
			DaysRemaining:   77,
		}}
		require.NoError(t, f.run(t, "/objetivos"))
		assert.Equal(t, "*🎯 Suas Metas:*\n\n1. *Viagem*\nMeta: R$ 5.000,00\nAtual: R$ 1.250,00\nProgresso: 25,0%\nFaltam 77 dias\n\n"+
			"Para atualizar: /meta_update [número] [valor]", f.onlyReply(t))
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/meta 1000 Reserva_de_emergência 2026-12-31"))
		require.NotNil(t, f.goals.created)
		assert.Equal(t, "Reserva de emergência", f.goals.created.Name)
		assert.Equal(t, int64(100000), f.goals.created.TargetAmountMinor)
		assert.Equal(t, "✅ Meta criada com sucesso!\n\nDescrição: Reserva de emergência\nValor: R$ 1.000,00\nData: 31/12/2026", f.onlyReply(t))
	})

	t.Run("create validation", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/meta 1000 Viagem"))
		assert.Equal(t, goalUsageText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/meta 1000 Viagem 31-12-2026"))
		assert.Equal(t, goalDateText, f.onlyReply(t))

		f = newFixture()
		f.goals.err = goals.ErrPastDate
		require.NoError(t, f.run(t, "/meta 1000 Viagem 2020-01-01"))
		assert.Equal(t, goalPastDateText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/meta 99999999999999999999 Viagem 2026-12-31"))
		assert.Nil(t, f.goals.created)
		assert.Equal(t, invalidAmountText, f.onlyReply(t))
	})

	t.Run("contribute reaches target", func(t *testing.T) {
		f := newFixture()
		f.goals.progress = &goals.GoalProgress{
			Goal:            &goalsrepo.Goal{Name: "Viagem", TargetAmountMinor: 100000, CurrentAmountMinor: 100000, Status: goalsrepo.GoalStatusCompleted},
			ProgressPercent: 100,
		}
		f.goals.milestone = &goals.MilestoneReached{Percent: 100, Message: "🎉 Parabéns! Meta concluída!"}
		require.NoError(t, f.run(t, "/meta_update 2 300"))
		assert.Equal(t, 2, f.goals.position)
		assert.Equal(t, "✅ Meta atualizada!\n\n*Viagem*\nAtual: R$ 1.000,00 de R$ 1.000,00 (100,0%)\n\n🎉 Parabéns! Meta concluída!", f.onlyReply(t))
	})

	t.Run("contribute bad position", func(t *testing.T) {
		f := newFixture()
		f.goals.err = goals.ErrGoalNotFound
		require.NoError(t, f.run(t, "/meta_update 9 300"))
		assert.Equal(t, goalNumberText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/meta_update x 300"))
		assert.Equal(t, goalNumberText, f.onlyReply(t))
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/meta_del 1"))
		assert.Equal(t, 1, f.goals.position)
		assert.Equal(t, "🗑️ Meta removida: Viagem", f.onlyReply(t))
	})
}

func TestReminders(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete"))
		assert.Equal(t, remindersEmptyText, f.onlyReply(t))
	})

	t.Run("list", func(t *testing.T) {
		f := newFixture()
		f.reminders.pending = []reminders.Pending{{
			Reminder: reminders.Reminder{Description: "Conta de luz", AmountMinor: 15000, DueDate: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
			DaysLeft: -1,
			Label:    reminders.LabelOverdue,
		}}
		require.NoError(t, f.run(t, "/alarmes"))
		assert.Equal(t, "*⏰ Seus Lembretes:*\n\n1. *Conta de luz*\n   Valor: R$ 150,00\n   Data: 14/10/2026\n   Status: atrasado\n\n"+
			remindersFooterText, f.onlyReply(t))
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete Conta_de_luz 2026-11-10 150.00"))
		require.NotNil(t, f.reminders.created)
		assert.Equal(t, "✅ Lembrete criado!\n\nDescrição: Conta de luz\nData: 10/11/2026\nValor: R$ 150,00", f.onlyReply(t))
	})

	t.Run("create validation", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete Luz 2026-11-10"))
		assert.Equal(t, reminderUsageText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/lembrete Luz amanhã 150"))
		assert.Equal(t, reminderDateText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/lembrete Luz 2026-11-10 caro"))
		assert.Equal(t, invalidAmountText, f.onlyReply(t))

		f = newFixture()
		require.NoError(t, f.run(t, "/lembrete Luz 2026-11-10 92233720368547758,08"))
		assert.Nil(t, f.reminders.created)
		assert.Equal(t, invalidAmountText, f.onlyReply(t))
	})

	t.Run("recurring defaults to monthly", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete_rec Aluguel 1200 5"))
		assert.Equal(t, reminders.FrequencyMonthly, f.reminders.frequency)
		assert.Equal(t, 5, f.reminders.day)
		assert.Equal(t, "✅ Lembrete recorrente criado!\n\nDescrição: Aluguel\nValor: R$ 1.200,00\nPróximo vencimento: 05/11/2026\nFrequência: mensal", f.onlyReply(t))
	})

	t.Run("recurring with frequency", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete_rec Academia 99,90 10 semanal"))
		assert.Equal(t, reminders.FrequencyWeekly, f.reminders.frequency)
		assert.Equal(t, "Academia", f.reminders.created.Description)
	})

	t.Run("recurring bad day", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/lembrete_rec Aluguel 1200 40"))
		assert.Equal(t, reminderDayText, f.onlyReply(t))
	})

	t.Run("complete", func(t *testing.T) {
		f := newFixture()
		f.reminders.done = &reminders.Completion{
			Reminder: reminders.Reminder{Description: "Aluguel", AmountMinor: 120000},
			Next:     &reminders.Reminder{DueDate: time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)},
		}
		require.NoError(t, f.run(t, "/concluir 1"))
		assert.Equal(t, "✅ Lembrete concluído!\n\nAluguel\nValor: R$ 1.200,00\n\n🔁 Próximo lembrete: 05/11/2026", f.onlyReply(t))
	})

	t.Run("complete validation", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.run(t, "/concluir"))
		assert.Equal(t, completeUsageText, f.onlyReply(t))

		f = newFixture()
		f.reminders.err = reminders.ErrReminderNotFound
		require.NoError(t, f.run(t, "/concluir 7"))
		assert.Equal(t, reminderNumberText, f.onlyReply(t))
	})
}

func TestDailyReminders(t *testing.T) {
	got := DailyReminders("15/10/2026", []reminders.Reminder{
		{Description: "Conta de luz", AmountMinor: 15000},
		{Description: "Ligar para o banco"},
	})
	assert.Equal(t, "📅 *Lembretes para hoje (15/10/2026)*\n\n"+
		"1. *Conta de luz*\n   Valor: R$ 150,00\n\n"+
		"2. *Ligar para o banco*\n\n"+
		"Para marcar como concluído, responda com \"/concluir [número]\"", got)
}

func TestLogout(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.run(t, "/logout"))
	assert.Equal(t, testPhone, f.sessions.loggedOut)
	assert.Equal(t, LogoutText, f.onlyReply(t))
}
