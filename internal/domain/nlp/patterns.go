package nlp

import "regexp"

// LibraryVersion identifies the rule table below. Bump it whenever a rule is
// added, removed or reordered so classification logs stay comparable.
const LibraryVersion = "2026.10.1"

// Shared fragments. Amounts accept an optional "R$" marker and either decimal
// separator; currency words are the colloquial ones users actually type.
const (
	amountExpr   = `(?:r\$\s*)?(\d+[.,]?\d*)`
	currencyWord = `(?:reais|real|pilas?|contos?|dinheiros?)`
	showVerb     = `(?:^|\s)(?:me\s+)?(?:mostre|mostra|exibe|apresenta|fala sobre)\s+`
)

var (
	amountDesc = []CaptureRole{RoleAmount, RoleDescription}
	descAmount = []CaptureRole{RoleDescription, RoleAmount}
	chartOnly  = []CaptureRole{RoleChartType}
)

func rule(name string, intent Intent, expr string, roles ...CaptureRole) PatternRule {
	return PatternRule{
		Name:    name,
		Intent:  intent,
		Pattern: regexp.MustCompile(`(?i)` + expr),
		Roles:   roles,
	}
}

func incomeVerb(name, verb, connectors string) PatternRule {
	return rule(name, Income,
		verb+`\s+`+amountExpr+
			`(?:\s*`+currencyWord+`)?`+
			`(?:\s+(?:`+connectors+`))?`+
			`(?:\s+(.+))?$`,
		amountDesc...)
}

var defaultRules = []PatternRule{
	rule("balance.how_much_left", BalanceQuery, `\bquanto\s+(?:eu\s+)?(?:tenho|resta|sobrou|ficou|possuo|disponível)`),
	rule("balance.show", BalanceQuery, `\b(?:ver|mostrar|consultar|qual|quanto|como está|cadê|onde está)\s+(?:(?:meu|o)\s+)?(?:saldo|dinheiro|grana|valor|montante|disponível)`),
	rule("balance.how_is", BalanceQuery, `\b(?:como|qual|quanto)\s+(?:está|é|anda|sobrou)\s+(?:(?:meu|o)\s+)?(?:saldo|dinheiro|grana|valor|montante)`),
	rule("balance.possessive", BalanceQuery, `\b(?:meu|me|qual|quanto é)\s+(?:saldo|balanço|dinheiro|grana)`),
	rule("balance.want_to_see", BalanceQuery, `\b(?:quero|posso|poderia|dá para)\s+(?:ver|saber|consultar|conhecer|descobrir)\s+(?:(?:meu|o)\s+)?(?:saldo|dinheiro|grana)`),
	rule("balance.with_how_much", BalanceQuery, `\bestou\s+(?:com quanto|com qual valor)`),
	rule("balance.how_much_money", BalanceQuery, `\bquanto\s+(?:dinheiro|grana|valor)`),
	rule("balance.keyword", BalanceQuery, `\bsaldo\b`),

	rule("analysis.how_are_expenses", AnalysisQuery, `\bcomo\s+(?:estão|andam|estou\s+(?:com|de|nos|indo com)|foram|andaram)\s+(?:os\s+)?(?:(?:meus|minhas)\s+)?(?:gastos|despesas|contas|finanças)`),
	rule("analysis.show_expenses", AnalysisQuery, showVerb+`(?:os\s+)?(?:meus\s+)?(?:gastos|despesas|contas)`),
	rule("analysis.how_much_spent", AnalysisQuery, `\bquanto\s+(?:eu\s+)?(?:gastei|investi|paguei|torrei|usei|consumi)`),
	rule("analysis.see_expenses", AnalysisQuery, `\b(?:ver|mostrar)\s+(?:meus\s+)?(?:gastos|despesas|saídas)`),
	rule("analysis.where_spending", AnalysisQuery, `\b(?:onde|em que|com o que|no que)\s+(?:estou|ando|venho|tenho)\s+(?:gastando|investindo)`),
	rule("analysis.where_money_goes", AnalysisQuery, `\b(?:onde|para onde)\s+(?:vai|está indo|foi)\s+(?:meu dinheiro|minha grana)`),

	rule("goals.list", GoalsQuery, `\b(?:minhas|ver|mostrar|listar|quais|quero ver|como estão)\s+(?:as\s+)?metas`),
	rule("goals.show", GoalsQuery, showVerb+`(?:as\s+)?(?:minhas\s+)?metas`),
	rule("goals.which", GoalsQuery, `\b(?:quais|como estão|quero ver)\s+(?:minhas|as)\s+(?:metas|objetivos)`),
	rule("goals.of", GoalsQuery, `\b(?:metas|objetivos)\s+(?:do|para|deste|desse|meu|minhas)`),

	rule("budget.list", BudgetQuery, `\b(?:meu|ver|mostrar|listar|quero ver|como está)\s+(?:o\s+)?or[çc]amento`),
	rule("budget.how_is", BudgetQuery, `\b(?:como\s+)?(?:está|anda|vai|ficou)\s+(?:(?:meu|o)\s+)?(?:or[çc]amento|budget)`),
	rule("budget.show", BudgetQuery, showVerb+`(?:(?:meu|o)\s+)?(?:or[çc]amento|budget)`),
	rule("budget.of", BudgetQuery, `\b(?:or[çc]amento|budget)\s+(?:do|para|deste|desse|meu|minhas)`),

	rule("reminders.list", RemindersQuery, `\b(?:meus|ver|mostrar|listar|quero ver|como estão)\s+(?:os\s+)?lembretes`),
	rule("reminders.show", RemindersQuery, showVerb+`(?:os\s+)?(?:meus\s+)?lembretes`),
	rule("reminders.any", RemindersQuery, `\b(?:tenho|há|existem)\s+(?:algum\s+)?lembrete`),
	rule("reminders.of", RemindersQuery, `\b(?:lembretes|avisos|notificações)\s+(?:do|para|deste|desse|meu|minhas)`),

	rule("chart.make", ChartRequest, `\b(?:ver|mostrar|gerar|fazer)\s+(?:um\s+)?gr[áa]fico\s+(?:de\s+)?(pizza|linha|barra)`, chartOnly...),
	rule("chart.named", ChartRequest, `\bgr[áa]fico\s+(?:de\s+)?(pizza|linha|barra)`, chartOnly...),
	rule("chart.of_kind", ChartRequest, `\b(pizza|linha|barra)s?\s+(?:de\s+)?(?:gastos|despesas|receitas)`, chartOnly...),

	rule("expense.amount_first", Expense, `^(\d+[.,]?\d*)\s*`+currencyWord+`\s+(?:de|em|no|na|com)\s+(.+)$`, amountDesc...),
	rule("expense.symbol_first", Expense, `^r\$\s*(\d+[.,]?\d*)\s+(?:de|em|no|na|com)\s+(.+)$`, amountDesc...),
	rule("expense.bought", Expense, `^comprei\s+(.+?)(?:\s+por|\s+no valor de|\s*:)\s*`+amountExpr, descAmount...),
	rule("expense.spent", Expense, `^gastei\s+`+amountExpr+`\s+(?:`+currencyWord+`\s+)?(?:com|em|no|na|de)\s+(.+)$`, amountDesc...),
	rule("expense.paid", Expense, `^paguei\s+`+amountExpr+`\s+(?:`+currencyWord+`\s+)?(?:de|em|por|para|no|na|pelo|pela|com)\s+(.+)$`, amountDesc...),
	rule("expense.cost", Expense, `^(.+?)\s+(?:custou|ficou|saiu por|deu)\s+`+amountExpr+`(?:\s*`+currencyWord+`)?$`, descAmount...),

	incomeVerb("income.received", `\brecebi`, `de|do|da|em|como|por|pela|pelo`),
	incomeVerb("income.earned", `\bganhei`, `de|do|da|em|como|por|pela|pelo`),
	incomeVerb("income.came_in", `\bentrou`, `de|do|da|em|como|por|pela|pelo`),
	incomeVerb("income.dropped", `\bcaiu`, `de|do|da|em|como|na|no`),
	rule("income.payment_of", Income, `\b(?:pagamento|salário|salario|dinheiro)\s+(?:de|no valor de)\s+`+amountExpr+`(?:\s*`+currencyWord+`)?(?:\s+(?:de|por|referente a))?(?:\s+(.+))?$`, amountDesc...),

	rule("report.make", ReportQuery, `\b(?:ver|mostrar|mostre|mostra|gerar|fazer|exibir|apresentar|criar|preciso de|quero|me dá|me de)\s+(?:um\s+)?(?:relatório|relatorio|report|resumo|balanço|extrato)`),
	rule("report.how_were", ReportQuery, `\bcomo\s+(?:estão|foram|andam|andaram|vão|ficaram)\s+(?:(?:minhas|meus|nossas)\s+)?(?:finanças|gastos|despesas|contas|receitas|dinheiro|entradas e saídas)`),
	rule("report.monthly", ReportQuery, `\b(?:resumo|resumir|balanço|relatório|relatorio)\s+(?:(?:do|no|desse|deste|atual)\s+)?(?:mês|mes|mensal|meu dinheiro|das contas|financeiro)`),
	rule("report.how_am_i", ReportQuery, `\bcomo\s+(?:estou|ando|fui|está)\s+(?:de|com as|com os|nas|nos)\s+(?:finanças|gastos|despesas|contas)`),
	rule("report.show_mine", ReportQuery, `\b(?:mostrar|ver)\s+(?:minhas|meus)\s+(?:receitas|despesas|gastos|transações)`),
	rule("report.keyword", ReportQuery, `^(?:relatório|relatorio|resumo|extrato)$`),

	rule("help.how_it_works", HelpRequest, `\b(?:como|o que)\s+(?:funciona|você faz|posso fazer|dá para fazer)`),
	rule("help.ask", HelpRequest, `(?:^|\s)(?:me\s+)?(?:ajuda|ajude|socorro|socorre|orienta|explica)`),
	rule("help.commands", HelpRequest, `\b(?:quais|que|como usar)\s+(?:são\s+)?(?:os\s+)?(?:comandos|funções|recursos|possibilidades)`),
	rule("help.what_can_you_do", HelpRequest, `\bo que você pode fazer`),
	rule("help.how_to_use", HelpRequest, `\b(?:como|não sei)\s+(?:usar|utilizar|falar)`),
	rule("help.lost", HelpRequest, `\b(?:está|estou)\s+(?:perdido|confuso|com dúvidas)`),
	rule("help.manual", HelpRequest, `\b(?:instruções|manual)`),
	rule("help.keyword", HelpRequest, `^(?:help|menu|comandos|oi|olá|ola)$`),
}

var defaultLibrary = NewLibrary(LibraryVersion, defaultRules)

// DefaultLibrary returns the process-wide rule table.
func DefaultLibrary() *Library {
	return defaultLibrary
}
