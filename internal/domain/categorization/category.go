package categorization

import (
	"errors"

	"github.com/google/uuid"
)

// Kind is the transaction direction a category applies to.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Label is the Portuguese word shown to users.
func (k Kind) Label() string {
	if k == KindIncome {
		return "receita"
	}
	return "despesa"
}

// ParseKind accepts the Portuguese labels users type.
func ParseKind(s string) (Kind, bool) {
	switch Fold(s) {
	case "despesa", "despesas", "gasto", "gastos", "expense":
		return KindExpense, true
	case "receita", "receitas", "entrada", "entradas", "income":
		return KindIncome, true
	}
	return "", false
}

// FallbackCategory receives everything no keyword claims.
const FallbackCategory = "Outros"

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Category is a per-user bucket for transactions.
type Category struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Kind   Kind
}

// DefaultCategories are created for every new user.
var DefaultCategories = []Category{
	{Name: "Alimentação", Kind: KindExpense},
	{Name: "Moradia", Kind: KindExpense},
	{Name: "Transporte", Kind: KindExpense},
	{Name: "Saúde", Kind: KindExpense},
	{Name: "Educação", Kind: KindExpense},
	{Name: "Lazer", Kind: KindExpense},
	{Name: "Vestuário", Kind: KindExpense},
	{Name: "Serviços", Kind: KindExpense},
	{Name: "Impostos", Kind: KindExpense},
	{Name: FallbackCategory, Kind: KindExpense},
	{Name: "Salário", Kind: KindIncome},
	{Name: "Freelance", Kind: KindIncome},
	{Name: "Investimentos", Kind: KindIncome},
	{Name: "Presente", Kind: KindIncome},
	{Name: "Bônus", Kind: KindIncome},
	{Name: "Reembolso", Kind: KindIncome},
	{Name: "Aluguel", Kind: KindIncome},
	{Name: "Vendas", Kind: KindIncome},
	{Name: FallbackCategory, Kind: KindIncome},
}

func keywords(category string, kind Kind, words ...string) []KeywordRule {
	out := make([]KeywordRule, len(words))
	for i, w := range words {
		out[i] = KeywordRule{Keyword: w, Category: category, Kind: kind}
	}
	return out
}

// DefaultKeywordRules maps description words to default category names.
var DefaultKeywordRules = concat(
	keywords("Alimentação", KindExpense, "restaurante", "mercado", "supermercado", "padaria", "lanche", "comida", "ifood", "delivery", "pizza", "almoço", "jantar", "pão"),
	keywords("Moradia", KindExpense, "aluguel", "condomínio", "iptu", "reforma", "manutenção", "casa", "apartamento"),
	keywords("Transporte", KindExpense, "gasolina", "combustível", "uber", "99", "táxi", "metrô", "ônibus", "estacionamento", "pedágio"),
	keywords("Saúde", KindExpense, "farmácia", "remédio", "hospital", "consulta", "médico", "plano de saúde", "dentista", "exame"),
	keywords("Educação", KindExpense, "escola", "faculdade", "curso", "livro", "material escolar", "mensalidade"),
	keywords("Lazer", KindExpense, "cinema", "viagem", "hotel", "passeio", "ingresso", "show", "netflix", "spotify", "assinatura", "jogos"),
	keywords("Vestuário", KindExpense, "roupa", "calçado", "tênis", "sapato", "vestido", "camisa", "bolsa"),
	keywords("Serviços", KindExpense, "energia", "água", "luz", "internet", "telefone", "celular", "streaming", "limpeza", "conta", "fatura"),
	keywords("Impostos", KindExpense, "imposto", "taxa", "tributo", "ir", "ipva"),
	keywords("Salário", KindIncome, "salário", "pagamento", "contracheque", "folha", "remuneração"),
	keywords("Freelance", KindIncome, "freelance", "freela", "projeto", "serviço", "consultoria"),
	keywords("Investimentos", KindIncome, "dividendo", "juros", "rendimento", "investimento", "renda"),
	keywords("Aluguel", KindIncome, "aluguel"),
	keywords("Presente", KindIncome, "presente", "doação", "gift", "prêmio"),
	keywords("Bônus", KindIncome, "bônus", "bonus", "bonificação", "plr"),
	keywords("Reembolso", KindIncome, "reembolso", "estorno", "devolução", "restituição", "ressarcimento"),
	keywords("Vendas", KindIncome, "venda", "vendi"),
)

func concat(groups ...[]KeywordRule) []KeywordRule {
	var out []KeywordRule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
