package assistant

import (
	"fmt"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

const (
	ExpenseGuidanceReply = "❌ Desculpe, não consegui entender corretamente.\n\n" +
		"Por favor, use um destes formatos:\n" +
		"• \"Comprei [algo] por [valor]\"\n" +
		"• \"[valor] reais de [algo]\"\n" +
		"• \"Gastei [valor] com [algo]\"\n\n" +
		"Exemplos:\n" +
		"• \"Comprei pão por 5 reais\"\n" +
		"• \"10 reais de pão\"\n" +
		"• \"Gastei 15 com almoço\""

	IncomeGuidanceReply = "❌ Desculpe, não consegui entender o valor corretamente.\n\n" +
		"Por favor, use formatos como:\n" +
		"• \"Recebi 1000 de salário\"\n" +
		"• \"Recebi 500 reais de pensão\""

	HelpReply = "🤖 *Assistente Financeiro* 🤖\n\n" +
		"Olá! Sou seu assistente financeiro pessoal. Você pode falar comigo naturalmente!\n\n" +
		"*Exemplos do que você pode dizer:*\n\n" +
		"• \"Comprei pão na padaria por R$ 5,50\"\n" +
		"• \"Gastei 120 reais com conta de luz\"\n" +
		"• \"Recebi 2500 de salário\"\n" +
		"• \"Quanto tenho de saldo?\"\n" +
		"• \"Me mostre um relatório deste mês\"\n\n" +
		"Também aceito comandos começando com /:\n" +
		"/receita, /despesa, /saldo, /relatorio, /grafico\n\n" +
		"Digite /ajuda para ver todos os comandos."

	FallbackReply = "🤔 *Não entendi.* Vou te ajudar:\n\n" +
		"*📝 Para registrar:*\n" +
		"• \"Comprei pão por 5 reais\"\n" +
		"• \"Gastei 150 na conta de luz\"\n" +
		"• \"Recebi 2500 de salário\"\n\n" +
		"*📊 Para consultar:*\n" +
		"• \"Como está meu saldo?\"\n" +
		"• \"Como estão meus gastos?\"\n" +
		"• \"Mostre minhas metas\"\n" +
		"• \"Ver meu orçamento\"\n" +
		"• \"Meus lembretes\"\n\n" +
		"*💡 Ou use comandos:*\n" +
		"Digite /ajuda para ver todos os comandos disponíveis."

	GenericFailureReply = "❌ Ocorreu um erro ao processar sua mensagem.\nPor favor, tente novamente."
)

func guidanceReply(intent nlp.Intent) string {
	if intent == nlp.Income {
		return IncomeGuidanceReply
	}
	return ExpenseGuidanceReply
}

func confirmationReply(tx nlp.ExtractedTransaction, currency string) string {
	amount := money.FormatDecimal(tx.Amount)
	if m, err := money.NewFromDecimal(tx.Amount, currency); err == nil {
		amount = m.Format()
	}
	if tx.Kind == nlp.KindIncome {
		return fmt.Sprintf("✅ Receita registrada com sucesso!\n\n💰 Valor: %s\n📝 Descrição: %s", amount, tx.Description)
	}
	return fmt.Sprintf("✅ Despesa registrada com sucesso!\n\n📝 Descrição: %s\n💰 Valor: %s\n\n"+
		"Quer ver seu saldo atual? Digite \"saldo\" ou \"/saldo\"", tx.Description, amount)
}
