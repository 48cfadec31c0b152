package commands

import "context"

// HelpText lists every command.
const HelpText = "🤖 *Assistente Financeiro* 🤖\n\n" +
	"*COMO USAR*\n" +
	"Você pode falar naturalmente comigo ou usar comandos.\n\n" +
	"*Exemplos de fala natural:*\n" +
	"• \"Comprei pão por 5 reais\"\n" +
	"• \"Gastei 150 com conta de luz\"\n" +
	"• \"Recebi 2500 de salário\"\n" +
	"• \"Quanto tenho de saldo?\"\n" +
	"• \"Como estão meus gastos este mês?\"\n\n" +
	"*COMANDOS DISPONÍVEIS*\n\n" +
	"📝 *Básicos*\n" +
	"• /ajuda - Ver esta mensagem\n" +
	"• /saldo - Consultar saldo atual\n\n" +
	"💰 *Transações*\n" +
	"• /receita [valor] [descrição] - Registrar receita\n" +
	"• /despesa [valor] [descrição] - Registrar despesa\n" +
	"• /buscar [termo] - Buscar transações\n" +
	"• /exportar [mes] [ano] - Exportar o mês em CSV\n\n" +
	"📊 *Relatórios e Análises*\n" +
	"• /relatorio [mes] [ano] - Ver relatório completo\n" +
	"• /comparar [mes1] [ano1] [mes2] [ano2] - Comparar dois meses\n" +
	"• /media [meses] - Médias dos últimos meses\n" +
	"• /grafico pizza [mes] [ano] - Gráfico de despesas\n" +
	"• /grafico linha [mes] [ano] - Evolução no mês\n" +
	"• /grafico barra [mes] [ano] - Comparativo por categoria\n\n" +
	"📋 *Categorias*\n" +
	"• /categorias - Listar todas categorias\n" +
	"• /categoria_add [nome] [tipo] - Criar categoria\n" +
	"• /categoria_del [nome] - Remover categoria\n\n" +
	"💵 *Orçamentos*\n" +
	"• /orcamento - Ver todos orçamentos\n" +
	"• /orcamento [categoria] [valor] - Definir orçamento\n" +
	"• /orcamento_del [categoria] - Remover orçamento\n\n" +
	"🎯 *Metas*\n" +
	"• /metas - Listar metas financeiras\n" +
	"• /meta [valor] [descrição] [data] - Criar meta\n" +
	"• /meta_update [número] [valor] - Atualizar progresso\n" +
	"• /meta_del [número] - Remover meta\n\n" +
	"⏰ *Lembretes*\n" +
	"• /lembretes - Ver lembretes pendentes\n" +
	"• /lembrete [descrição] [data] [valor] - Criar lembrete\n" +
	"• /lembrete_rec [descrição] [valor] [dia] [freq] - Criar lembrete recorrente\n" +
	"• /concluir [número] - Marcar lembrete como concluído\n\n" +
	"⚙️ *Conta*\n" +
	"• /logout - Desconectar do bot\n\n" +
	"❓ *Dicas*\n" +
	"• Use _ para espaços em nomes (ex: conta_de_luz)\n" +
	"• Datas no formato YYYY-MM-DD\n" +
	"• Valores podem usar , ou . (ex: 1500.50 ou 1500,50)\n"

func (d *Dispatcher) help(context.Context, Request) ([]string, error) {
	return []string{HelpText}, nil
}
