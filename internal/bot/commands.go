package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Commands is the menu registered with Telegram on startup.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Abrir o menu principal"},
		{Command: "gastou", Description: "Registrar uma despesa"},
		{Command: "ganhou", Description: "Registrar uma receita"},
		{Command: "saldo", Description: "Ver o saldo do mês"},
		{Command: "relatorio", Description: "Ver relatórios"},
		{Command: "orcamento", Description: "Gerenciar orçamentos"},
		{Command: "zerar", Description: "Apagar todos os dados"},
	}
}
