package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grana/internal/core"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Despesa", "add_despesa"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Receita", "add_receita"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Saldo", "saldo"),
			tgbotapi.NewInlineKeyboardButtonData("🧾 Extrato", "extrato"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Relatórios", "relatorios"),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Orçamentos", "orcamentos"),
		),
	)
}

// categoryKeyboard lays categories out two per row, with a back button.
func categoryKeyboard(cats []core.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range cats {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeCategory(c.Name)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func subcategoryKeyboard(parent string, subs []core.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range subs {
		label := core.SubcategoryLabel(c.Name)
		if c.Icon != "" {
			label = c.Icon + " " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeSubcategory(c.Name)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏭️ Pular", encodeSubcategorySkip(parent)),
	))
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func dateKeyboard(today time.Time) tgbotapi.InlineKeyboardMarkup {
	yesterday := today.AddDate(0, 0, -1)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Hoje", encodeDate(today)),
			tgbotapi.NewInlineKeyboardButtonData("🕐 Ontem", encodeDate(yesterday)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📆 Mês que vem", encodeDate(core.SafeNextMonth(today))),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Outra data", "data_manual"),
		),
		backRow(),
	)
}

func reportsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Resumo do mês", "rel_grafico"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Detalhado", "rel_detalhado"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Comparativo", "rel_comparativo"),
		),
		backRow(),
	)
}

func budgetsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Definir orçamento", "orc_definir"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Ver orçamentos", "orc_ver"),
		),
		backRow(),
	)
}

func budgetCategoryKeyboard(cats []core.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range cats {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeBudgetCategory(c.Name)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func budgetListKeyboard(budgets []core.Budget) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, b := range budgets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 "+b.Category, encodeBudgetSpending(b.Category)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func statementKeyboard(txs []core.Transaction) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range txs {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Editar #"+formatID(t.ID), encodeEditTx(t.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Excluir #"+formatID(t.ID), encodeDeleteTx(t.ID)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func editFieldKeyboard(id int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💲 Valor", encodeEditField(core.FieldAmount, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏷 Categoria", encodeEditField(core.FieldCategory, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Descrição", encodeEditField(core.FieldDescription, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Excluir lançamento", encodeDeleteTx(id)),
		),
		backRow(),
	)
}

func editCategoryKeyboard(cats []core.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range cats {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeEditCategorySel(c.Name)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteConfirmKeyboard(id int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Sim, excluir", encodeDeleteConfirm(id)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Cancelar", encodeEditTx(id)),
		),
	)
}

func wipeConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Sim, apagar tudo", "confirmar_zerar"),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Cancelar", "menu_principal"),
		),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Menu principal", "menu_principal"),
	)
}
