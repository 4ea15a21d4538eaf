package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"grana/internal/core"
)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func mainMenuText(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "por aqui"
	}
	return fmt.Sprintf("Olá, %s! 👋\n\nO que vamos fazer agora?", name)
}

func transactionSummary(tx core.Transaction, entryDate time.Time) string {
	verb := "Despesa registrada"
	if tx.Kind == core.Income {
		verb = "Receita registrada"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✅ *%s!*\n\n", verb)
	fmt.Fprintf(&b, "🏷 Categoria: %s\n", tx.Category)
	fmt.Fprintf(&b, "💲 Valor: %s\n", tx.Amount.BRL())
	if tx.Description != "" {
		fmt.Fprintf(&b, "📝 Descrição: %s\n", tx.Description)
	}
	fmt.Fprintf(&b, "📅 Data: %s\n", core.FormatDateBR(tx.Date))
	if !sameMonth(tx.Date, entryDate) {
		fmt.Fprintf(&b, "\n📌 Contabilizado para %s/%d\n", core.MonthNamePT(int(tx.Date.Month())), tx.Date.Year())
	}
	return b.String()
}

func balanceText(month time.Month, year int, totals []core.CategoryTotal) string {
	var income, expense core.Money
	for _, t := range totals {
		switch t.Kind {
		case core.Income:
			income = income.Add(t.Total)
		case core.Expense:
			expense = expense.Add(t.Total)
		}
	}
	balance := income.Sub(expense)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Saldo de %s/%d*\n\n", core.MonthNamePT(int(month)), year)
	fmt.Fprintf(&b, "💰 Receitas: %s\n", income.BRL())
	fmt.Fprintf(&b, "💸 Despesas: %s\n", expense.BRL())
	icon := "✅"
	if balance.Cents < 0 {
		icon = "🔴"
	}
	fmt.Fprintf(&b, "\n%s Saldo: %s", icon, balance.BRL())
	return b.String()
}

func statementText(txs []core.Transaction) string {
	if len(txs) == 0 {
		return "🧾 *Extrato*\n\nNenhum lançamento encontrado."
	}
	var b strings.Builder
	b.WriteString("🧾 *Últimos lançamentos*\n\n")
	for _, t := range txs {
		icon := "💸"
		if t.Kind == core.Income {
			icon = "💰"
		}
		fmt.Fprintf(&b, "%s #%d - %s\n", icon, t.ID, t.Category)
		fmt.Fprintf(&b, "      %s em %s", t.Amount.BRL(), core.FormatDateBR(t.Date))
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
		b.WriteString("\n\n")
	}
	b.WriteString("Toque em um botão para editar ou excluir.")
	return b.String()
}

func monthlyReportText(month time.Month, year int, totals []core.CategoryTotal) string {
	var income, expense core.Money
	var expenses []core.CategoryTotal
	for _, t := range totals {
		switch t.Kind {
		case core.Income:
			income = income.Add(t.Total)
		case core.Expense:
			expense = expense.Add(t.Total)
			expenses = append(expenses, t)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Total.Cents != expenses[j].Total.Cents {
			return expenses[i].Total.Cents > expenses[j].Total.Cents
		}
		return expenses[i].Category < expenses[j].Category
	})

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Resumo de %s/%d*\n\n", core.MonthNamePT(int(month)), year)
	fmt.Fprintf(&b, "💰 Receitas: %s\n", income.BRL())
	fmt.Fprintf(&b, "💸 Despesas: %s\n\n", expense.BRL())
	if len(expenses) == 0 {
		b.WriteString("Nenhuma despesa registrada no mês.")
		return b.String()
	}
	b.WriteString("*Despesas por categoria:*\n")
	for _, e := range expenses {
		share := 0.0
		if expense.Cents > 0 {
			share = float64(e.Total.Cents) / float64(expense.Cents) * 100
		}
		fmt.Fprintf(&b, "%s %s: %s (%.1f%%)\n", shareBar(share), e.Category, e.Total.BRL(), share)
	}
	return b.String()
}

func detailedReportText(month time.Month, year int, txs []core.Transaction) string {
	if len(txs) == 0 {
		return fmt.Sprintf("📋 *Detalhado de %s/%d*\n\nNenhum lançamento no mês.", core.MonthNamePT(int(month)), year)
	}
	byCategory := map[string][]core.Transaction{}
	var order []string
	for _, t := range txs {
		if _, seen := byCategory[t.Category]; !seen {
			order = append(order, t.Category)
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	sort.Strings(order)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Detalhado de %s/%d*\n", core.MonthNamePT(int(month)), year)
	for _, cat := range order {
		var subtotal core.Money
		for _, t := range byCategory[cat] {
			subtotal = subtotal.Add(t.Amount)
		}
		fmt.Fprintf(&b, "\n*%s* - %s\n", cat, subtotal.BRL())
		for _, t := range byCategory[cat] {
			icon := "💸"
			if t.Kind == core.Income {
				icon = "💰"
			}
			fmt.Fprintf(&b, "  %s %s - %s", icon, core.FormatDateBR(t.Date), t.Amount.BRL())
			if t.Description != "" {
				fmt.Fprintf(&b, " (%s)", t.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func comparativeReportText(month time.Month, year int, cmp core.Comparison) string {
	prevYear, prevMonth := core.PreviousMonth(year, int(month))
	var b strings.Builder
	fmt.Fprintf(&b, "📈 *Comparativo %s/%d vs %s/%d*\n\n",
		core.MonthNamePT(int(month)), year, core.MonthNamePT(prevMonth), prevYear)
	fmt.Fprintf(&b, "💰 Receitas: %s%s\n", cmp.IncomeNow.BRL(), core.PercentChange(cmp.IncomeNow, cmp.IncomePrev))
	fmt.Fprintf(&b, "💸 Despesas: %s%s\n", cmp.ExpenseNow.BRL(), core.PercentChange(cmp.ExpenseNow, cmp.ExpensePrev))

	top := cmp.TopIncreases(5)
	if len(top) > 0 {
		b.WriteString("\n*Maiores variações de despesa:*\n")
		for _, d := range top {
			fmt.Fprintf(&b, "▪️ %s: %s%s\n", d.Category, d.Current.BRL(), core.PercentChange(d.Current, d.Previous))
		}
	}
	return b.String()
}

func budgetListText(statuses map[string]core.BudgetStatus, order []string) string {
	if len(order) == 0 {
		return "🎯 *Orçamentos*\n\nNenhum orçamento definido ainda."
	}
	var b strings.Builder
	b.WriteString("🎯 *Orçamentos do mês*\n\n")
	for _, cat := range order {
		st := statuses[cat]
		fmt.Fprintf(&b, "%s *%s*\n", budgetBar(st.PercentUsed), cat)
		fmt.Fprintf(&b, "      %s %s de %s (%.0f%%)\n\n",
			shareBar(st.PercentUsed), st.Spent.BRL(), st.Limit.BRL(), st.PercentUsed)
	}
	b.WriteString("Toque em uma categoria para ver os gastos.")
	return b.String()
}

func budgetSpendingText(category string, st core.BudgetStatus, txs []core.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 *Gastos em %s*\n\n", category)
	if st.Defined {
		fmt.Fprintf(&b, "Limite: %s\n", st.Limit.BRL())
		fmt.Fprintf(&b, "Gasto: %s (%.0f%%)\n", st.Spent.BRL(), st.PercentUsed)
		fmt.Fprintf(&b, "Disponível: %s\n\n", st.Available.BRL())
	}
	if len(txs) == 0 {
		b.WriteString("Nenhuma despesa registrada no mês.")
		return b.String()
	}
	for _, t := range txs {
		fmt.Fprintf(&b, "▪️ %s - %s", core.FormatDateBR(t.Date), t.Amount.BRL())
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func editMenuText(tx core.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✏️ *Editar lançamento #%d*\n\n", tx.ID)
	fmt.Fprintf(&b, "🏷 Categoria: %s\n", tx.Category)
	fmt.Fprintf(&b, "💲 Valor: %s\n", tx.Amount.BRL())
	if tx.Description != "" {
		fmt.Fprintf(&b, "📝 Descrição: %s\n", tx.Description)
	}
	fmt.Fprintf(&b, "📅 Data: %s\n\n", core.FormatDateBR(tx.Date))
	b.WriteString("O que você quer alterar?")
	return b.String()
}

// budgetBar picks the status glyph used in front of each budget line.
func budgetBar(percentUsed float64) string {
	switch {
	case percentUsed >= 100:
		return "🆘"
	case percentUsed >= 80:
		return "🚨"
	case percentUsed >= 50:
		return "⚠️"
	default:
		return "✅"
	}
}

// shareBar renders a coarse proportion marker for the monthly summary.
func shareBar(share float64) string {
	filled := int(share / 12.5)
	if filled > 8 {
		filled = 8
	}
	return strings.Repeat("▪", filled) + strings.Repeat("▫", 8-filled)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
