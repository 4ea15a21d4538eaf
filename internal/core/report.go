package core

import (
	"fmt"
	"sort"
)

// PercentChange renders the variation tag used in comparative reports.
// A previous value of zero yields " (Novo)" when something was earned or
// spent now, and an empty string when both periods are zero.
func PercentChange(current, previous Money) string {
	if previous.Cents == 0 {
		if current.Cents > 0 {
			return " (Novo)"
		}
		return ""
	}
	change := float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return fmt.Sprintf(" (%s%.1f%%)", sign, change)
}

// BudgetAlert returns the alert message for a category's percent-used.
// Thresholds are checked highest first so exactly one tier fires; below
// 50% there is no alert.
func BudgetAlert(category string, percentUsed float64) (string, bool) {
	switch {
	case percentUsed >= 100:
		return fmt.Sprintf("🆘 Orçamento de *%s* estourado!", category), true
	case percentUsed >= 80:
		return fmt.Sprintf("🚨 Cuidado! 80%% do orçamento de *%s* foi utilizado!", category), true
	case percentUsed >= 50:
		return fmt.Sprintf("🤔 Metade do orçamento de *%s* já foi...", category), true
	}
	return "", false
}

type (
	CategoryDelta struct {
		Category string
		Current  Money
		Previous Money
		Delta    Money
	}

	Comparison struct {
		IncomeNow    Money
		ExpenseNow   Money
		IncomePrev   Money
		ExpensePrev  Money
		Deltas       []CategoryDelta
	}
)

// Compare builds the month-over-month comparison from two aggregated
// report results. Expense deltas cover the union of categories seen in
// either period; a category absent from one side counts as zero there.
func Compare(current, previous []CategoryTotal) Comparison {
	var c Comparison
	now := map[string]Money{}
	prev := map[string]Money{}

	for _, t := range current {
		switch t.Kind {
		case Income:
			c.IncomeNow = c.IncomeNow.Add(t.Total)
		case Expense:
			c.ExpenseNow = c.ExpenseNow.Add(t.Total)
			now[t.Category] = now[t.Category].Add(t.Total)
		}
	}
	for _, t := range previous {
		switch t.Kind {
		case Income:
			c.IncomePrev = c.IncomePrev.Add(t.Total)
		case Expense:
			c.ExpensePrev = c.ExpensePrev.Add(t.Total)
			prev[t.Category] = prev[t.Category].Add(t.Total)
		}
	}

	seen := map[string]bool{}
	for cat := range now {
		seen[cat] = true
	}
	for cat := range prev {
		seen[cat] = true
	}
	for cat := range seen {
		cur, old := now[cat], prev[cat]
		c.Deltas = append(c.Deltas, CategoryDelta{
			Category: cat,
			Current:  cur,
			Previous: old,
			Delta:    cur.Sub(old),
		})
	}
	sort.Slice(c.Deltas, func(i, j int) bool {
		if c.Deltas[i].Delta.Cents != c.Deltas[j].Delta.Cents {
			return c.Deltas[i].Delta.Cents > c.Deltas[j].Delta.Cents
		}
		return c.Deltas[i].Category < c.Deltas[j].Category
	})
	return c
}

// TopIncreases returns up to n categories whose spending grew.
func (c Comparison) TopIncreases(n int) []CategoryDelta {
	var out []CategoryDelta
	for _, d := range c.Deltas {
		if d.Delta.Cents <= 0 {
			break
		}
		out = append(out, d)
		if len(out) == n {
			break
		}
	}
	return out
}

// PercentUsed computes spending against a limit; a non-positive limit
// always yields zero.
func PercentUsed(spent, limit Money) float64 {
	if limit.Cents <= 0 {
		return 0
	}
	return float64(spent.Cents) / float64(limit.Cents) * 100
}
