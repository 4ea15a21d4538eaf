package core

import (
	"strings"
	"testing"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     string
	}{
		{"new", 100, 0, " (Novo)"},
		{"both zero", 0, 0, ""},
		{"increase", 150, 100, " (+50.0%)"},
		{"decrease", 50, 100, " (-50.0%)"},
		{"unchanged", 100, 100, " (+0.0%)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PercentChange(Money{Cents: tc.current}, Money{Cents: tc.previous})
			if got != tc.want {
				t.Errorf("PercentChange(%d, %d) = %q, want %q", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestBudgetAlertTiers(t *testing.T) {
	cases := []struct {
		percent float64
		fires   bool
		marker  string
	}{
		{49, false, ""},
		{50, true, "Metade"},
		{79.9, true, "Metade"},
		{80, true, "80%"},
		{100, true, "estourado"},
		{150, true, "estourado"}, // no tier above 100
	}
	for _, tc := range cases {
		msg, ok := BudgetAlert("Lazer", tc.percent)
		if ok != tc.fires {
			t.Fatalf("percent %.1f: fires=%v, want %v", tc.percent, ok, tc.fires)
		}
		if ok && !strings.Contains(msg, tc.marker) {
			t.Errorf("percent %.1f: message %q missing %q", tc.percent, msg, tc.marker)
		}
		if ok && !strings.Contains(msg, "Lazer") {
			t.Errorf("percent %.1f: message %q missing category", tc.percent, msg)
		}
	}
}

func TestPercentUsed(t *testing.T) {
	if got := PercentUsed(Money{Cents: 5000}, Money{Cents: 10000}); got != 50 {
		t.Errorf("PercentUsed = %v, want 50", got)
	}
	if got := PercentUsed(Money{Cents: 5000}, Money{}); got != 0 {
		t.Errorf("PercentUsed with zero limit = %v, want 0", got)
	}
	if got := PercentUsed(Money{}, Money{Cents: -100}); got != 0 {
		t.Errorf("PercentUsed with negative limit = %v, want 0", got)
	}
}

func TestCompare(t *testing.T) {
	current := []CategoryTotal{
		{Category: "Salário", Kind: Income, Total: Money{Cents: 500000}},
		{Category: "Mercado", Kind: Expense, Total: Money{Cents: 80000}},
		{Category: "Lazer", Kind: Expense, Total: Money{Cents: 30000}},
	}
	previous := []CategoryTotal{
		{Category: "Salário", Kind: Income, Total: Money{Cents: 500000}},
		{Category: "Mercado", Kind: Expense, Total: Money{Cents: 60000}},
		{Category: "Transporte", Kind: Expense, Total: Money{Cents: 20000}},
	}

	c := Compare(current, previous)
	if c.IncomeNow.Cents != 500000 || c.IncomePrev.Cents != 500000 {
		t.Fatalf("income totals wrong: %+v", c)
	}
	if c.ExpenseNow.Cents != 110000 || c.ExpensePrev.Cents != 80000 {
		t.Fatalf("expense totals wrong: %+v", c)
	}

	// Union of expense categories, absent side counted as zero.
	byCat := map[string]CategoryDelta{}
	for _, d := range c.Deltas {
		byCat[d.Category] = d
	}
	if len(byCat) != 3 {
		t.Fatalf("expected 3 delta categories, got %d", len(byCat))
	}
	if d := byCat["Lazer"]; d.Previous.Cents != 0 || d.Delta.Cents != 30000 {
		t.Errorf("Lazer delta wrong: %+v", d)
	}
	if d := byCat["Transporte"]; d.Current.Cents != 0 || d.Delta.Cents != -20000 {
		t.Errorf("Transporte delta wrong: %+v", d)
	}

	top := c.TopIncreases(3)
	if len(top) != 2 || top[0].Category != "Lazer" || top[1].Category != "Mercado" {
		t.Errorf("TopIncreases wrong: %+v", top)
	}
}
