package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Kind:     Expense,
		Category: "Mercado",
		Amount:   Money{Cents: 15050},
		Date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad kind", func(tx *Transaction) { tx.Kind = "outro" }, ErrInvalidKind},
		{"both not allowed on rows", func(tx *Transaction) { tx.Kind = Both }, ErrInvalidKind},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			if err := tx.Validate(); err != tc.want {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCardCategories(t *testing.T) {
	if !IsCardCategory("Cartão NUBANK") {
		t.Error("Cartão NUBANK should be a card category")
	}
	if IsCardCategory("Mercado") {
		t.Error("Mercado should not be a card category")
	}
	if got := ComposeSubcategory("Cartão NUBANK", "Gasolina"); got != "Cartão NUBANK - Gasolina" {
		t.Errorf("ComposeSubcategory = %q", got)
	}
	if got := SubcategoryLabel("Cartão - Gasolina"); got != "Gasolina" {
		t.Errorf("SubcategoryLabel = %q", got)
	}
	if got := SubcategoryLabel("Mercado"); got != "Mercado" {
		t.Errorf("SubcategoryLabel without prefix = %q", got)
	}
}

func TestCalendarHelpers(t *testing.T) {
	if y, m := PreviousMonth(2025, 1); y != 2024 || m != 12 {
		t.Errorf("PreviousMonth(2025, 1) = %d/%d", y, m)
	}
	if y, m := PreviousMonth(2025, 6); y != 2025 || m != 5 {
		t.Errorf("PreviousMonth(2025, 6) = %d/%d", y, m)
	}
	if got := MonthNamePT(6); got != "Junho" {
		t.Errorf("MonthNamePT(6) = %q", got)
	}
	if got := MonthNamePT(13); got != "" {
		t.Errorf("MonthNamePT(13) = %q", got)
	}

	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := SafeNextMonth(jan31); got.Month() != time.February || got.Day() != 28 {
		t.Errorf("SafeNextMonth(jan31) = %v", got)
	}
	dec15 := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	if got := SafeNextMonth(dec15); got.Year() != 2026 || got.Month() != time.January || got.Day() != 15 {
		t.Errorf("SafeNextMonth(dec15) = %v", got)
	}

	d, err := ParseDateBR("31/08/2025")
	if err != nil || d.Day() != 31 || d.Month() != time.August || d.Year() != 2025 {
		t.Errorf("ParseDateBR = %v, %v", d, err)
	}
	if _, err := ParseDateBR("2025-08-31"); err != ErrInvalidDate {
		t.Errorf("ParseDateBR bad format err = %v", err)
	}
	if got := FormatDateBR(d); got != "31/08/2025" {
		t.Errorf("FormatDateBR = %q", got)
	}
}
