package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "receita"
	Expense Kind = "despesa"
	Both    Kind = "ambos"
)

type (
	Kind string

	Money struct {
		Cents int64
	}

	Category struct {
		Name string
		Kind Kind
		Icon string
	}

	Transaction struct {
		ID          int64
		UserID      string
		Kind        Kind
		Category    string
		Amount      Money
		Description string
		// Date is the calendar date the transaction is accounted to; reports
		// group by its month/year. May differ from CreatedAt when backdated.
		Date      time.Time
		CreatedAt time.Time
	}

	Budget struct {
		Category string
		Limit    Money
		Month    int
		Year     int
	}

	// BudgetStatus describes a category budget for one month.
	// Defined is false when no budget row exists; all amounts are then zero.
	BudgetStatus struct {
		Defined     bool
		Limit       Money
		Spent       Money
		Available   Money
		PercentUsed float64
	}

	CategoryTotal struct {
		Category string
		Kind     Kind
		Total    Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrEmptyCategory = errors.New("empty category")
	ErrNotFound      = errors.New("not found")
)

// EditableField enumerates the transaction fields the edit flow may change.
// Anything outside this closed set is rejected by the storage layer.
type EditableField string

const (
	FieldAmount      EditableField = "valor"
	FieldCategory    EditableField = "categoria"
	FieldDescription EditableField = "descricao"
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsCardCategory reports whether an expense category fans out into the
// card-subcategory menu before being recorded.
func IsCardCategory(name string) bool {
	return strings.Contains(strings.ToUpper(name), "CARTÃO")
}

// ComposeSubcategory builds the stored category label for a card purchase,
// e.g. ("Cartão NUBANK", "Gasolina") -> "Cartão NUBANK - Gasolina".
func ComposeSubcategory(parent, sub string) string {
	return parent + " - " + sub
}

// SubcategoryLabel strips the "Cartão - " prefix from a subcategory row
// name for display and composition.
func SubcategoryLabel(name string) string {
	if _, after, ok := strings.Cut(name, " - "); ok {
		return after
	}
	return name
}
