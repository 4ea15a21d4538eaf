package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"grana/internal/core"
)

// Callback is the decoded form of an inline-keyboard payload. Raw
// payloads keep the historical "prefix_arg" wire format, but they are
// parsed exactly once at the boundary and dispatched as typed variants,
// so prefix collisions (data_manual vs data_) cannot reroute events.
type Callback interface{ callback() }

type (
	CbMainMenu        struct{}
	CbAddTransaction  struct{ Kind core.Kind }
	CbCategory        struct{ Name string }
	CbSubcategory     struct{ Name string }
	CbSubcategorySkip struct{ Parent string }
	CbDate            struct{ Date time.Time }
	CbDateManual      struct{}
	CbBalance         struct{}
	CbStatement       struct{}
	CbReports         struct{}
	CbReport          struct{ Kind ReportKind }
	CbBudgets         struct{}
	CbBudgetDefine    struct{}
	CbBudgetCategory  struct{ Name string }
	CbBudgetView      struct{}
	CbBudgetSpending  struct{ Category string }
	CbWipeConfirm     struct{}
	CbEditTx          struct{ ID int64 }
	CbEditField       struct {
		Field core.EditableField
		ID    int64
	}
	CbEditCategory  struct{ Name string }
	CbDeleteTx      struct{ ID int64 }
	CbDeleteConfirm struct{ ID int64 }
)

func (CbMainMenu) callback()        {}
func (CbAddTransaction) callback()  {}
func (CbCategory) callback()        {}
func (CbSubcategory) callback()     {}
func (CbSubcategorySkip) callback() {}
func (CbDate) callback()            {}
func (CbDateManual) callback()      {}
func (CbBalance) callback()         {}
func (CbStatement) callback()       {}
func (CbReports) callback()         {}
func (CbReport) callback()          {}
func (CbBudgets) callback()         {}
func (CbBudgetDefine) callback()    {}
func (CbBudgetCategory) callback()  {}
func (CbBudgetView) callback()      {}
func (CbBudgetSpending) callback()  {}
func (CbWipeConfirm) callback()     {}
func (CbEditTx) callback()          {}
func (CbEditField) callback()       {}
func (CbEditCategory) callback()    {}
func (CbDeleteTx) callback()        {}
func (CbDeleteConfirm) callback()   {}

type ReportKind string

const (
	ReportChart       ReportKind = "grafico"
	ReportDetailed    ReportKind = "detalhado"
	ReportComparative ReportKind = "comparativo"
)

const callbackDateLayout = "2006-01-02"

// DecodeCallback parses a raw payload into its typed variant. Exact
// matches are checked before prefixes, and longer prefixes before the
// ones they contain, so the most specific form always wins.
func DecodeCallback(data string) (Callback, error) {
	switch data {
	case "menu_principal":
		return CbMainMenu{}, nil
	case "add_despesa":
		return CbAddTransaction{Kind: core.Expense}, nil
	case "add_receita":
		return CbAddTransaction{Kind: core.Income}, nil
	case "data_manual":
		return CbDateManual{}, nil
	case "saldo":
		return CbBalance{}, nil
	case "extrato":
		return CbStatement{}, nil
	case "relatorios":
		return CbReports{}, nil
	case "orcamentos":
		return CbBudgets{}, nil
	case "orc_definir":
		return CbBudgetDefine{}, nil
	case "orc_ver":
		return CbBudgetView{}, nil
	case "confirmar_zerar":
		return CbWipeConfirm{}, nil
	}

	// Prefix forms, most specific first.
	if arg, ok := cut(data, "edit_cat_select_"); ok {
		return CbEditCategory{Name: arg}, nil
	}
	if arg, ok := cut(data, "edit_campo_"); ok {
		return decodeEditField(arg)
	}
	if arg, ok := cut(data, "edit_tx_"); ok {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("callback %q: bad transaction id", data)
		}
		return CbEditTx{ID: id}, nil
	}
	if arg, ok := cut(data, "del_confirmar_"); ok {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("callback %q: bad transaction id", data)
		}
		return CbDeleteConfirm{ID: id}, nil
	}
	if arg, ok := cut(data, "del_tx_"); ok {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("callback %q: bad transaction id", data)
		}
		return CbDeleteTx{ID: id}, nil
	}
	if arg, ok := cut(data, "subcat_pular_"); ok {
		return CbSubcategorySkip{Parent: arg}, nil
	}
	if arg, ok := cut(data, "subcat_"); ok {
		return CbSubcategory{Name: arg}, nil
	}
	if arg, ok := cut(data, "orc_cat_"); ok {
		return CbBudgetCategory{Name: arg}, nil
	}
	if arg, ok := cut(data, "orc_gastos_"); ok {
		return CbBudgetSpending{Category: arg}, nil
	}
	if arg, ok := cut(data, "rel_"); ok {
		switch ReportKind(arg) {
		case ReportChart, ReportDetailed, ReportComparative:
			return CbReport{Kind: ReportKind(arg)}, nil
		}
		return nil, fmt.Errorf("callback %q: unknown report kind", data)
	}
	if arg, ok := cut(data, "data_"); ok {
		d, err := time.Parse(callbackDateLayout, arg)
		if err != nil {
			return nil, fmt.Errorf("callback %q: bad date", data)
		}
		return CbDate{Date: d}, nil
	}
	if arg, ok := cut(data, "cat_"); ok {
		return CbCategory{Name: arg}, nil
	}

	return nil, fmt.Errorf("unknown callback %q", data)
}

func decodeEditField(arg string) (Callback, error) {
	field, idPart, ok := strings.Cut(arg, "_")
	if !ok {
		return nil, fmt.Errorf("callback edit_campo_%q: missing id", arg)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("callback edit_campo_%q: bad transaction id", arg)
	}
	switch core.EditableField(field) {
	case core.FieldAmount, core.FieldCategory, core.FieldDescription:
		return CbEditField{Field: core.EditableField(field), ID: id}, nil
	}
	return nil, fmt.Errorf("callback edit_campo_%q: unknown field", arg)
}

func cut(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}

// Encoders keep the wire format in one place.

func encodeCategory(name string) string        { return "cat_" + name }
func encodeSubcategory(name string) string     { return "subcat_" + name }
func encodeSubcategorySkip(p string) string    { return "subcat_pular_" + p }
func encodeDate(d time.Time) string            { return "data_" + d.Format(callbackDateLayout) }
func encodeBudgetCategory(name string) string  { return "orc_cat_" + name }
func encodeBudgetSpending(name string) string  { return "orc_gastos_" + name }
func encodeEditTx(id int64) string             { return "edit_tx_" + strconv.FormatInt(id, 10) }
func encodeDeleteTx(id int64) string           { return "del_tx_" + strconv.FormatInt(id, 10) }
func encodeDeleteConfirm(id int64) string      { return "del_confirmar_" + strconv.FormatInt(id, 10) }
func encodeEditCategorySel(name string) string { return "edit_cat_select_" + name }

func encodeEditField(field core.EditableField, id int64) string {
	return "edit_campo_" + string(field) + "_" + strconv.FormatInt(id, 10)
}
