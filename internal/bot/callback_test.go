package bot

import (
	"testing"
	"time"

	"grana/internal/core"
)

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		data string
		want Callback
	}{
		{"menu_principal", CbMainMenu{}},
		{"add_despesa", CbAddTransaction{Kind: core.Expense}},
		{"add_receita", CbAddTransaction{Kind: core.Income}},
		{"saldo", CbBalance{}},
		{"extrato", CbStatement{}},
		{"relatorios", CbReports{}},
		{"orcamentos", CbBudgets{}},
		{"orc_definir", CbBudgetDefine{}},
		{"orc_ver", CbBudgetView{}},
		{"confirmar_zerar", CbWipeConfirm{}},
		{"cat_Alimentação", CbCategory{Name: "Alimentação"}},
		{"subcat_Cartão - Gasolina", CbSubcategory{Name: "Cartão - Gasolina"}},
		{"subcat_pular_Cartão NUBANK", CbSubcategorySkip{Parent: "Cartão NUBANK"}},
		{"data_2026-08-15", CbDate{Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)}},
		{"data_manual", CbDateManual{}},
		{"rel_grafico", CbReport{Kind: ReportChart}},
		{"rel_detalhado", CbReport{Kind: ReportDetailed}},
		{"rel_comparativo", CbReport{Kind: ReportComparative}},
		{"orc_cat_Lazer", CbBudgetCategory{Name: "Lazer"}},
		{"orc_gastos_Lazer", CbBudgetSpending{Category: "Lazer"}},
		{"edit_tx_42", CbEditTx{ID: 42}},
		{"edit_campo_valor_42", CbEditField{Field: core.FieldAmount, ID: 42}},
		{"edit_campo_categoria_7", CbEditField{Field: core.FieldCategory, ID: 7}},
		{"edit_campo_descricao_7", CbEditField{Field: core.FieldDescription, ID: 7}},
		{"edit_cat_select_Transporte", CbEditCategory{Name: "Transporte"}},
		{"del_tx_9", CbDeleteTx{ID: 9}},
		{"del_confirmar_9", CbDeleteConfirm{ID: 9}},
	}
	for _, tt := range tests {
		got, err := DecodeCallback(tt.data)
		if err != nil {
			t.Fatalf("DecodeCallback(%q): %v", tt.data, err)
		}
		if got != tt.want {
			t.Fatalf("DecodeCallback(%q) = %#v, want %#v", tt.data, got, tt.want)
		}
	}
}

// data_manual must never be parsed as a data_ date payload, and the
// longer edit/subcategory prefixes must win over their shorter forms.
func TestDecodeCallbackPrecedence(t *testing.T) {
	if got, _ := DecodeCallback("data_manual"); got != (CbDateManual{}) {
		t.Fatalf("data_manual decoded as %#v", got)
	}
	if got, _ := DecodeCallback("subcat_pular_X"); got != (CbSubcategorySkip{Parent: "X"}) {
		t.Fatalf("subcat_pular_X decoded as %#v", got)
	}
	if got, _ := DecodeCallback("edit_cat_select_X"); got != (CbEditCategory{Name: "X"}) {
		t.Fatalf("edit_cat_select_X decoded as %#v", got)
	}
}

func TestDecodeCallbackRejects(t *testing.T) {
	bad := []string{
		"",
		"nope",
		"data_15/08/2026",
		"edit_tx_abc",
		"edit_campo_valor",
		"edit_campo_total_42",
		"rel_anual",
		"del_tx_",
	}
	for _, data := range bad {
		if got, err := DecodeCallback(data); err == nil {
			t.Fatalf("DecodeCallback(%q) = %#v, want error", data, got)
		}
	}
}

func TestCallbackEncodeDecodeRoundTrip(t *testing.T) {
	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	payloads := []string{
		encodeCategory("Saúde"),
		encodeSubcategory("Cartão - Uber"),
		encodeSubcategorySkip("Cartão NUBANK"),
		encodeDate(date),
		encodeBudgetCategory("Mercado"),
		encodeBudgetSpending("Mercado"),
		encodeEditTx(5),
		encodeEditField(core.FieldDescription, 5),
		encodeEditCategorySel("Lazer"),
		encodeDeleteTx(5),
		encodeDeleteConfirm(5),
	}
	for _, p := range payloads {
		if _, err := DecodeCallback(p); err != nil {
			t.Fatalf("DecodeCallback(%q): %v", p, err)
		}
	}
}
