package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

func TestMapPositional(t *testing.T) {
	table := &model.RawTable{
		SheetName: "RelCartões",
		Headers:   []string{"Coluna1", "Coluna2", "Coluna3", "Coluna4", "Coluna5", "Coluna6", "Coluna7", "Coluna8", "Coluna9"},
		Rows: [][]string{
			{"VENDA CRÉDITO À VISTA", "01/05/2024", "visa ", "123456", "detalhe", "R$ 100,00", "1", "01/06/2024", "Cliente A"},
			{"DÉBITO", "2024-05-02", "MASTERCARD", "654321", "", "1.234,56", "3 de 12", "", "Cliente B"},
			{"", "", "", "", "", "", "", "", ""},
		},
	}

	rows := MapPositional(table, runlog.Discard())
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "123456", first.Authorizer)
	assert.Equal(t, "01/05/2024", first.SaleDate)
	assert.Equal(t, "01/06/2024", first.DueDate)
	assert.Equal(t, model.KindCredit, first.Kind)
	assert.Equal(t, "VISA", first.Brand)
	assert.Equal(t, 1, first.Installment)
	assert.Equal(t, 1, first.Quantity)
	assert.True(t, first.Gross.Equal(decimal.RequireFromString("100")))
	assert.True(t, first.Net.IsZero())
	assert.True(t, first.Discount.IsZero())

	second := rows[1]
	assert.Equal(t, "02/05/2024", second.SaleDate)
	assert.Equal(t, model.KindDebit, second.Kind)
	assert.Equal(t, 3, second.Installment)
	assert.True(t, second.Gross.Equal(decimal.RequireFromString("1234.56")))
}

func TestMapPositionalUnknownKindAndDefaults(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"", "", "", "", "", "", "", "", ""},
		Rows: [][]string{
			{"ESTORNO", "banana", "ELO", "999", "", "abc", "", "", ""},
		},
	}

	log := runlog.Discard()
	rows := MapPositional(table, log)
	require.Len(t, rows, 1)

	assert.Equal(t, model.KindUnknown, rows[0].Kind)
	assert.Equal(t, "banana", rows[0].SaleDate)
	assert.True(t, rows[0].Gross.IsZero())
	assert.Equal(t, 1, rows[0].Installment)
	assert.NotEmpty(t, log.Warnings())
}

func reportTable() *model.RawTable {
	return &model.RawTable{
		SheetName: "Planilha1",
		Headers: []string{
			"Autorização", "Data de lançamento", "Data da venda", "Vencimento",
			"Bandeira/Modalidade", "Parcelas", "Valor da venda",
			"Valor líquido", "Desconto", "Tipo de lançamento",
		},
		Rows: [][]string{
			{"123", "", "01/05/2024", "01/06/2024", "VISA CRÉDITO", "1", "100,00", "95,00", "5,00", "Venda"},
			{"456", "03/05/2024", "02/05/2024", "03/06/2024", "MASTERCARD DÉBITO", "2 de 6", "50,00", "48,00", "2,00", "Venda"},
			{"-", "", "", "", "", "", "0,00", "", "", "Saldo anterior"},
			{"789", "", "04/05/2024", "04/06/2024", "ELO CRÉDITO", "1", "0,00", "0,00", "0,00", "Venda"},
		},
	}
}

func TestMapReport(t *testing.T) {
	rows := MapReport(reportTable(), runlog.Discard())
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "123", first.Authorizer)
	assert.Equal(t, "01/05/2024", first.SaleDate)
	assert.Equal(t, "01/06/2024", first.DueDate)
	assert.Equal(t, "VISA", first.Brand)
	assert.Equal(t, model.KindCredit, first.Kind)
	assert.True(t, first.Net.Equal(decimal.RequireFromString("95")))
	assert.True(t, first.Discount.Equal(decimal.RequireFromString("5")))

	// Entry date beats sale date when present.
	second := rows[1]
	assert.Equal(t, "03/05/2024", second.SaleDate)
	assert.Equal(t, model.KindDebit, second.Kind)
	assert.Equal(t, 2, second.Installment)
}

func TestMapReportSkipsNonTransactional(t *testing.T) {
	rows := MapReport(reportTable(), runlog.Discard())
	for _, r := range rows {
		assert.NotEqual(t, "-", r.Authorizer)
		assert.True(t, r.Gross.Sign() > 0)
	}
}

func TestSplitBrandKind(t *testing.T) {
	brand, kind := SplitBrandKind("VISA CRÉDITO À VISTA")
	assert.Equal(t, "VISA", brand)
	assert.Equal(t, model.KindCredit, kind)

	brand, kind = SplitBrandKind("mastercard/débito")
	assert.Equal(t, "MASTERCARD", brand)
	assert.Equal(t, model.KindDebit, kind)

	brand, kind = SplitBrandKind("")
	assert.Equal(t, "", brand)
	assert.Equal(t, model.KindUnknown, kind)
}
