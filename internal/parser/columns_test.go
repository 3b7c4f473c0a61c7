package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumnsExactAndFuzzy(t *testing.T) {
	headers := []string{
		"Código de Autorização",
		"Data da venda",
		"Data de vencimento",
		"Bandeira/Modalidade",
		"Parcelas",
		"Valor da venda",
		"Valor líquido da parcela",
		"Valor do desconto",
	}

	cols := ResolveColumns(headers)

	assert.Equal(t, 0, cols[FieldAuthorizer])
	assert.Equal(t, 1, cols[FieldSaleDate])
	assert.Equal(t, 2, cols[FieldDueDate])
	assert.Equal(t, 3, cols[FieldBrandKind])
	assert.Equal(t, 4, cols[FieldInstallment])
	assert.Equal(t, 5, cols[FieldGross])
	assert.Equal(t, 6, cols[FieldNet])
	assert.Equal(t, 7, cols[FieldDiscount])
}

func TestResolveColumnsToleratesSpellingNoise(t *testing.T) {
	headers := []string{
		"  CÓDIGO  DE AUTORIZAÇÃO ",
		"Data  Venda",
		"VENCIMENTO",
		"Bandeira / Modalidade",
		"Nº da Parcela",
		"Valor Bruto da Venda",
		"Valor Líquido",
		"Desconto",
	}

	cols := ResolveColumns(headers)

	for _, field := range requiredFields {
		_, ok := cols[field]
		assert.True(t, ok, "field %s not resolved", field)
	}
}

func TestValidateStructureReportsMissing(t *testing.T) {
	report := ValidateStructure([]string{"Autorização", "Data da venda", "Valor da venda"})

	assert.False(t, report.IsValid)
	assert.Contains(t, report.MissingFields, string(FieldDueDate))
	assert.Contains(t, report.MissingFields, string(FieldBrandKind))
	assert.Contains(t, report.MissingFields, string(FieldNet))
	assert.NotContains(t, report.MissingFields, string(FieldAuthorizer))
	assert.NotContains(t, report.MissingFields, string(FieldGross))
}

func TestValidateStructureComplete(t *testing.T) {
	report := ValidateStructure([]string{
		"Autorização", "Data da venda", "Vencimento", "Bandeira/Modalidade",
		"Parcelas", "Valor da venda", "Valor líquido", "Desconto",
	})

	assert.True(t, report.IsValid)
	assert.Empty(t, report.MissingFields)
}

func TestLooksLikeReportHeader(t *testing.T) {
	assert.True(t, LooksLikeReportHeader([]string{"Autorização", "Bandeira/Modalidade", "Valor da venda"}))
	assert.False(t, LooksLikeReportHeader([]string{"Relatório detalhado", "", ""}))
	assert.False(t, LooksLikeReportHeader([]string{"01/05/2024", "123", "VISA"}))
}
