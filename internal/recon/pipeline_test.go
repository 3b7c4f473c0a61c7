package recon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

func positionalTable(rows ...[]string) *model.RawTable {
	return &model.RawTable{
		SheetName: "RelCartões",
		Headers:   []string{"", "", "", "", "", "", "", "", ""},
		Rows:      rows,
	}
}

func bankTable(rows ...[]string) *model.RawTable {
	return &model.RawTable{
		SheetName: "Planilha1",
		Headers: []string{
			"Autorização", "Data da venda", "Vencimento", "Bandeira/Modalidade",
			"Parcelas", "Valor da venda", "Valor líquido", "Desconto",
		},
		Rows: rows,
	}
}

func TestRunEndToEndMatched(t *testing.T) {
	primary := positionalTable(
		[]string{"CRÉDITO", "01/05/2024", "VISA", "123", "", "100,00", "1", "", "Cliente"},
	)
	secondary := bankTable(
		[]string{"123", "01/05/2024", "01/06/2024", "VISA CRÉDITO", "1", "100,00", "95,00", "5,00"},
	)

	report, err := recon.Run(primary, secondary, recon.RunOptions{}, runlog.Discard())
	require.NoError(t, err)

	require.Len(t, report.Outcome.Matched, 1)
	require.Empty(t, report.Outcome.Discrepancies)

	got := report.Outcome.Matched[0]
	assert.Equal(t, "01/06/2024", got.DueDate)
	assert.Equal(t, "95", got.Net.String())
	assert.Equal(t, "5", got.Discount.String())
	assert.True(t, report.Structure.IsValid)
	assert.Equal(t, 1, report.PrimaryCount)
	assert.Equal(t, 1, report.SecondaryCount)
}

func TestRunEndToEndGrossDivergence(t *testing.T) {
	primary := positionalTable(
		[]string{"CRÉDITO", "01/05/2024", "VISA", "123", "", "100,00", "1", "", ""},
	)
	secondary := bankTable(
		[]string{"123", "01/05/2024", "01/06/2024", "VISA CRÉDITO", "1", "100,02", "95,00", "5,00"},
	)

	report, err := recon.Run(primary, secondary, recon.RunOptions{}, runlog.Discard())
	require.NoError(t, err)

	require.Empty(t, report.Outcome.Matched)
	require.Len(t, report.Outcome.Discrepancies, 1)
	require.NotEmpty(t, report.Outcome.Discrepancies[0].Issues)
	assert.Contains(t, report.Outcome.Discrepancies[0].Issues[0], "gross amount divergent")
}

func TestRunEndToEndUnknownAuthorizer(t *testing.T) {
	primary := positionalTable(
		[]string{"CRÉDITO", "01/05/2024", "VISA", "999", "", "100,00", "1", "", ""},
	)
	secondary := bankTable(
		[]string{"123", "01/05/2024", "01/06/2024", "VISA CRÉDITO", "1", "100,00", "95,00", "5,00"},
	)

	report, err := recon.Run(primary, secondary, recon.RunOptions{}, runlog.Discard())
	require.NoError(t, err)

	require.Len(t, report.Outcome.Discrepancies, 1)
	assert.Equal(t, []string{"authorizer not found in bank report"}, report.Outcome.Discrepancies[0].Issues)
}

func TestRunAppliesDateFilterToPrimary(t *testing.T) {
	primary := positionalTable(
		[]string{"CRÉDITO", "01/04/2024", "VISA", "111", "", "10,00", "1", "", ""},
		[]string{"CRÉDITO", "01/05/2024", "VISA", "222", "", "20,00", "1", "", ""},
	)
	secondary := bankTable()

	opts := recon.RunOptions{
		StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, time.May, 31, 0, 0, 0, 0, time.Local),
	}
	report, err := recon.Run(primary, secondary, opts, runlog.Discard())
	require.NoError(t, err)

	assert.Equal(t, 1, report.PrimaryCount)
	require.Len(t, report.Outcome.Discrepancies, 1)
	assert.Equal(t, "222", report.Outcome.Discrepancies[0].Row.Authorizer)
}

func TestRunMissingInputs(t *testing.T) {
	_, err := recon.Run(nil, bankTable(), recon.RunOptions{}, runlog.Discard())
	assert.ErrorIs(t, err, recon.ErrMissingTable)

	_, err = recon.Run(positionalTable(), nil, recon.RunOptions{}, runlog.Discard())
	assert.ErrorIs(t, err, recon.ErrMissingTable)
}

func TestConvert(t *testing.T) {
	table := positionalTable(
		[]string{"DÉBITO", "02/05/2024", "MASTERCARD", "654", "", "1.234,56", "3 de 12", "01/06/2024", ""},
	)

	report, err := recon.Convert(table, recon.RunOptions{}, runlog.Discard())
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	got := report.Rows[0]
	assert.Equal(t, model.KindDebit, got.Kind)
	assert.Equal(t, 3, got.Installment)
	assert.True(t, got.Net.IsZero())
	assert.True(t, got.Discount.IsZero())

	_, err = recon.Convert(nil, recon.RunOptions{}, runlog.Discard())
	assert.ErrorIs(t, err, recon.ErrMissingTable)
}
