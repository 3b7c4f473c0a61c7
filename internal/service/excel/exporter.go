package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
)

const (
	dataSheet        = "Dados"
	discrepancySheet = "Divergências"
)

// datasetHeaders the TESTE layout every downstream consumer expects.
var datasetHeaders = []string{
	"AUTORIZADOR", "VENDA", "VENCIMENTO", "TIPO", "PARC",
	"QTDADE", "BANDEIRA", "BRUTO", "LIQUIDO", "DESCONTO",
}

var discrepancyHeaders = []string{
	"AUTORIZADOR", "VENDA", "BANDEIRA", "TIPO", "PARC", "BRUTO", "DIVERGENCIAS",
}

// Exporter builds result workbooks.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// BuildDataset exports canonical rows as a single-sheet workbook in the
// TESTE layout. Used for conversion-only runs.
func (e *Exporter) BuildDataset(rows []model.CanonicalRow) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", dataSheet)

	if err := e.writeDataset(f, rows, nil); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildReconciliation exports a reconciliation outcome as two sheets: the
// canonical dataset (matched rows carry the bank-confirmed settlement
// fields, discrepant rows are highlighted and carry none) and a parallel
// discrepancy table with the joined issue strings.
func (e *Exporter) BuildReconciliation(outcome model.MatchOutcome) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", dataSheet)

	all := make([]model.CanonicalRow, 0, len(outcome.Matched)+len(outcome.Discrepancies))
	all = append(all, outcome.Matched...)
	discrepantFrom := len(all)
	for _, d := range outcome.Discrepancies {
		all = append(all, d.Row)
	}

	highlight := make(map[int]struct{}, len(outcome.Discrepancies))
	for i := discrepantFrom; i < len(all); i++ {
		highlight[i] = struct{}{}
	}

	if err := e.writeDataset(f, all, highlight); err != nil {
		return nil, err
	}

	f.NewSheet(discrepancySheet)
	if err := e.writeDiscrepancies(f, outcome.Discrepancies); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteBuffer serializes a built workbook into memory so the result can be
// handed to a downstream stage without touching disk.
func (e *Exporter) WriteBuffer(f *excelize.File) (*bytes.Buffer, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func (e *Exporter) writeDataset(f *excelize.File, rows []model.CanonicalRow, highlight map[int]struct{}) error {
	for i, h := range datasetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(dataSheet, cell, h)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	f.SetRowStyle(dataSheet, 1, 1, style)

	discrepantStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9B1C1C"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FDE8E8"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []interface{}{
			r.Authorizer, r.SaleDate, r.DueDate, string(r.Kind), r.Installment,
			r.Quantity, r.Brand, r.Gross.InexactFloat64(),
			r.Net.InexactFloat64(), r.Discount.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(dataSheet, cell, v)
		}
		if _, hot := highlight[i]; hot {
			f.SetRowStyle(dataSheet, rowNum, rowNum, discrepantStyle)
		}
	}

	f.SetColWidth(dataSheet, "A", "C", 16)
	f.SetColWidth(dataSheet, "D", "G", 14)
	f.SetColWidth(dataSheet, "H", "J", 12)
	return nil
}

func (e *Exporter) writeDiscrepancies(f *excelize.File, discrepancies []model.Discrepancy) error {
	for i, h := range discrepancyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(discrepancySheet, cell, h)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	f.SetRowStyle(discrepancySheet, 1, 1, style)

	for i, d := range discrepancies {
		rowNum := i + 2
		values := []interface{}{
			d.Row.Authorizer, d.Row.SaleDate, d.Row.Brand, string(d.Row.Kind),
			d.Row.Installment, d.Row.Gross.InexactFloat64(),
			strings.Join(d.Issues, "; "),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(discrepancySheet, cell, v)
		}
	}

	f.SetColWidth(discrepancySheet, "A", "F", 14)
	f.SetColWidth(discrepancySheet, "G", "G", 60)
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
