package parser

import (
	"strings"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

// placeholder authorization codes marking non-transactional report lines.
var placeholderAuthorizers = map[string]struct{}{
	"": {}, "-": {}, "--": {}, "0": {}, "N/A": {},
}

// openingBalanceMarkers entry-type labels for balance carry lines.
var openingBalanceMarkers = []string{"SALDO", "ANTECIPACAO", "ANTECIPAÇÃO", "AJUSTE"}

// MapReport converts bank settlement report rows into canonical rows.
// Columns are resolved by fuzzy-matched named headers; rows whose
// authorization code is a placeholder, whose entry type marks an
// opening-balance line, or whose sale amount is non-positive are skipped as
// non-transactional. The entry date, when present, takes priority over the
// sale date.
func MapReport(table *model.RawTable, log *runlog.Log) []model.CanonicalRow {
	cols := ResolveColumns(table.Headers)

	cell := func(row []string, field LogicalField) (string, bool) {
		idx, ok := cols[field]
		if !ok {
			return "", false
		}
		return table.Cell(row, idx), true
	}

	out := make([]model.CanonicalRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rawAuth, _ := cell(row, FieldAuthorizer)
		authorizer := normalize.Text(rawAuth)
		if _, placeholder := placeholderAuthorizers[authorizer]; placeholder {
			continue
		}

		if entryType, ok := cell(row, FieldEntryType); ok && isOpeningBalance(entryType) {
			continue
		}

		// Unparsable amounts default to 0, so this also drops them.
		gross, _ := normalize.Money(mustCell(cell, row, FieldGross))
		if gross.Sign() <= 0 {
			continue
		}

		saleDate := resolveSaleDate(cell, row, log)
		dueDate, ok := normalize.Date(mustCell(cell, row, FieldDueDate))
		if !ok {
			log.Warnf("report", "dueDate", mustCell(cell, row, FieldDueDate), "unparsable due date kept as-is")
			dueDate = ""
		}

		installment, ok := normalize.Installment(mustCell(cell, row, FieldInstallment))
		if !ok {
			log.Warnf("report", "installment", mustCell(cell, row, FieldInstallment), "installment defaulted")
		}

		net, ok := normalize.Money(mustCell(cell, row, FieldNet))
		if !ok {
			log.Warnf("report", "net", mustCell(cell, row, FieldNet), "unparsable net amount defaulted to 0")
		}
		discount, ok := normalize.Money(mustCell(cell, row, FieldDiscount))
		if !ok {
			log.Warnf("report", "discount", mustCell(cell, row, FieldDiscount), "unparsable discount defaulted to 0")
		}

		brand, kind := SplitBrandKind(mustCell(cell, row, FieldBrandKind))

		out = append(out, model.CanonicalRow{
			Authorizer:  authorizer,
			SaleDate:    saleDate,
			DueDate:     dueDate,
			Kind:        kind,
			Installment: installment,
			Quantity:    1,
			Brand:       brand,
			Gross:       gross,
			Net:         net,
			Discount:    discount,
		})
	}

	return out
}

type cellFn func(row []string, field LogicalField) (string, bool)

func mustCell(cell cellFn, row []string, field LogicalField) string {
	v, _ := cell(row, field)
	return v
}

// resolveSaleDate picks the best available date source: a non-empty entry
// date wins over the sale date.
func resolveSaleDate(cell cellFn, row []string, log *runlog.Log) string {
	if raw, ok := cell(row, FieldEntryDate); ok && strings.TrimSpace(raw) != "" {
		if value, parsed := normalize.Date(raw); parsed {
			return value
		}
		log.Warnf("report", "entryDate", raw, "unparsable entry date, falling back to sale date")
	}

	raw := mustCell(cell, row, FieldSaleDate)
	value, parsed := normalize.Date(raw)
	if !parsed {
		log.Warnf("report", "saleDate", raw, "unparsable sale date kept as-is")
	}
	return value
}

func isOpeningBalance(entryType string) bool {
	text := normalize.Text(entryType)
	for _, marker := range openingBalanceMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
