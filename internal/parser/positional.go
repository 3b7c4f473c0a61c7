package parser

import (
	"github.com/shopspring/decimal"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

// positionalColumn one entry of the positional layout: logical meaning bound
// to a fixed column index. The export's header row is synthetic, so position
// is the only reliable key.
type positionalColumn struct {
	Field LogicalField
	Index int
}

// positionalLayoutV1 column order of the card export: kind, entry date,
// brand, authorizer, detail, amount, installment, due date, client name.
var positionalLayoutV1 = []positionalColumn{
	{"kind", 0},
	{"entry_date", 1},
	{"brand", 2},
	{"authorizer", 3},
	{"detail", 4},
	{"amount", 5},
	{"installment", 6},
	{"due_date", 7},
	{"client", 8},
}

// MapPositional converts raw card-export rows into canonical rows. All
// parse failures are recovered locally with logged defaults; a row is only
// dropped when it has no authorizer at all.
func MapPositional(table *model.RawTable, log *runlog.Log) []model.CanonicalRow {
	idx := make(map[LogicalField]int, len(positionalLayoutV1))
	for _, col := range positionalLayoutV1 {
		idx[col.Field] = col.Index
	}

	out := make([]model.CanonicalRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		authorizer := normalize.Text(table.Cell(row, idx["authorizer"]))
		if authorizer == "" {
			continue
		}

		saleDate, ok := normalize.Date(table.Cell(row, idx["entry_date"]))
		if !ok {
			log.Warnf("positional", "saleDate", table.Cell(row, idx["entry_date"]), "unparsable sale date kept as-is")
		}
		dueDate, ok := normalize.Date(table.Cell(row, idx["due_date"]))
		if !ok {
			log.Warnf("positional", "dueDate", table.Cell(row, idx["due_date"]), "unparsable due date kept as-is")
			dueDate = ""
		}
		gross, ok := normalize.Money(table.Cell(row, idx["amount"]))
		if !ok {
			log.Warnf("positional", "gross", table.Cell(row, idx["amount"]), "unparsable amount defaulted to 0")
		}
		installment, ok := normalize.Installment(table.Cell(row, idx["installment"]))
		if !ok {
			log.Warnf("positional", "installment", table.Cell(row, idx["installment"]), "installment defaulted")
		}

		out = append(out, model.CanonicalRow{
			Authorizer:  authorizer,
			SaleDate:    saleDate,
			DueDate:     dueDate,
			Kind:        ClassifyKind(table.Cell(row, idx["kind"])),
			Installment: installment,
			Quantity:    1,
			Brand:       normalize.Text(table.Cell(row, idx["brand"])),
			Gross:       gross,
			Net:         decimal.Zero,
			Discount:    decimal.Zero,
		})
	}

	return out
}
