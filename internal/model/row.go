package model

import "github.com/shopspring/decimal"

// Kind settlement entry kind.
type Kind string

const (
	KindDebit   Kind = "DEBIT"
	KindCredit  Kind = "CREDIT"
	KindUnknown Kind = "UNKNOWN"
)

// CanonicalRow the unified record shape both sources are mapped into before
// matching. Dates are canonical DD/MM/YYYY strings (empty
// when the source had nothing usable), money fields are non-negative decimals
// with two-decimal semantics.
type CanonicalRow struct {
	Authorizer  string          `json:"authorizer"`
	SaleDate    string          `json:"saleDate"`
	DueDate     string          `json:"dueDate"`
	Kind        Kind            `json:"kind"`
	Installment int             `json:"installment"`
	Quantity    int             `json:"quantity"`
	Brand       string          `json:"brand"`
	Gross       decimal.Decimal `json:"gross"`
	Net         decimal.Decimal `json:"net"`
	Discount    decimal.Decimal `json:"discount"`
}

// Discrepancy a primary row that failed to find a qualifying match, annotated
// with human-readable reasons. Issues is deduplicated and never empty.
type Discrepancy struct {
	Row    CanonicalRow `json:"row"`
	Issues []string     `json:"issues"`
}

// MatchOutcome result partition of one reconciliation run.
type MatchOutcome struct {
	Matched       []CanonicalRow `json:"matched"`
	Discrepancies []Discrepancy  `json:"discrepancies"`
}

// RawTable one resolved sheet: the effective header row plus every data row
// below it, exactly as read from the workbook. Positional sources address
// cells by index; named sources go through column resolution first.
type RawTable struct {
	SheetName string
	Headers   []string
	Rows      [][]string
}

// Cell bounds-checked cell access; short rows read as empty.
func (t *RawTable) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// StructureReport advisory result of validating a named-source header row.
// It never blocks the pipeline.
type StructureReport struct {
	IsValid       bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
}
