package recon

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

// GrossTolerance absolute tolerance for gross-amount equality.
var GrossTolerance = decimal.RequireFromString("0.01")

// ErrMissingInput one of the two row sets was absent at the core entry point.
var ErrMissingInput = errors.New("reconciliation requires both a primary and a secondary row set")

// candidate one secondary row plus its consumption flag. A settlement line
// pairs with at most one primary row.
type candidate struct {
	row  model.CanonicalRow
	used bool
}

// Reconcile pairs primary rows against the secondary set. The match key is
// normalized authorizer, sale date, brand and kind, equal installment, and
// gross within GrossTolerance; due date is deliberately not part of the key
// because the primary source rarely carries a reliable one. Matched rows are
// emitted with due date, net and discount taken from the secondary row,
// which is authoritative for settlement figures. Non-matches become
// discrepancies with a field-by-field diagnosis.
func Reconcile(primary, secondary []model.CanonicalRow, log *runlog.Log) (model.MatchOutcome, error) {
	if primary == nil || secondary == nil {
		return model.MatchOutcome{}, ErrMissingInput
	}

	// Lookup by normalized authorizer, built once; candidates keep the
	// secondary input order so matching stays deterministic.
	index := make(map[string][]*candidate, len(secondary))
	for _, row := range secondary {
		key := normalize.Text(row.Authorizer)
		index[key] = append(index[key], &candidate{row: row})
	}

	outcome := model.MatchOutcome{
		Matched:       make([]model.CanonicalRow, 0, len(primary)),
		Discrepancies: make([]model.Discrepancy, 0),
	}

	for _, row := range primary {
		candidates := index[normalize.Text(row.Authorizer)]

		if match := findMatch(row, candidates); match != nil {
			match.used = true
			merged := row
			merged.DueDate = match.row.DueDate
			merged.Net = match.row.Net
			merged.Discount = match.row.Discount
			outcome.Matched = append(outcome.Matched, merged)
			continue
		}

		outcome.Discrepancies = append(outcome.Discrepancies, model.Discrepancy{
			Row:    row,
			Issues: diagnose(row, candidates),
		})
	}

	log.Infof("reconcile", "matching finished")
	return outcome, nil
}

// findMatch returns the first unconsumed candidate agreeing on the full key.
func findMatch(row model.CanonicalRow, candidates []*candidate) *candidate {
	for _, c := range candidates {
		if c.used {
			continue
		}
		if keyEqual(row, c.row) {
			return c
		}
	}
	return nil
}

func keyEqual(a, b model.CanonicalRow) bool {
	return normalize.Text(a.SaleDate) == normalize.Text(b.SaleDate) &&
		normalize.Text(a.Brand) == normalize.Text(b.Brand) &&
		normalize.Text(string(a.Kind)) == normalize.Text(string(b.Kind)) &&
		a.Installment == b.Installment &&
		grossEqual(a.Gross, b.Gross)
}

func grossEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(GrossTolerance) <= 0
}
