package recon

import (
	"time"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
)

// DateField which canonical date a range filter applies to.
type DateField string

const (
	BySaleDate DateField = "saleDate"
	ByDueDate  DateField = "dueDate"
)

// FilterByDateRange keeps rows whose target date falls inside [start, end],
// both bounds inclusive with end extended to its whole calendar day. Rows
// with an empty or unparsable target date are excluded. Comparison is done
// on calendar components (every date is anchored at midday) so format and
// timezone quirks cannot shift a row across a day boundary.
func FilterByDateRange(rows []model.CanonicalRow, start, end time.Time, field DateField) []model.CanonicalRow {
	startMid := midday(start)
	endMid := midday(end)

	out := make([]model.CanonicalRow, 0, len(rows))
	for _, row := range rows {
		target := row.SaleDate
		if field == ByDueDate {
			target = row.DueDate
		}

		t, ok := normalize.DateTime(target)
		if !ok {
			continue
		}
		if t.Before(startMid) || t.After(endMid) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func midday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}
