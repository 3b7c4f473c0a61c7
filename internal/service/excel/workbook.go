package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/parser"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

// headerScanLimit how many leading rows of a detailed report are scanned for
// the effective header row.
const headerScanLimit = 10

// SheetNotFoundError a requested sheet is absent from the workbook. The
// message lists every available sheet so the caller can see what was there.
type SheetNotFoundError struct {
	Requested string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found; available sheets: %s",
		e.Requested, strings.Join(e.Available, ", "))
}

// LoadWorkbook opens a workbook from a reader.
func LoadWorkbook(r io.Reader) (*excelize.File, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return wb, nil
}

// ResolveSheet selects one sheet. An empty target selects the first sheet;
// otherwise the target is matched case- and whitespace-insensitively, and a
// miss is a fatal SheetNotFoundError.
func ResolveSheet(wb *excelize.File, target string) (string, error) {
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return sheets[0], nil
	}

	want := strings.ToLower(target)
	for _, name := range sheets {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return name, nil
		}
	}

	return "", &SheetNotFoundError{Requested: target, Available: sheets}
}

// ReadTable reads one sheet into a raw table. In detailed mode the header is
// not assumed to be the first row: the leading rows are scanned for one
// carrying known header keywords, and everything above it is discarded; with
// no hit the first row is used best-effort and the fallback is logged.
func ReadTable(wb *excelize.File, sheet string, detailed bool, log *runlog.Log) (*model.RawTable, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headerIdx := 0
	if detailed {
		headerIdx = -1
		limit := headerScanLimit
		if limit > len(rows) {
			limit = len(rows)
		}
		for i := 0; i < limit; i++ {
			if parser.LooksLikeReportHeader(rows[i]) {
				headerIdx = i
				break
			}
		}
		if headerIdx < 0 {
			headerIdx = 0
			log.Warnf("resolve", "header", sheet, "no header row recognized in leading rows, using the first row")
		}
	}

	return &model.RawTable{
		SheetName: sheet,
		Headers:   rows[headerIdx],
		Rows:      rows[headerIdx+1:],
	}, nil
}

// ReadSource is the one-call read path: open, resolve the sheet, read the
// table.
func ReadSource(r io.Reader, targetSheet string, detailed bool, log *runlog.Log) (*model.RawTable, error) {
	wb, err := LoadWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := ResolveSheet(wb, targetSheet)
	if err != nil {
		return nil, err
	}

	return ReadTable(wb, sheet, detailed, log)
}
