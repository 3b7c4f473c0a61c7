package recon

import (
	"errors"
	"time"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/parser"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
)

// RunOptions per-run knobs. The date range only applies when both bounds
// are set.
type RunOptions struct {
	StartDate time.Time
	EndDate   time.Time
	DateField DateField
}

func (o RunOptions) rangeSet() bool {
	return !o.StartDate.IsZero() && !o.EndDate.IsZero()
}

func (o RunOptions) field() DateField {
	if o.DateField == "" {
		return BySaleDate
	}
	return o.DateField
}

// ConversionReport result of a conversion-only run.
type ConversionReport struct {
	Rows     []model.CanonicalRow `json:"rows"`
	Warnings []runlog.Warning     `json:"warnings"`
}

// RunReport result of a full reconciliation run.
type RunReport struct {
	Outcome        model.MatchOutcome    `json:"outcome"`
	Structure      model.StructureReport `json:"structure"`
	PrimaryCount   int                   `json:"primaryCount"`
	SecondaryCount int                   `json:"secondaryCount"`
	Warnings       []runlog.Warning      `json:"warnings"`
}

// ErrMissingTable a required input table was absent at the pipeline boundary.
var ErrMissingTable = errors.New("missing required input table")

// Convert maps a positional card export into canonical rows, applying the
// optional date-range filter. This is the first half of the pipeline on its
// own, matching the standalone conversion run.
func Convert(table *model.RawTable, opts RunOptions, log *runlog.Log) (*ConversionReport, error) {
	if table == nil {
		return nil, ErrMissingTable
	}

	rows := parser.MapPositional(table, log)
	if opts.rangeSet() {
		rows = FilterByDateRange(rows, opts.StartDate, opts.EndDate, opts.field())
	}

	return &ConversionReport{Rows: rows, Warnings: log.Warnings()}, nil
}

// Run executes the whole pipeline: map both sources, filter the primary set,
// reconcile, and collect diagnostics. Structure validation of the bank
// report is advisory and never aborts the run.
func Run(primary, secondary *model.RawTable, opts RunOptions, log *runlog.Log) (*RunReport, error) {
	if primary == nil || secondary == nil {
		return nil, ErrMissingTable
	}

	structure := parser.ValidateStructure(secondary.Headers)
	if !structure.IsValid {
		log.Infof("validate", "bank report is missing expected columns, proceeding best-effort")
	}

	primaryRows := parser.MapPositional(primary, log)
	if opts.rangeSet() {
		primaryRows = FilterByDateRange(primaryRows, opts.StartDate, opts.EndDate, opts.field())
	}
	secondaryRows := parser.MapReport(secondary, log)

	outcome, err := Reconcile(primaryRows, secondaryRows, log)
	if err != nil {
		return nil, err
	}

	return &RunReport{
		Outcome:        outcome,
		Structure:      structure,
		PrimaryCount:   len(primaryRows),
		SecondaryCount: len(secondaryRows),
		Warnings:       log.Warnings(),
	}, nil
}

// RunCanonical reconciles two already-canonical row sets, e.g. a stored
// reference snapshot against a freshly mapped bank report.
func RunCanonical(primary, secondary []model.CanonicalRow, opts RunOptions, log *runlog.Log) (*RunReport, error) {
	if opts.rangeSet() {
		primary = FilterByDateRange(primary, opts.StartDate, opts.EndDate, opts.field())
	}

	outcome, err := Reconcile(primary, secondary, log)
	if err != nil {
		return nil, err
	}

	return &RunReport{
		Outcome:        outcome,
		Structure:      model.StructureReport{IsValid: true, MissingFields: []string{}},
		PrimaryCount:   len(primary),
		SecondaryCount: len(secondary),
		Warnings:       log.Warnings(),
	}, nil
}
