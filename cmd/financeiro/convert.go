package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
)

var (
	convertIn    string
	convertOut   string
	convertStart string
	convertEnd   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a card export into the canonical dataset layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		log := runlog.FromLogger(logger)

		opts, err := buildRunOptions(convertStart, convertEnd, "")
		if err != nil {
			return err
		}

		in, err := os.Open(convertIn)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer in.Close()

		table, err := excel.ReadSource(in, "", false, log)
		if err != nil {
			return err
		}

		report, err := recon.Convert(table, opts, log)
		if err != nil {
			return err
		}

		wb, err := excel.NewExporter().BuildDataset(report.Rows)
		if err != nil {
			return err
		}
		if err := wb.SaveAs(convertOut); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Converted %d rows (%d warnings) into %s\n",
			len(report.Rows), len(report.Warnings), convertOut)
		return nil
	},
}

// buildRunOptions parses dd/mm/yyyy bounds into run options. Both bounds or
// neither.
func buildRunOptions(start, end, dateField string) (recon.RunOptions, error) {
	opts := recon.RunOptions{DateField: recon.BySaleDate}
	if dateField == "due" {
		opts.DateField = recon.ByDueDate
	}

	if start == "" && end == "" {
		return opts, nil
	}
	if start == "" || end == "" {
		return opts, fmt.Errorf("both --start and --end are required for a date filter")
	}

	startT, ok := normalize.DateTime(start)
	if !ok {
		return opts, fmt.Errorf("invalid --start date %q", start)
	}
	endT, ok := normalize.DateTime(end)
	if !ok {
		return opts, fmt.Errorf("invalid --end date %q", end)
	}

	opts.StartDate = startT
	opts.EndDate = endT
	return opts, nil
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "card export file (.xlsx)")
	convertCmd.Flags().StringVar(&convertOut, "out", "dataset.xlsx", "output file")
	convertCmd.Flags().StringVar(&convertStart, "start", "", "range start, dd/mm/yyyy")
	convertCmd.Flags().StringVar(&convertEnd, "end", "", "range end, dd/mm/yyyy")
	convertCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(convertCmd)
}
