package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
)

var (
	reconcilePrimary   string
	reconcileSecondary string
	reconcileSheet     string
	reconcileOut       string
	reconcileStart     string
	reconcileEnd       string
	reconcileDateField string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a card export against a bank settlement report",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		log := runlog.FromLogger(logger)

		opts, err := buildRunOptions(reconcileStart, reconcileEnd, reconcileDateField)
		if err != nil {
			return err
		}

		primaryFile, err := os.Open(reconcilePrimary)
		if err != nil {
			return fmt.Errorf("failed to open card export: %w", err)
		}
		defer primaryFile.Close()

		secondaryFile, err := os.Open(reconcileSecondary)
		if err != nil {
			return fmt.Errorf("failed to open bank report: %w", err)
		}
		defer secondaryFile.Close()

		primary, err := excel.ReadSource(primaryFile, "", false, log)
		if err != nil {
			return err
		}
		secondary, err := excel.ReadSource(secondaryFile, reconcileSheet, true, log)
		if err != nil {
			return err
		}

		report, err := recon.Run(primary, secondary, opts, log)
		if err != nil {
			return err
		}

		wb, err := excel.NewExporter().BuildReconciliation(report.Outcome)
		if err != nil {
			return err
		}
		if err := wb.SaveAs(reconcileOut); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		if !report.Structure.IsValid {
			fmt.Printf("Warning: bank report is missing columns: %s\n",
				strings.Join(report.Structure.MissingFields, ", "))
		}
		fmt.Printf("Reconciled %d rows against %d bank records: %d matched, %d divergent\n",
			report.PrimaryCount, report.SecondaryCount,
			len(report.Outcome.Matched), len(report.Outcome.Discrepancies))
		for _, d := range report.Outcome.Discrepancies {
			fmt.Printf("  %s: %s\n", d.Row.Authorizer, strings.Join(d.Issues, "; "))
		}
		fmt.Printf("Wrote %s\n", reconcileOut)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcilePrimary, "primary", "", "card export file (.xlsx)")
	reconcileCmd.Flags().StringVar(&reconcileSecondary, "secondary", "", "bank settlement report (.xlsx)")
	reconcileCmd.Flags().StringVar(&reconcileSheet, "sheet", "", "bank report sheet name (default: first sheet)")
	reconcileCmd.Flags().StringVar(&reconcileOut, "out", "conciliacao.xlsx", "output file")
	reconcileCmd.Flags().StringVar(&reconcileStart, "start", "", "range start, dd/mm/yyyy")
	reconcileCmd.Flags().StringVar(&reconcileEnd, "end", "", "range end, dd/mm/yyyy")
	reconcileCmd.Flags().StringVar(&reconcileDateField, "date-field", "sale", "date field for the range filter: sale or due")
	reconcileCmd.MarkFlagRequired("primary")
	reconcileCmd.MarkFlagRequired("secondary")
	rootCmd.AddCommand(reconcileCmd)
}
