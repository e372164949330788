package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"torquelab/internal/summary"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the per-run summary from the last batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.OutputRoot, summary.FileName)
			records, err := summary.Read(path)
			if err != nil {
				return fmt.Errorf("no summary available (run torquelab first): %w", err)
			}
			printSummaryRecords(cmd, records)
			return nil
		},
	}
}

var summaryHeaders = []string{"Pilot", "File", "Output CSV", "Median N·m", "Max N·m"}

func printSummaryRecords(cmd *cobra.Command, records []summary.Record) {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No processed runs.")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Pilot,
			record.File,
			record.OutCSV,
			formatTorque(record.TorqueMedianNm),
			formatTorque(record.TorqueMaxNm),
		})
	}

	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(summaryHeaders, rows, aligns))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderPlain(summaryHeaders, rows))
	}
}
