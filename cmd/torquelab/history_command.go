package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"torquelab/internal/batch"
	"torquelab/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var batchID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batches from the output ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dbPath := filepath.Join(cfg.OutputRoot, batch.LedgerFileName)
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("no ledger at %s (run torquelab first)", dbPath)
			}
			store, err := ledger.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if batchID != "" {
				return printBatchRuns(cmd, store, batchID)
			}
			return printBatches(cmd, store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of batches to list")
	cmd.Flags().StringVar(&batchID, "batch", "", "Show per-run outcomes for one batch ID")
	return cmd
}

func printBatches(cmd *cobra.Command, store *ledger.Store, limit int) error {
	batches, err := store.RecentBatches(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded batches.")
		return nil
	}

	headers := []string{"Batch", "Started", "Processed", "Skipped", "Input root"}
	rows := make([][]string, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, []string{
			b.ID,
			b.StartedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", b.RunsProcessed),
			fmt.Sprintf("%d", b.RunsSkipped),
			b.InputRoot,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderPlain(headers, rows))
	}
	return nil
}

func printBatchRuns(cmd *cobra.Command, store *ledger.Store, batchID string) error {
	runs, err := store.BatchRuns(cmd.Context(), batchID)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded for batch %s.\n", batchID)
		return nil
	}

	headers := []string{"Pilot", "File", "Status", "Median N·m", "Max N·m", "Error"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.Pilot,
			run.File,
			run.Status,
			formatTorque(run.TorqueMedianNm),
			formatTorque(run.TorqueMaxNm),
			run.Error,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderPlain(headers, rows))
	}
	return nil
}
