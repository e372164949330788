package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"torquelab/internal/batch"
	"torquelab/internal/logging"
	"torquelab/internal/torque"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Normalize every discovered run and build summary and comparison artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, ctx)
		},
	}
}

func runProcess(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	params := torque.Params{
		Gear3Teeth:    cfg.Gear3Teeth,
		Gear4Teeth:    cfg.Gear4Teeth,
		Wheel2RadiusM: cfg.Wheel2RadiusMeters(),
	}
	logger.Info("starting batch",
		logging.Args(
			logging.Int("gear3_teeth", params.Gear3Teeth),
			logging.Int("gear4_teeth", params.Gear4Teeth),
			logging.Float64("wheel2_radius_m", params.Wheel2RadiusM),
		)...)

	processor := batch.New(cfg.InputRoot, cfg.OutputRoot, params, logger)
	result, err := processor.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d run(s), skipped %d. Summary: %s\n",
		result.Processed, result.Skipped, result.SummaryPath)
	printSummaryRecords(cmd, result.Records)
	return nil
}
