package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"torquelab/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := ctx.result.Path
			if !ctx.result.Exists {
				source += " (not found, using defaults)"
			} else if ctx.result.LoadErr != nil {
				source += " (unusable, using defaults)"
			}
			fmt.Fprintf(out, "Config file:          %s\n", source)
			fmt.Fprintf(out, "input_root:           %s\n", cfg.InputRoot)
			fmt.Fprintf(out, "output_root:          %s\n", cfg.OutputRoot)
			fmt.Fprintf(out, "gear3_teeth:          %d\n", cfg.Gear3Teeth)
			fmt.Fprintf(out, "gear4_teeth:          %d\n", cfg.Gear4Teeth)
			fmt.Fprintf(out, "wheel2_radius_inches: %.3f (%.4f m)\n", cfg.Wheel2RadiusInches, cfg.Wheel2RadiusMeters())
			fmt.Fprintf(out, "logging:              %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}
