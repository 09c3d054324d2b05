package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ta/config"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage indicator configuration files.

Examples:
  ta config init -o ta.yaml
  ta config validate -f ta.yaml`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "ta.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("--file (or --config) is required")
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Configuration valid: %s\n", path)
			fmt.Fprintf(w, "  Indicators: %s\n", strings.Join(enabled(cfg.Indicators), ", "))
			fmt.Fprintf(w, "  Output: %s\n", cfg.Output.Format)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func enabled(ind config.Indicators) []string {
	var out []string
	if ind.MovingAverage != nil {
		out = append(out, "moving_average")
	}
	if ind.RSI != nil {
		out = append(out, "rsi")
	}
	if ind.MACD != nil {
		out = append(out, "macd")
	}
	if ind.Bollinger != nil {
		out = append(out, "bollinger")
	}
	if ind.Volume != nil {
		out = append(out, "volume")
	}
	if ind.Volatility != nil {
		out = append(out, "volatility")
	}
	return out
}
