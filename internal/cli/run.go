package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ta/config"
	"github.com/rustyeddy/ta/export"
	"github.com/rustyeddy/ta/pipeline"
	"github.com/rustyeddy/ta/pkg/id"
	"github.com/rustyeddy/ta/series"
)

// inputFlags override the input section of the loaded configuration.
type inputFlags struct {
	path   string
	price  string
	volume string
}

func (in *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.path, "input", "i", "", "CSV price table (overrides input.path)")
	cmd.Flags().StringVar(&in.price, "price-column", "", "Price column (overrides input.price_column)")
	cmd.Flags().StringVar(&in.volume, "volume-column", "", "Volume column (overrides input.volume_column)")
}

func (in *inputFlags) apply(cfg *config.Config) error {
	if in.path != "" {
		cfg.Input.Path = in.path
	}
	if in.price != "" {
		cfg.Input.PriceColumn = in.price
	}
	if in.volume != "" {
		cfg.Input.VolumeColumn = in.volume
	}
	if cfg.Input.Path == "" {
		return fmt.Errorf("--input is required (or set input.path)")
	}
	return nil
}

// compute loads the input table and runs the configured indicators over it.
func compute(rc *RootConfig, cfg *config.Config) (*series.Frame, error) {
	log := rc.Logger()

	frame, err := series.LoadCSV(cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded input", "path", cfg.Input.Path, "rows", frame.Len(), "columns", frame.Names())

	p, err := pipeline.New(cfg.Indicators,
		pipeline.WithLogger(log),
		pipeline.WithColumns(cfg.Input.PriceColumn, cfg.Input.VolumeColumn),
	)
	if err != nil {
		return nil, err
	}
	return p.Run(frame)
}

func newRunCmd(rc *RootConfig) *cobra.Command {
	var (
		in     inputFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute indicators and write the output table",
		Long: `Load a CSV price table, compute every configured indicator and write
the result as CSV (stdout when no --output is given) or into SQLite.

Examples:
  ta run -i prices.csv
  ta run --config ta.yaml -i prices.csv --format sqlite -o runs.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}
			if err := in.apply(cfg); err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = format
			}
			if output != "" {
				cfg.Output.Path = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out, err := compute(rc, cfg)
			if err != nil {
				return err
			}

			var w export.Writer
			switch {
			case cfg.Output.Format == "sqlite":
				w, err = export.NewSQLite(cfg.Output.Path)
			case cfg.Output.Path == "" || cfg.Output.Path == "-":
				w = export.NewCSVWriter(cmd.OutOrStdout())
			default:
				w, err = export.NewCSV(cfg.Output.Path)
			}
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			run := export.Run{ID: id.At(now), Source: cfg.Input.Path, Created: now}
			if err := w.Write(context.Background(), run, out); err != nil {
				w.Close()
				return fmt.Errorf("write output: %w", err)
			}
			if err := w.Close(); err != nil {
				return err
			}

			rc.Logger().Info("run complete",
				"run_id", run.ID,
				"rows", out.Len(),
				"columns", len(out.Names()),
				"format", cfg.Output.Format,
			)
			return nil
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "", "Output format: csv|sqlite (overrides output.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (overrides output.path)")
	return cmd
}
