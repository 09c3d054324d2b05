package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ta/export"
	"github.com/rustyeddy/ta/indicators"
	"github.com/rustyeddy/ta/pipeline"
	"github.com/rustyeddy/ta/series"
)

func parseBound(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t2, err2 := time.Parse("2006-01-02", s)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("bad --%s: %w", flag, err)
		}
		t = t2
	}
	return t, nil
}

func newStreamCmd(rc *RootConfig) *cobra.Command {
	var (
		in      inputFlags
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Compute indicators row by row and print each row as it is produced",
		Long: `Read the input one row at a time and push it through the indicators
incrementally. Output matches "ta run" for the same rows.

Example:
  ta stream -i prices.csv --from 2024-01-01 --to 2024-07-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}
			if err := in.apply(cfg); err != nil {
				return err
			}
			from, err := parseBound("from", fromStr)
			if err != nil {
				return err
			}
			to, err := parseBound("to", toStr)
			if err != nil {
				return err
			}
			if !from.IsZero() && !to.IsZero() && !from.Before(to) {
				return fmt.Errorf("--from must be before --to")
			}

			log := rc.Logger()
			p, err := pipeline.New(cfg.Indicators,
				pipeline.WithLogger(log),
				pipeline.WithColumns(cfg.Input.PriceColumn, cfg.Input.VolumeColumn),
			)
			if err != nil {
				return err
			}

			priceNames, volumeName := p.InputColumns()
			feed, err := series.OpenFeed(cfg.Input.Path, series.FeedOptions{
				Price:  priceNames,
				Volume: []string{volumeName},
				From:   from,
				To:     to,
			})
			if err != nil {
				return err
			}
			defer feed.Close()

			price, volume := feed.Columns()
			if price == "" && p.Inputs().Has(indicators.InputPrice) {
				return &pipeline.ColumnError{Column: priceNames[0], Indicator: "price indicators"}
			}
			if volume == "" && p.Inputs().Has(indicators.InputVolume) {
				return &pipeline.ColumnError{Column: volumeName, Indicator: "volume indicators"}
			}

			w := export.NewCSVWriter(cmd.OutOrStdout())
			if err := w.WriteHeader(p.Columns()); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}

			s := p.NewStream()
			n := 0
			for {
				o, ok, err := feed.Next()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				row, err := s.Push(o)
				if err != nil {
					return err
				}
				if err := w.WriteRow(row.Time, row.Values); err != nil {
					return err
				}
				if err := w.Flush(); err != nil {
					return err
				}
				n++
			}

			log.Debug("stream complete", "rows", n, "price", price, "volume", volume)
			return nil
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVar(&fromStr, "from", "", "Skip rows before this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Skip rows at or after this time")
	return cmd
}
