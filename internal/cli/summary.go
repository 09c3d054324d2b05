package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ta/pipeline"
	"github.com/rustyeddy/ta/series"
)

func newSummaryCmd(rc *RootConfig) *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print descriptive statistics of every indicator column",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}
			if err := in.apply(cfg); err != nil {
				return err
			}

			out, err := compute(rc, cfg)
			if err != nil {
				return err
			}
			sums := pipeline.Summarize(out)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sums)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
			for _, s := range sums {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
					s.Column, s.Count,
					num(s.Mean), num(s.Std), num(s.Min), num(s.Q25),
					num(s.Median), num(s.Q75), num(s.Max))
			}
			return tw.Flush()
		},
	}

	in.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func num(v float64) string {
	if series.IsMissing(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}
