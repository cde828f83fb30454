// ABOUTME: CLI command for biomarker trend series.
// ABOUTME: Prints per-biomarker values with percentage change over the window.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/trend"
	"github.com/spf13/cobra"
)

var (
	trendsDays      int
	trendsBiomarker string
)

var trendsCmd = &cobra.Command{
	Use:     "trends [date]",
	Aliases: []string{"t"},
	Short:   "Show biomarker trends",
	Long: `Show per-biomarker value series ending on a date (default today).

Each series runs oldest to newest with one value per day; days with no
reading show as 0. The change column compares the newest value against
the oldest; it is blank when the window starts at zero (no trend).

EXAMPLES:

  vitality trends                 # Last 7 days, all biomarkers
  vitality trends --days 30       # Wider window
  vitality trends -b hrv          # One biomarker`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateArg := ""
		if len(args) > 0 {
			dateArg = args[0]
		}
		date, err := parseDay(dateArg)
		if err != nil {
			return err
		}

		agg := trend.NewAggregator(repo)

		if trendsBiomarker != "" {
			if !models.IsValidBiomarker(trendsBiomarker) {
				return fmt.Errorf("unknown biomarker: %s", trendsBiomarker)
			}
			series, err := agg.Series(cmd.Context(), models.Biomarker(trendsBiomarker), date, trendsDays)
			if err != nil {
				return fmt.Errorf("failed to compute trend: %w", err)
			}
			printSeries(series)
			return nil
		}

		trends, err := agg.Trends(cmd.Context(), date, trendsDays)
		if err != nil {
			return fmt.Errorf("failed to compute trends: %w", err)
		}

		for _, b := range models.TrendBiomarkers {
			printSeries(trends[b])
		}
		return nil
	},
}

// printSeries renders one biomarker's series on a single line.
func printSeries(s models.TrendSeries) {
	faint := color.New(color.Faint)

	var values []string
	for _, p := range s.Values {
		values = append(values, fmt.Sprintf("%.1f", p.Value))
	}

	change := faint.Sprint("  --")
	if s.PercentChange != nil {
		c := color.New(color.FgGreen)
		if *s.PercentChange < 0 {
			c = color.New(color.FgRed)
		}
		change = c.Sprintf("%+.1f%%", *s.PercentChange)
	}

	fmt.Printf("%s %s %s %s\n",
		padRight(string(s.Biomarker), 18),
		faint.Sprint(padRight(s.Unit, 5)),
		strings.Join(values, " "),
		change)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	trendsCmd.Flags().IntVarP(&trendsDays, "days", "d", 7, "window length in days")
	trendsCmd.Flags().StringVarP(&trendsBiomarker, "biomarker", "b", "", "show a single biomarker")
	rootCmd.AddCommand(trendsCmd)
}
