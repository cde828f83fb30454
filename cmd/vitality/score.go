// ABOUTME: CLI command for computing recovery and sleep scores.
// ABOUTME: Prints the weighted component breakdown; --save persists the result.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitality/internal/models"
	"github.com/spf13/cobra"
)

var (
	scoreSave    bool
	scoreType    string
	scoreRefresh bool
)

var scoreCmd = &cobra.Command{
	Use:     "score [date]",
	Aliases: []string{"s"},
	Short:   "Compute recovery and sleep scores",
	Long: `Compute the recovery and sleep scores for a date (default today).

Each score shows its weighted component breakdown. Scores are computed
against your personal rolling baselines; a date with no recorded data
shows as "no data" rather than a zero score.

EXAMPLES:

  vitality score                      # Today's scores
  vitality score 2025-06-01           # Scores for a specific day
  vitality score --type sleep         # Sleep score only
  vitality score --refresh            # Recompute, ignoring the cache
  vitality score 2025-06-01 --save    # Persist with baseline snapshot`,
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
		if scoreType != "" && !models.IsValidScoreType(scoreType) {
			return fmt.Errorf("unknown score type: %s (want recovery or sleep)", scoreType)
		}

		scoreHub.SetDisplayedDate(date)
		var entry *models.CacheEntry
		if scoreRefresh {
			entry, err = scoreHub.Refresh(cmd.Context())
		} else {
			entry, err = scoreHub.LoadData(cmd.Context(), date)
		}
		if err != nil {
			return fmt.Errorf("failed to compute scores: %w", err)
		}

		if scoreType == "" || scoreType == string(models.ScoreTypeRecovery) {
			printScore("Recovery", entry.Recovery)
		}
		if scoreType == "" || scoreType == string(models.ScoreTypeSleep) {
			printScore("Sleep", entry.Sleep)
		}

		if scoreSave {
			if entry.Recovery == nil && entry.Sleep == nil {
				return fmt.Errorf("nothing to save: no data for %s", models.DayKey(date))
			}
			if err := scoreHub.SaveScores(entry); err != nil {
				return fmt.Errorf("failed to save scores: %w", err)
			}
			color.Green("Saved scores for %s", models.DayKey(date))
		}

		return nil
	},
}

// printScore renders one composite score with its breakdown.
func printScore(label string, result *models.CompositeScoreResult) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if result == nil {
		bold.Printf("%s: ", label)
		faint.Println("no data")
		return
	}

	bold.Printf("%s: %s\n", label, scoreColor(result.FinalScore).Sprintf("%d/100", result.FinalScore))
	for _, c := range result.Components {
		raw := ""
		if c.RawValue != nil {
			raw = faint.Sprintf(" (%.1f)", *c.RawValue)
		}
		fmt.Printf("  %s %5.1f/%-4.0f%s\n",
			padRight(c.Name, 12), c.Points(), c.MaxPoints, raw)
	}
	fmt.Println()
}

// scoreColor picks green/yellow/red for a 0-100 score.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 70:
		return color.New(color.FgGreen)
	case score >= 40:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "persist the scores with their baseline snapshot")
	scoreCmd.Flags().BoolVar(&scoreRefresh, "refresh", false, "evict the cached entry and recompute")
	scoreCmd.Flags().StringVarP(&scoreType, "type", "t", "", "score type: recovery or sleep (default both)")
	rootCmd.AddCommand(scoreCmd)
}
