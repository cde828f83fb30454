// ABOUTME: CLI commands for the persisted score history.
// ABOUTME: Lists date ranges and deletes individual (date, type) rows.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitality/internal/models"
	"github.com/spf13/cobra"
)

var (
	historyStart string
	historyEnd   string
)

var historyCmd = &cobra.Command{
	Use:     "history <type>",
	Aliases: []string{"h"},
	Short:   "List persisted scores",
	Long: `List persisted scores of one type, ascending by date.

Each row shows the final score and when it was calculated. The stored row
embeds the exact baseline snapshot the score was computed against.

EXAMPLES:

  vitality history recovery                 # Last 30 days of recovery scores
  vitality history sleep --start 2025-01-01 --end 2025-03-31`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"recovery", "sleep"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidScoreType(args[0]) {
			return fmt.Errorf("unknown score type: %s (want recovery or sleep)", args[0])
		}
		scoreType := models.ScoreType(args[0])

		end, err := parseDay(historyEnd)
		if err != nil {
			return err
		}
		start := end.AddDate(0, 0, -29)
		if historyStart != "" {
			start, err = parseDay(historyStart)
			if err != nil {
				return err
			}
		}

		scores, err := repo.GetScoreRange(start, end, scoreType)
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}
		if len(scores) == 0 {
			fmt.Println("No persisted scores in range.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range scores {
			fmt.Printf("%s %s %s\n",
				s.Date.Format("2006-01-02"),
				scoreColor(s.FinalScore).Sprintf("%3d", s.FinalScore),
				faint.Sprintf("calculated %s", s.CalculatedAt.Format("2006-01-02 15:04")))
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <type> <date>",
	Short: "Delete a persisted score",
	Long: `Delete one persisted score by type and date.

EXAMPLES:

  vitality history delete recovery 2025-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidScoreType(args[0]) {
			return fmt.Errorf("unknown score type: %s (want recovery or sleep)", args[0])
		}
		date, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[1])
		}

		if err := repo.DeleteScore(date, models.ScoreType(args[0])); err != nil {
			return fmt.Errorf("failed to delete score: %w", err)
		}
		color.Green("Deleted %s score for %s", args[0], args[1])
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyStart, "start", "", "range start (YYYY-MM-DD, default 30 days before end)")
	historyCmd.Flags().StringVar(&historyEnd, "end", "", "range end (YYYY-MM-DD, default today)")
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
