// ABOUTME: CLI command for the one-time legacy score import.
// ABOUTME: Reads a flat JSON export and loads it into the structured store.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Import a legacy flat-file score export",
	Long: `Import scores from a legacy flat-file JSON export.

The legacy format is a JSON array of {date, scoreType, score,
baselineSnapshot, calculatedAt} entries. The import runs only when the
structured store is empty; afterwards the file is renamed with a
.migrated suffix so it is never imported twice.

This also runs automatically on startup against the default location
(~/.local/share/vitality/scores_legacy.json); use this command to point
at an export somewhere else.

EXAMPLES:

  vitality migrate                     # Default legacy location
  vitality migrate old-scores.json     # Explicit export file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.GetLegacyScoresPath()
		if len(args) > 0 {
			path = args[0]
		}

		summary, err := repo.MigrateLegacyScores(path, logger)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		if summary.Imported == 0 && summary.Skipped == 0 {
			fmt.Println("Nothing to migrate (store not empty or no legacy file).")
			return nil
		}
		color.Green("Imported %d scores (%d skipped)", summary.Imported, summary.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
