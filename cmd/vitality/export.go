// ABOUTME: CLI commands for exporting and importing vitality data.
// ABOUTME: Supports JSON and YAML export of raw metrics and score history.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/vitality/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export vitality data",
	Long: `Export raw metric days and persisted scores.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)

EXAMPLES:

  vitality export json                 # Export all data as JSON
  vitality export json -o backup.json  # Save to file
  vitality export yaml                 # Export as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		export, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to gather data: %w", err)
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = export.ToJSON()
		case "yaml":
			data, err = export.ToYAML()
		default:
			return fmt.Errorf("unknown format: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to serialize: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportOutput, err)
			}
			color.Green("Exported to %s", exportOutput)
			return nil
		}

		fmt.Print(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a vitality JSON export",
	Long: `Import raw metric days and persisted scores from a JSON export.

Existing rows for the same days are replaced.

EXAMPLES:

  vitality import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		export, err := storage.ParseExport(data)
		if err != nil {
			return fmt.Errorf("failed to parse export: %w", err)
		}

		if err := repo.ImportData(export); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("Imported %d metric days and %d scores",
			len(export.Metrics), len(export.Scores))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
