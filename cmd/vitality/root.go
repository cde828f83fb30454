// ABOUTME: Root Cobra command for vitality CLI.
// ABOUTME: Opens storage, runs legacy migration, and builds the hub per invocation.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitality/internal/config"
	"github.com/harperreed/vitality/internal/hub"
	"github.com/harperreed/vitality/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbPath string

	cfg      *config.Config
	repo     *storage.DB
	scoreHub *hub.Hub
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vitality",
	Short: "Baseline-relative recovery and sleep scoring",
	Long: `Vitality scores your recovery and sleep against your own rolling baselines.

HOW IT WORKS:

  Each biomarker (HRV, resting heart rate, respiratory rate, sleep stages,
  bed/wake times) gets a personal 60-day baseline computed from your own
  history. Today's readings are normalized against those baselines into
  weighted sub-scores, which combine into two 0-100 composite scores:

  Recovery   HRV (50), resting HR (25), sleep (15), strain (10)
  Sleep      duration (30), efficiency (20), deep (15), REM (15),
             quality (10), timing (10)

QUICK START:

  $ vitality add 2025-06-01 --hrv 48 --rhr 52 --sleep 7h30m   # Record a day
  $ vitality score                   # Today's recovery + sleep scores
  $ vitality score 2025-06-01 --save # Score a date and persist it
  $ vitality trends --days 14        # Biomarker trends
  $ vitality history recovery        # Persisted score history

SCORE HISTORY:

  Saved scores embed the exact baseline snapshot they were computed
  against, so any past score can be audited and reproduced.

MCP INTEGRATION:

  Run 'vitality mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "vitality": { "command": "vitality", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/vitality/vitality.db.
  A legacy scores_legacy.json export in the same directory is imported
  automatically on first run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		logger = log.New(os.Stderr)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dbPath != "" {
			repo, err = storage.Open(dbPath)
		} else {
			repo, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		// One-time legacy import; a corrupt file is logged and skipped,
		// never fatal.
		if _, err := repo.MigrateLegacyScores(cfg.GetLegacyScoresPath(), logger); err != nil {
			logger.Warn("legacy score migration failed", "err", err)
		}

		scoreHub = hub.New(repo, repo,
			hub.WithLookbackDays(cfg.GetLookbackDays()),
			hub.WithTrendDays(cfg.GetTrendDays()),
			hub.WithLogger(logger),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// parseDay parses a YYYY-MM-DD argument, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default ~/.local/share/vitality/vitality.db)")
}
