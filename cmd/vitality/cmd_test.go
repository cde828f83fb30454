// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests parseDay, padRight, command flags, and DB-backed runs.
package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/storage"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2025-06-15", wantErr: false},
		{name: "empty defaults to today", input: "", wantErr: false},
		{name: "wrong order", input: "15-06-2025", wantErr: true},
		{name: "with time", input: "2025-06-15 08:30", wantErr: true},
		{name: "random string", input: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDay(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDay(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseDay(%q) unexpected error: %v", tt.input, err)
				return
			}
			if result.IsZero() {
				t.Errorf("parseDay(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseDayValues(t *testing.T) {
	result, err := parseDay("2025-06-15")
	if err != nil {
		t.Fatalf("parseDay failed: %v", err)
	}
	if result.Year() != 2025 || result.Month() != time.June || result.Day() != 15 {
		t.Errorf("parseDay returned wrong date: %v", result)
	}

	today, err := parseDay("")
	if err != nil {
		t.Fatalf("parseDay empty failed: %v", err)
	}
	now := time.Now()
	if today.Day() != now.Day() || today.Hour() != 0 {
		t.Errorf("parseDay(\"\") should be midnight today, got %v", today)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hrv", 6, "hrv   "},
		{"sleep_duration", 6, "sleep_duration"},
		{"", 3, "   "},
		{"abc", 3, "abc"},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("db") == nil {
		t.Error("Expected --db persistent flag")
	}
}

func TestAddCmdFlags(t *testing.T) {
	for _, name := range []string{"hrv", "rhr", "resp", "walking-hr", "spo2",
		"sleep", "in-bed", "deep", "rem", "awake", "latency", "bedtime", "wake"} {
		if addCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on add", name)
		}
	}
}

func TestScoreCmdFlags(t *testing.T) {
	if scoreCmd.Flags().Lookup("save") == nil {
		t.Error("Expected --save flag on score")
	}
	if scoreCmd.Flags().Lookup("type") == nil {
		t.Error("Expected --type flag on score")
	}
	if scoreCmd.Flags().Lookup("refresh") == nil {
		t.Error("Expected --refresh flag on score")
	}
}

func TestCommandAliases(t *testing.T) {
	aliases := map[string][]string{
		"add":     addCmd.Aliases,
		"score":   scoreCmd.Aliases,
		"trends":  trendsCmd.Aliases,
		"history": historyCmd.Aliases,
	}
	want := map[string]string{"add": "a", "score": "s", "trends": "t", "history": "h"}

	for name, got := range aliases {
		found := false
		for _, a := range got {
			if a == want[name] {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected alias %q on %s, got %v", want[name], name, got)
		}
	}
}

func TestHistoryCmdValidArgs(t *testing.T) {
	valid := historyCmd.ValidArgs
	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid args, got %v", valid)
	}
	for _, st := range []string{"recovery", "sleep"} {
		found := false
		for _, v := range valid {
			if v == st {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %q in valid args", st)
		}
	}
}

// setupTestCLI points the CLI at a temp database and isolates config.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))

	return filepath.Join(tmpDir, "vitality.db")
}

func TestAddCmdWithDB(t *testing.T) {
	testPath := setupTestCLI(t)

	rootCmd.SetArgs([]string{"--db", testPath, "add", "2025-06-15",
		"--hrv", "48", "--rhr", "52", "--sleep", "7h30m"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	db, err := storage.Open(testPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	m, err := db.FetchDailyMetrics(time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("FetchDailyMetrics failed: %v", err)
	}
	if m == nil {
		t.Fatal("Expected recorded metrics, got nil")
	}
	if m.HRV == nil || *m.HRV != 48 {
		t.Errorf("Expected HRV 48, got %v", m.HRV)
	}
	if m.SleepDuration == nil || *m.SleepDuration != 450 {
		t.Errorf("Expected sleep duration 450 minutes, got %v", m.SleepDuration)
	}
}

func TestAddCmdInvalidDate(t *testing.T) {
	testPath := setupTestCLI(t)

	rootCmd.SetArgs([]string{"--db", testPath, "add", "not-a-date"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestAddCmdInvalidBedtime(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { addBedtime = "" }()

	rootCmd.SetArgs([]string{"--db", testPath, "add", "2025-06-15", "--bedtime", "11pm"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid bedtime")
	}
}

func TestScoreCmdNoData(t *testing.T) {
	testPath := setupTestCLI(t)

	// A day with no data is reported as "no data", not an error.
	rootCmd.SetArgs([]string{"--db", testPath, "score", "2025-06-15"})
	if err := rootCmd.Execute(); err != nil {
		t.Errorf("score command on empty database failed: %v", err)
	}
}

func TestScoreCmdRefresh(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { scoreRefresh = false }()

	rootCmd.SetArgs([]string{"--db", testPath, "score", "2025-06-15", "--refresh"})
	if err := rootCmd.Execute(); err != nil {
		t.Errorf("score --refresh failed: %v", err)
	}
}

func TestScoreCmdSaveWithoutData(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { scoreSave = false }()

	rootCmd.SetArgs([]string{"--db", testPath, "score", "2025-06-15", "--save"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error saving scores for a day with no data")
	}
}

func TestScoreCmdRejectsUnknownType(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { scoreType = "" }()

	rootCmd.SetArgs([]string{"--db", testPath, "score", "--type", "strain"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for unknown score type")
	}
}

func TestScoreCmdSavePersistsHistory(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { scoreSave = false }()

	// Seed a scoring day plus history for the baseline.
	seed, err := storage.Open(testPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	for i := 0; i <= 5; i++ {
		m := models.NewDailyMetrics(base.AddDate(0, 0, -i))
		hrv, rhr, dur := 48.0, 52.0, 450.0
		m.HRV = &hrv
		m.RestingHeartRate = &rhr
		m.SleepDuration = &dur
		if err := seed.UpsertDailyMetrics(m); err != nil {
			t.Fatalf("UpsertDailyMetrics failed: %v", err)
		}
	}
	seed.Close()

	rootCmd.SetArgs([]string{"--db", testPath, "score", "2025-06-15", "--save"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("score --save failed: %v", err)
	}

	db, err := storage.Open(testPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	s, err := db.GetScore(base, models.ScoreTypeRecovery)
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if s == nil {
		t.Fatal("Expected persisted recovery score")
	}
	if s.Baseline.LookbackDays == 0 {
		t.Error("Expected baseline snapshot embedded in persisted score")
	}

	s, err = db.GetScore(base, models.ScoreTypeSleep)
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if s == nil {
		t.Fatal("Expected persisted sleep score")
	}
}

func TestHistoryCmdRejectsUnknownType(t *testing.T) {
	testPath := setupTestCLI(t)

	rootCmd.SetArgs([]string{"--db", testPath, "history", "strain"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for unknown history type")
	}
}

func TestHistoryDeleteCmd(t *testing.T) {
	testPath := setupTestCLI(t)

	seed, err := storage.Open(testPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	score := models.NewPersistedScore(
		models.NewCompositeScoreResult(date, models.ScoreTypeSleep, nil),
		models.BaselineSnapshot{Date: date, LookbackDays: 60},
	)
	if err := seed.UpsertScore(score); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}
	seed.Close()

	rootCmd.SetArgs([]string{"--db", testPath, "history", "delete", "sleep", "2025-06-15"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("history delete failed: %v", err)
	}

	// Deleting again reports the missing row.
	rootCmd.SetArgs([]string{"--db", testPath, "history", "delete", "sleep", "2025-06-15"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error deleting absent score")
	}
}

func TestTrendsCmdRejectsUnknownBiomarker(t *testing.T) {
	testPath := setupTestCLI(t)
	defer func() { trendsBiomarker = "" }()

	rootCmd.SetArgs([]string{"--db", testPath, "trends", "-b", "steps"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for unknown biomarker")
	}
}

func TestExportCmdWritesFile(t *testing.T) {
	testPath := setupTestCLI(t)
	outPath := filepath.Join(filepath.Dir(testPath), "export.json")
	defer func() { exportOutput = "" }()

	rootCmd.SetArgs([]string{"--db", testPath, "export", "json", "-o", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	export, err := storage.ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport failed: %v", err)
	}
	if export.Tool != "vitality" {
		t.Errorf("Expected tool vitality, got %q", export.Tool)
	}
}
