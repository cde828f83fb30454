// ABOUTME: Tests for the one-time legacy score file migration.
// ABOUTME: Verifies idempotence, corrupt-file tolerance, and the rename-aside.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitality/internal/models"
)

const legacyFixture = `[
	{
		"date": "2025-06-10",
		"scoreType": "recovery",
		"score": 72,
		"baselineSnapshot": {
			"date": "2025-06-10T00:00:00Z",
			"lookback_days": 60,
			"stats": {"hrv": {"mean": 47.5, "sample_count": 30}}
		},
		"calculatedAt": "2025-06-10T08:00:00Z"
	},
	{
		"date": "2025-06-10",
		"scoreType": "sleep",
		"score": 64,
		"baselineSnapshot": {"date": "2025-06-10T00:00:00Z", "lookback_days": 60, "stats": {}},
		"calculatedAt": "2025-06-10T08:00:00Z"
	}
]`

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeLegacyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores_legacy.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}
	return path
}

func TestMigrateLegacyScores(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	path := writeLegacyFile(t, legacyFixture)
	summary, err := db.MigrateLegacyScores(path, testLogger())
	if err != nil {
		t.Fatalf("MigrateLegacyScores failed: %v", err)
	}
	if summary.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", summary.Imported)
	}
	if summary.Skipped != 0 {
		t.Errorf("Expected 0 skipped, got %d", summary.Skipped)
	}

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	got, err := db.GetScore(date, models.ScoreTypeRecovery)
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if got == nil || got.FinalScore != 72 {
		t.Fatalf("Expected migrated recovery score 72, got %+v", got)
	}
	if mean, ok := got.Baseline.Mean(models.BiomarkerHRV); !ok || mean != 47.5 {
		t.Errorf("Expected baseline snapshot to survive migration, got %v %v", mean, ok)
	}

	// The file is renamed aside so the migration never re-runs.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected legacy file renamed away, stat err: %v", err)
	}
	if _, err := os.Stat(path + ".migrated"); err != nil {
		t.Errorf("Expected renamed legacy file to exist: %v", err)
	}
}

func TestMigrateSkipsWhenStoreNotEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	existing := testScore(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), models.ScoreTypeSleep, 50)
	if err := db.UpsertScore(existing); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}

	path := writeLegacyFile(t, legacyFixture)
	summary, err := db.MigrateLegacyScores(path, testLogger())
	if err != nil {
		t.Fatalf("MigrateLegacyScores failed: %v", err)
	}
	if summary.Imported != 0 {
		t.Errorf("Expected no import into a non-empty store, got %d", summary.Imported)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected legacy file untouched: %v", err)
	}
}

func TestMigrateMissingFileIsNoop(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	summary, err := db.MigrateLegacyScores(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	if err != nil {
		t.Fatalf("MigrateLegacyScores failed: %v", err)
	}
	if summary.Imported != 0 || summary.Skipped != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}

func TestMigrateCorruptFileNeverBlocksStartup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	path := writeLegacyFile(t, "{not json")
	summary, err := db.MigrateLegacyScores(path, testLogger())
	if err != nil {
		t.Fatalf("Corrupt legacy file must not be fatal: %v", err)
	}
	if summary.Imported != 0 {
		t.Errorf("Expected nothing imported from corrupt file, got %d", summary.Imported)
	}
}

func TestMigrateFailureLeavesStoreEmptyAndRetryable(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	path := writeLegacyFile(t, legacyFixture)

	// Reject the second fixture entry so the import fails partway through.
	_, err := db.db.Exec(`
		CREATE TRIGGER reject_sleep BEFORE INSERT ON score_history
		WHEN NEW.score_type = 'sleep'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END
	`)
	if err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	if _, err := db.MigrateLegacyScores(path, testLogger()); err == nil {
		t.Fatal("Expected migration to fail")
	}

	// A failed import rolls back wholesale; a partial import would leave the
	// store non-empty and permanently block a retry.
	count, err := db.CountScores()
	if err != nil {
		t.Fatalf("CountScores failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected empty store after failed migration, got %d rows", count)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected legacy file untouched after failure: %v", err)
	}

	if _, err := db.db.Exec("DROP TRIGGER reject_sleep"); err != nil {
		t.Fatalf("Failed to drop trigger: %v", err)
	}
	summary, err := db.MigrateLegacyScores(path, testLogger())
	if err != nil {
		t.Fatalf("Retry after failure should succeed: %v", err)
	}
	if summary.Imported != 2 {
		t.Errorf("Expected 2 imported on retry, got %d", summary.Imported)
	}
}

func TestMigrateSkipsCorruptEntries(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	content := `[
		{"date": "2025-06-10", "scoreType": "recovery", "score": 72,
		 "baselineSnapshot": {"stats": {}}, "calculatedAt": "2025-06-10T08:00:00Z"},
		{"date": "not-a-date", "scoreType": "recovery", "score": 50,
		 "baselineSnapshot": {"stats": {}}, "calculatedAt": "2025-06-10T08:00:00Z"},
		{"date": "2025-06-11", "scoreType": "bogus", "score": 50,
		 "baselineSnapshot": {"stats": {}}, "calculatedAt": "2025-06-10T08:00:00Z"}
	]`
	path := writeLegacyFile(t, content)

	summary, err := db.MigrateLegacyScores(path, testLogger())
	if err != nil {
		t.Fatalf("MigrateLegacyScores failed: %v", err)
	}
	if summary.Imported != 1 {
		t.Errorf("Expected 1 imported, got %d", summary.Imported)
	}
	if summary.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", summary.Skipped)
	}
}
