package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/opdozitz/internal/world"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("opdozitz", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("opdozitz_strict", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("opdozitz", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("TopScores() = %v, expected [200 100]", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	high, err := store.HighScore("opdozitz_strict")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("HighScore() = %d, expected 500", high)
	}

	high, err = store.HighScore("unknown")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for an empty mode, expected 0", high)
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []world.Result{
		{Level: 1, Name: "Stairway", Home: 12, Dead: 8, Spawned: 20, Passed: true},
		{Level: 1, Name: "Stairway", Home: 15, Dead: 5, Spawned: 20, Passed: true},
		{Level: 2, Name: "Downhill", Home: 4, Dead: 16, Spawned: 20},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(FromResult("opdozitz", r)); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}
	if _, err := store.SaveLevelResult(FromResult("opdozitz_strict", results[0])); err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}

	best, err := store.BestScores("opdozitz")
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(best) != 2 || best[1] != 15 || best[2] != 4 {
		t.Errorf("BestScores() = %v, expected map[1:15 2:4]", best)
	}

	total, err := store.TotalScore("opdozitz")
	if err != nil {
		t.Fatalf("TotalScore() failed: %v", err)
	}
	if total != 19 {
		t.Errorf("TotalScore() = %d, expected 19", total)
	}

	history, err := store.History("opdozitz", 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("History() returned %d results, expected 3", len(history))
	}
	if history[0].Level != 2 || history[0].Passed || history[0].Name != "Downhill" {
		t.Errorf("History()[0] = %+v, expected the level 2 run", history[0])
	}
	if !history[1].Passed || history[1].Home != 15 {
		t.Errorf("History()[1] = %+v", history[1])
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("opdozitz", 100)
	store.SaveLevelResult(LevelResult{Mode: "opdozitz", Level: 1, Home: 3})
	store.SaveLevelResult(LevelResult{Mode: "opdozitz_strict", Level: 1, Home: 7})

	if err := store.Clear("opdozitz"); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	if scores, _ := store.TopScores("opdozitz", 10); len(scores) != 0 {
		t.Errorf("expected 0 scores after clear, got %d", len(scores))
	}
	if best, _ := store.BestScores("opdozitz"); len(best) != 0 {
		t.Errorf("expected no level results after clear, got %v", best)
	}
	if best, _ := store.BestScores("opdozitz_strict"); best[1] != 7 {
		t.Error("other modes should not be affected by Clear")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveLevelResult(LevelResult{Mode: "opdozitz", Level: 1, Home: 12, Passed: true})
	store.SaveLevelResult(LevelResult{Mode: "opdozitz", Level: 1, Home: 14, Passed: true})
	store.SaveLevelResult(LevelResult{Mode: "opdozitz", Level: 2, Home: 3})

	stats, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	st := stats["opdozitz"]
	if st == nil {
		t.Fatal("no stats for opdozitz")
	}
	if st.Runs != 3 || st.LevelsPassed != 1 || st.TotalHome != 29 {
		t.Errorf("stats = %+v, expected 3 runs, 1 level passed, 29 home", st)
	}
}
