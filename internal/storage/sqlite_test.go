package storage

import (
	"os"
	"path/filepath"
	"testing"
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []struct{ score, level int }{{100, 1}, {50, 1}, {200, 3}} {
		if _, err := store.SaveScore("defender", run.score, run.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500, 9); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("defender", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[0].Level != 3 {
		t.Errorf("Expected best run 200 at level 3, got %+v", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %+v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	v, err := store.GetInt("dos-defender.highscore")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("missing key should read as 0, got %d", v)
	}

	if err := store.SetInt("dos-defender.highscore", 1200); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := store.SetInt("dos-defender.highscore", 1500); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}

	v, err = store.GetInt("dos-defender.highscore")
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if v != 1500 {
		t.Errorf("GetInt() = %d, expected 1500", v)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("defender", 100, 1)
	store.SaveScore("other", 300, 1)

	if err := store.ClearScores("defender"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("defender", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("Other game scores should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("defender")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestScore != 0 {
		t.Errorf("empty stats should be zero, got %+v", empty)
	}

	store.SaveScore("defender", 100, 1)
	store.SaveScore("defender", 300, 2)

	stats, err := store.GetGameStats("defender")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.BestScore != 300 || stats.BestLevel != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
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

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	if v, _ := m.GetInt("k"); v != 0 {
		t.Errorf("missing key = %d, expected 0", v)
	}
	m.SetInt("k", 42)
	if v, _ := m.GetInt("k"); v != 42 {
		t.Errorf("GetInt() = %d, expected 42", v)
	}
}
