package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, s := range scores {
		if _, err := store.SaveRound(RoundRecord{GameID: gameID, Score: s}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveScores(t, store, "flappy", 12)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("flappy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 12 {
		t.Errorf("Expected best score 12 after reopen, got %d", best)
	}
}

func TestStoreSaveRoundFields(t *testing.T) {
	store := openTestStore(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	store.now = func() time.Time { return fixed }

	id, err := store.SaveRound(RoundRecord{
		GameID:       "flappy",
		Player:       "alice",
		Score:        22,
		RawScore:     22.7,
		Ticks:        2270,
		Pipes:        31,
		Duration:     37*time.Second + 833*time.Millisecond,
		NewHighScore: true,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRound() returned a non-uuid id %q: %v", id, err)
	}

	rounds, err := store.RecentRounds("flappy", 1)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected the saved round back, got %d rounds", len(rounds))
	}
	got := rounds[0]

	if got.ID != id || got.GameID != "flappy" || got.Player != "alice" {
		t.Errorf("identity fields mismatch: %+v", got)
	}
	if got.Score != 22 || got.RawScore != 22.7 || got.Ticks != 2270 || got.Pipes != 31 {
		t.Errorf("score fields mismatch: %+v", got)
	}
	if got.Duration != 37833*time.Millisecond {
		t.Errorf("Expected duration 37.833s, got %v", got.Duration)
	}
	if !got.NewHighScore {
		t.Error("NewHighScore flag was not persisted")
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("Expected created_at %v, got %v", fixed, got.CreatedAt)
	}
}

func TestStoreSaveRoundUniqueIDs(t *testing.T) {
	store := openTestStore(t)

	a, err := store.SaveRound(RoundRecord{GameID: "flappy", Score: 1})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	b, err := store.SaveRound(RoundRecord{GameID: "flappy", Score: 1})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if a == b {
		t.Errorf("Expected distinct ids, got %q twice", a)
	}
}

func TestStoreSaveRoundRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRound(RoundRecord{Score: 5}); err == nil {
		t.Error("SaveRound() without game id should fail")
	}
}

func TestStoreTopRounds(t *testing.T) {
	store := openTestStore(t)

	saveScores(t, store, "flappy", 100, 50, 200)
	saveScores(t, store, "other", 500)

	rounds, err := store.TopRounds("flappy", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Score != 200 || rounds[1].Score != 100 || rounds[2].Score != 50 {
		t.Errorf("Rounds not sorted descending: %d, %d, %d", rounds[0].Score, rounds[1].Score, rounds[2].Score)
	}
}

func TestStoreTopRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	saveScores(t, store, "flappy", 100, 200, 300, 400, 500)

	rounds, err := store.TopRounds("flappy", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(rounds))
	}
	if rounds[0].Score != 500 || rounds[1].Score != 400 || rounds[2].Score != 300 {
		t.Errorf("Rounds not in expected order: %v", rounds)
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < DefaultLimit+5; i++ {
		saveScores(t, store, "flappy", i)
	}

	rounds, err := store.TopRounds("flappy", 0)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != DefaultLimit {
		t.Errorf("Expected %d rounds for non-positive limit, got %d", DefaultLimit, len(rounds))
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	saveScores(t, store, "flappy", 7, 3, 9, 1)

	rounds, err := store.RecentRounds("flappy", 3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Score != 1 || rounds[1].Score != 9 || rounds[2].Score != 3 {
		t.Errorf("Rounds not newest first: %d, %d, %d", rounds[0].Score, rounds[1].Score, rounds[2].Score)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("flappy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty history, got %d", best)
	}

	saveScores(t, store, "flappy", 100, 300, 200)

	best, err = store.BestScore("flappy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("flappy")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	fixed := time.UnixMilli(1_700_000_000_000)
	store.now = func() time.Time { return fixed }
	for _, r := range []RoundRecord{
		{GameID: "flappy", Score: 10, Ticks: 1000},
		{GameID: "flappy", Score: 20, Ticks: 2000},
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.GameStats("flappy")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.BestScore != 20 || stats.AvgScore != 15 || stats.TotalTicks != 3000 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if !stats.LastPlayed.Equal(fixed) {
		t.Errorf("Expected last played %v, got %v", fixed, stats.LastPlayed)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	saveScores(t, store, "flappy", 100, 200)
	saveScores(t, store, "other", 300)

	if err := store.ClearRounds("flappy"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	flappy, _ := store.TopRounds("flappy", 10)
	if len(flappy) != 0 {
		t.Errorf("Expected 0 flappy rounds after clear, got %d", len(flappy))
	}

	other, _ := store.TopRounds("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game history should not be affected by clearing flappy")
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
