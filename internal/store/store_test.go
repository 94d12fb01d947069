package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "strandguard-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"triggers", "settings", "phrases"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}

	var idx string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name=?",
		"idx_triggers_triggered_at",
	).Scan(&idx)
	if err != nil {
		t.Errorf("trigger index should exist after migrations: %v", err)
	}
}

func TestTriggerRepository_InsertAndList(t *testing.T) {
	s := newTestStore(t)
	repo := s.Triggers()

	first := Trigger{ID: "t1", TriggeredAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)}
	second := Trigger{ID: "t2", TriggeredAt: time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC)}

	// Insert out of order; List returns chronological order.
	if err := repo.Insert(second); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Insert(first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	triggers, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(triggers))
	}
	if triggers[0].ID != "t1" || triggers[1].ID != "t2" {
		t.Errorf("expected chronological order t1,t2, got %s,%s", triggers[0].ID, triggers[1].ID)
	}
	if !triggers[0].TriggeredAt.Equal(first.TriggeredAt) {
		t.Errorf("timestamp round-trip mismatch: want %v, got %v",
			first.TriggeredAt, triggers[0].TriggeredAt)
	}
}

func TestTriggerRepository_InsertBatch(t *testing.T) {
	s := newTestStore(t)
	repo := s.Triggers()

	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	batch := []Trigger{
		{ID: "a", TriggeredAt: base},
		{ID: "b", TriggeredAt: base.Add(time.Hour)},
		{ID: "a", TriggeredAt: base}, // duplicate ID is ignored
	}

	if err := repo.InsertBatch(batch); err != nil {
		t.Fatalf("batch insert failed: %v", err)
	}

	triggers, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(triggers) != 2 {
		t.Errorf("expected 2 triggers after duplicate-ignoring batch, got %d", len(triggers))
	}

	n, err := repo.CountSince(base.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 trigger since %v, got %d", base.Add(30*time.Minute), n)
	}
}

func TestSettingsRepository_GetSet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if _, ok, err := repo.Get("missing"); err != nil || ok {
		t.Errorf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := repo.Set("detection.trigger_cooldown", "3"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := repo.Set("detection.trigger_cooldown", "5"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, ok, err := repo.Get("detection.trigger_cooldown")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if value != "5" {
		t.Errorf("expected overwritten value 5, got %q", value)
	}
}

func TestSettingsRepository_SetAllAndAll(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	err := repo.SetAll(map[string]string{
		"detection.required_duration": "0.75",
		"camera.flip":                 "true",
	})
	if err != nil {
		t.Fatalf("set all failed: %v", err)
	}

	values, err := repo.All()
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(values) != 2 {
		t.Errorf("expected 2 settings, got %d", len(values))
	}
	if values["detection.required_duration"] != "0.75" {
		t.Errorf("unexpected value: %q", values["detection.required_duration"])
	}
}

func TestPhraseRepository_SeedAndReplace(t *testing.T) {
	s := newTestStore(t)
	repo := s.Phrases()

	defaults := []string{"Keep your hands free!", "Take a deep breath and relax."}
	if err := repo.SeedDefaults(defaults); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Seeding again is a no-op once phrases exist.
	if err := repo.SeedDefaults([]string{"should not appear"}); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	phrases, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(phrases) != 2 {
		t.Fatalf("expected 2 phrases, got %d", len(phrases))
	}
	if phrases[0] != defaults[0] {
		t.Errorf("expected insertion order preserved, got %q", phrases[0])
	}

	if err := repo.Replace([]string{"New phrase", ""}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	phrases, err = repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(phrases) != 1 || phrases[0] != "New phrase" {
		t.Errorf("expected pool replaced with one phrase, got %v", phrases)
	}
}
