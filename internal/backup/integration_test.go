package backup

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/storage/sqlite"
)

// TestIntegrationBackupRestoreWorkflow runs backup and restore against a real
// SQLite database and checks the restored state survives a reopen.
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "habitharbor.db")

	store := habits.New(sqlite.NewStore(dbPath))
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	read, err := store.AddHabit("Read")
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, err := store.ToggleCompletionOn(read.ID, "2025-01-01"); err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}

	dir, err := DirFor(store.Location())
	if err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(store, dir)
	tick(mgr)

	backup1, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := store.DeleteHabit(read.ID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}
	if _, err := store.AddHabit("Run"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create second backup: %v", err)
	}

	if _, err := mgr.RestoreBackup(backup1); err != nil {
		t.Fatalf("failed to restore backup: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := habits.New(sqlite.NewStore(dbPath))
	if err := reopened.Open(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	list := reopened.Habits()
	if len(list) != 1 || list[0].Name != "Read" {
		t.Fatalf("expected only Read after restore, got %+v", list)
	}
	if !list[0].IsCompletedOn("2025-01-01") {
		t.Error("restored habit lost its record")
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 2 backups plus the safety backup, got %d", len(backups))
	}
}
