package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/storage"
)

func setupTestManager(t *testing.T) (*Manager, *habits.Store) {
	t.Helper()
	store := habits.New(storage.NewMemoryStore())
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.AddHabit("Read"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if _, err := store.AddHabit("Run"); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	mgr := NewManager(store, filepath.Join(t.TempDir(), constants.BackupDirName))
	return mgr, store
}

// tick makes the manager's clock advance one minute per call.
func tick(mgr *Manager) {
	base := time.Date(2024, 6, 12, 9, 0, 0, 0, time.Local)
	n := 0
	mgr.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
}

func TestCreateBackup(t *testing.T) {
	mgr, _ := setupTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		t.Errorf("unexpected backup name %q", name)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
	doc, err := storage.Decode(data)
	if err != nil {
		t.Fatalf("backup is not a valid blob: %v", err)
	}
	if len(doc.Habits) != 2 {
		t.Errorf("expected 2 habits in backup, got %d", len(doc.Habits))
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestBackupRotation(t *testing.T) {
	mgr, _ := setupTestManager(t)
	tick(mgr)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestListBackups(t *testing.T) {
	mgr, _ := setupTestManager(t)
	tick(mgr)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"garbage.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr, store := setupTestManager(t)
	tick(mgr)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := store.AddHabit("Meditate"); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 habits before restore, got %d", store.Len())
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 habits after restore, got %d", store.Len())
	}

	data, err := os.ReadFile(safety)
	if err != nil {
		t.Fatalf("safety backup missing: %v", err)
	}
	doc, _ := storage.Decode(data)
	if len(doc.Habits) != 3 {
		t.Errorf("safety backup should hold the pre-restore state, got %d habits", len(doc.Habits))
	}
}

func TestRestoreBackupCreatesPreRestoreBackup(t *testing.T) {
	mgr, _ := setupTestManager(t)
	tick(mgr)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	backups, _ := mgr.ListBackups()
	initialCount := len(backups)

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	backups, _ = mgr.ListBackups()
	if len(backups) != initialCount+1 {
		t.Errorf("expected %d backups after restore, got %d", initialCount+1, len(backups))
	}
}

func TestRestoreBackupRejectsInvalid(t *testing.T) {
	mgr, store := setupTestManager(t)

	if _, err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "missing.json")); err == nil {
		t.Error("expected error for missing backup")
	}

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(mgr.GetBackupDir(), "invalid.json")
	if err := os.WriteFile(invalid, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(invalid); err == nil {
		t.Error("expected error for invalid backup")
	}
	if store.Len() != 2 {
		t.Error("a rejected restore must not touch the store")
	}
	backups, _ := mgr.ListBackups()
	if len(backups) != 0 {
		t.Error("a rejected restore must not write a safety backup")
	}
}

func TestVerify(t *testing.T) {
	mgr, _ := setupTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := mgr.Verify(backupPath); err != nil {
		t.Errorf("Verify failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.json")
	if err := os.WriteFile(invalidPath, []byte("not a blob"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}
	if err := mgr.Verify(invalidPath); err == nil {
		t.Error("Verify should fail for invalid backup")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr, _ := setupTestManager(t)
	fixed := time.Date(2024, 6, 12, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 5 {
		t.Errorf("expected counter-suffixed backups to be listed, got %d", len(backups))
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want string
	}{
		{name: "habitharbor-20240612-0930.json", ok: true, want: "2024-06-12 09:30:00"},
		{name: "habitharbor-20240612-093015.json", ok: true, want: "2024-06-12 09:30:15"},
		{name: "habitharbor-20240612-093015-3.json", ok: true, want: "2024-06-12 09:30:15"},
		{name: "habitharbor-latest.json", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTimestamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Format("2006-01-02 15:04:05") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02 15:04:05"), tt.want)
			}
		})
	}
}

func TestDirFor(t *testing.T) {
	dir, err := DirFor("/data/habitharbor/habitharbor.db")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/data/habitharbor", constants.BackupDirName) {
		t.Errorf("unexpected dir %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir, err = DirFor("postgresql")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(dir, filepath.Join(constants.AppName, constants.BackupDirName)) {
		t.Errorf("unexpected dir %q", dir)
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager(nil, "/backups")
	if got := mgr.Resolve("habitharbor-20240612-0930.json"); got != filepath.Join("/backups", "habitharbor-20240612-0930.json") {
		t.Errorf("bare names should resolve into the backup dir, got %q", got)
	}
	if got := mgr.Resolve("/tmp/x.json"); got != "/tmp/x.json" {
		t.Errorf("paths should be kept, got %q", got)
	}
}
