package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/storage"
)

func setupTestBackupContext(t *testing.T, input string) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	tempDir := t.TempDir()
	adapter := storage.NewJSONStore(filepath.Join(tempDir, "habits.json"))

	store := habits.New(adapter)
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:   store,
		Adapter: adapter,
		Out:     out,
		In:      strings.NewReader(input),
	}
	return ctx, out, tempDir
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, tempDir := setupTestBackupContext(t, "")
	ctx.Store.AddHabit("Read")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: habitharbor-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	entries, err := os.ReadDir(filepath.Join(tempDir, "backups"))
	if err != nil {
		t.Fatalf("failed to read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(entries))
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected listing: %q", out.String())
	}
	if !strings.Contains(out.String(), entries[0].Name()) {
		t.Errorf("expected listing to name %s, got %q", entries[0].Name(), out.String())
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out, tempDir := setupTestBackupContext(t, "y\n")
	ctx.Store.AddHabit("Read")

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ctx.Store.AddHabit("Run")
	if ctx.Store.Len() != 2 {
		t.Fatalf("expected 2 habits before restore")
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if ctx.Store.Len() != 1 {
		t.Errorf("expected 1 habit after restore, got %d", ctx.Store.Len())
	}
	if !strings.Contains(out.String(), "Previous state saved as") {
		t.Errorf("expected safety backup note, got %q", out.String())
	}

	// The restored state must reach the data file.
	data, err := os.ReadFile(filepath.Join(tempDir, "habits.json"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := storage.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Habits) != 1 || doc.Habits[0].Name != "Read" {
		t.Errorf("unexpected persisted habits: %+v", doc.Habits)
	}
}

func TestBackupRestoreCmd_Cancelled(t *testing.T) {
	ctx, out, _ := setupTestBackupContext(t, "n\n")
	ctx.Store.AddHabit("Read")
	mgr, _ := ctx.BackupManager()
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	ctx.Store.AddHabit("Run")

	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if ctx.Store.Len() != 2 {
		t.Error("cancelled restore should not change habits")
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestoreCmd_Missing(t *testing.T) {
	ctx, _, _ := setupTestBackupContext(t, "y\n")
	if err := (&BackupRestoreCmd{BackupFile: "habitharbor-19990101-0000.json"}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestExportImportCmd(t *testing.T) {
	ctx, _, tempDir := setupTestBackupContext(t, "")
	h, _ := ctx.Store.AddHabit("Read")
	ctx.Store.ToggleCompletionOn(h.ID, "2024-06-12")
	ctx.Store.SetSetting("theme", "light")

	exportPath := filepath.Join(tempDir, "export.json")
	if err := (&ExportCmd{Path: exportPath}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	other, out, _ := setupTestBackupContext(t, "y\n")
	other.Store.AddHabit("Something else")

	if err := (&ImportCmd{Path: exportPath}).Run(other); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Imported 1 habit(s)") {
		t.Errorf("unexpected output: %q", out.String())
	}

	got, err := other.Store.Habit(h.ID)
	if err != nil {
		t.Fatalf("imported habit missing: %v", err)
	}
	if !got.IsCompletedOn("2024-06-12") {
		t.Error("expected imported record")
	}
	if other.Store.SettingString("theme", "") != "light" {
		t.Error("expected imported settings")
	}

	// The replaced state is kept as an automatic backup.
	mgr, _ := other.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 automatic backup before import, got %d", len(backups))
	}
}

func TestExportCmd_Stdout(t *testing.T) {
	ctx, out, _ := setupTestBackupContext(t, "")
	ctx.Store.AddHabit("Read")

	if err := (&ExportCmd{Path: "-"}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	doc, err := storage.Decode(bytes.TrimSpace(out.Bytes()))
	if err != nil {
		t.Fatalf("stdout export is not a valid blob: %v", err)
	}
	if len(doc.Habits) != 1 {
		t.Errorf("expected 1 habit, got %d", len(doc.Habits))
	}
}

func TestImportCmd_InvalidFile(t *testing.T) {
	ctx, _, tempDir := setupTestBackupContext(t, "y\n")
	ctx.Store.AddHabit("Read")

	bad := filepath.Join(tempDir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{Path: bad}).Run(ctx); err == nil {
		t.Error("expected error for invalid import")
	}
	if ctx.Store.Len() != 1 {
		t.Error("invalid import should not change habits")
	}
}
