package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitharbor/internal/storage"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out, _ := setupTestSQLiteContext(t)
	ctx.Store.AddHabit("Read")

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	got := out.String()
	for _, want := range []string{"✓ Storage reachable: OK", "✓ Schema version: OK", "✓ Save history: OK", "⚠ Backups present: WARNING", "All diagnostics passed!"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_WithBackup(t *testing.T) {
	ctx, out, _ := setupTestSQLiteContext(t)
	ctx.Store.AddHabit("Read")
	ctx.PerformAutomaticBackup()

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups check to pass:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, out, adapter := setupTestSQLiteContext(t)

	db := adapter.GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}

	// Set an impossible future schema version
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to clear schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to set schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on a future schema version")
	}
	if !strings.Contains(out.String(), "❌ Schema version: FAIL") {
		t.Errorf("expected schema failure:\n%s", out.String())
	}
}

func TestDoctorCmd_UnreadableData(t *testing.T) {
	ctx, out := newContext(t, storage.NewMemoryStoreWith([]byte("{not json")))

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when stored data cannot be decoded")
	}
	if !strings.Contains(out.String(), "❌ Data readable: FAIL") {
		t.Errorf("expected data readable failure:\n%s", out.String())
	}
}

func TestDoctorCmd_IntegrityProblems(t *testing.T) {
	blob := `{"version":1,"habits":[
		{"id":"a","name":"Read","color":"mauve-300","frequency":["Mon","Xyz"],"createdAt":"2024-01-01T00:00:00Z",
		 "records":[{"id":"a-2024-01-01","date":"2024-01-01","completed":true},{"id":"dup","date":"2024-01-01","completed":false},{"id":"bad","date":"01/02/2024","completed":true}]},
		{"id":"a","name":"Run","color":"blue-500","frequency":[],"createdAt":"2024-01-01T00:00:00Z","records":[]}
	],"settings":{}}`
	ctx, out := newContext(t, storage.NewMemoryStoreWith([]byte(blob)))

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on integrity problems")
	}
	got := out.String()
	for _, want := range []string{
		"❌ Data readable: FAIL",
		"❌ Habit integrity: FAIL",
		"duplicate habit ID a",
		`unknown color "mauve-300"`,
		`unknown weekday "Xyz"`,
		"❌ Habit records: FAIL",
		"1 day(s) with duplicate records",
		`invalid date "01/02/2024"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_InvalidTimezoneSetting(t *testing.T) {
	ctx, out := newContext(t, storage.NewMemoryStore())
	ctx.Store.SetSetting("timezone", "Mars/Olympus")

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on an invalid timezone setting")
	}
	if !strings.Contains(out.String(), "❌ Clock/timezone: FAIL") {
		t.Errorf("expected timezone failure:\n%s", out.String())
	}
}
