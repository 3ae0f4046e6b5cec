package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/storage/sqlite"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func newContext(t *testing.T, adapter storage.Adapter) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := habits.New(adapter,
		habits.WithClock(func() time.Time { return testNow }),
		habits.WithLocation(time.UTC),
	)
	if err := store.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Adapter: adapter, Out: out, In: strings.NewReader("")}, out
}

func setupTestSQLiteContext(t *testing.T) (*cli.Context, *bytes.Buffer, *sqlite.Store) {
	t.Helper()
	adapter := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	ctx, out := newContext(t, adapter)
	return ctx, out, adapter
}

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, out := newContext(t, storage.NewMemoryStore())

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits scheduled today.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	h, _ := ctx.Store.AddHabit("Read", habits.WithFrequency([]models.Weekday{models.Wed}))
	ctx.Store.AddHabit("Run", habits.WithFrequency([]models.Weekday{models.Wed}))
	ctx.Store.ToggleCompletionOn(h.ID, "2024-06-12")

	out.Reset()
	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[DryRun] 1 habit left today: Run" {
		t.Errorf("unexpected reminder: %q", got)
	}

	out.Reset()
	if err := (&NotifyCmd{Text: "Stretch!", DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[DryRun] Stretch!" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestTuiCmd_WarningHandlerRouting(t *testing.T) {
	ctx, _ := newContext(t, storage.NewMemoryStore())

	var got error
	ctx.SetWarningHandler(func(err error) { got = err })
	ctx.HandleWarning(&habits.SaveError{Err: bytes.ErrTooLarge})
	if got == nil {
		t.Error("expected handler to receive the warning")
	}

	ctx.SetWarningHandler(nil)
	ctx.HandleWarning(&habits.SaveError{Err: bytes.ErrTooLarge})
}
