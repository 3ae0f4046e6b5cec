package system

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type DoctorCmd struct{}

// schemaValidator is implemented by the database adapters.
type schemaValidator interface {
	ValidateSchema() error
}

// historyCounter is implemented by adapters that retain previous saves.
type historyCounter interface {
	HistoryCount() (int, error)
}

type dbProvider interface {
	GetDB() *sql.DB
}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
	// gate marks the check whose failure skips the needsDB checks.
	gate bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable, gate: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Data readable", run: checkDataReadable, needsDB: true},
	{name: "Save history", run: checkSaveHistory, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Habit integrity", run: checkHabitsIntegrity, needsDB: true},
	{name: "Habit records", run: checkHabitRecords, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true

	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gate {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Adapter.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if _, err := ctx.Adapter.Load(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load data: %w", err)
	}

	// Database adapters also get a round trip
	if p, ok := ctx.Adapter.(dbProvider); ok {
		db := p.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Adapter.(schemaValidator)
	if !ok {
		// File and memory stores have no schema
		return nil
	}
	return v.ValidateSchema()
}

func checkDataReadable(ctx *cli.Context) error {
	if err := ctx.Store.LoadError(); err != nil {
		return fmt.Errorf("stored data could not be read, running with an empty collection: %w", err)
	}
	return nil
}

func checkSaveHistory(ctx *cli.Context) error {
	h, ok := ctx.Adapter.(historyCounter)
	if !ok {
		return nil
	}
	if _, err := h.HistoryCount(); err != nil {
		return fmt.Errorf("failed to read save history: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Adapter.(*storage.MemoryStore); ok {
		return fmt.Errorf("ephemeral storage is never backed up")
	}
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitharbor backup create'")
	}
	if err := mgr.Verify(backups[0].Path); err != nil {
		return fmt.Errorf("latest backup %s is unreadable: %w", backups[0].Name(), err)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Store.Today()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02T15:04:05Z07:00"))
	}

	if tz := ctx.Store.SettingString(constants.SettingTimezone, ""); tz != "" {
		if _, err := utils.NowInTimezone(tz); err != nil {
			return err
		}
	}
	return nil
}

// storedHabits decodes what the adapter holds rather than the store's
// collection, which drops or merges bad data on load.
func storedHabits(ctx *cli.Context) []models.Habit {
	data, err := ctx.Adapter.Load()
	if err != nil {
		return nil
	}
	doc, err := storage.Decode(data)
	if err != nil {
		// Data readable reports this
		return nil
	}
	return doc.Habits
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	var problems []string
	ids := make(map[string]bool)
	for _, h := range storedHabits(ctx) {
		if ids[h.ID] {
			problems = append(problems, fmt.Sprintf("duplicate habit ID %s", h.ID))
		}
		ids[h.ID] = true

		if strings.TrimSpace(h.Name) == "" {
			problems = append(problems, fmt.Sprintf("habit %s has an empty name", h.ID))
		}
		if !h.Color.Valid() {
			problems = append(problems, fmt.Sprintf("habit %q has unknown color %q", h.Name, h.Color))
		}
		for _, f := range h.Frequency {
			if _, ok := f.Time(); !ok {
				problems = append(problems, fmt.Sprintf("habit %q has unknown weekday %q", h.Name, f))
			}
		}
	}
	return joinProblems(problems)
}

func checkHabitRecords(ctx *cli.Context) error {
	var problems []string
	for _, h := range storedHabits(ctx) {
		days := make(map[string]int)
		for _, r := range h.Records {
			if _, err := utils.ParseDay(r.Date); err != nil {
				problems = append(problems, fmt.Sprintf("habit %q has a record with invalid date %q", h.Name, r.Date))
				continue
			}
			days[r.Date]++
		}
		dupes := 0
		for _, n := range days {
			if n > 1 {
				dupes++
			}
		}
		if dupes > 0 {
			problems = append(problems, fmt.Sprintf("habit %q has %d day(s) with duplicate records", h.Name, dupes))
		}
	}
	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "\n   "))
}
