package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/habitharbor/internal/backup"
	"github.com/julianstephens/habitharbor/internal/constants"
	apperrors "github.com/julianstephens/habitharbor/internal/errors"
	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/stats"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type Context struct {
	Store   *habits.Store
	Adapter storage.Adapter

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader

	warnMu    sync.Mutex
	onWarning func(error)
}

// SetWarningHandler routes store warnings to fn, replacing any previous
// handler. The TUI uses it to surface failed background saves.
func (c *Context) SetWarningHandler(fn func(error)) {
	c.warnMu.Lock()
	defer c.warnMu.Unlock()
	c.onWarning = fn
}

// HandleWarning is passed to the habit store as its warning handler.
func (c *Context) HandleWarning(err error) {
	c.warnMu.Lock()
	fn := c.onWarning
	c.warnMu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted output for the user.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Print writes output for the user.
func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.out(), args...)
}

// Println writes a line of output for the user.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Confirm asks a yes/no question on In and reports whether the answer was yes.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Persisted turns a save warning into a printed warning so the command can
// finish. Any other error is returned unchanged.
func (c *Context) Persisted(err error) error {
	if apperrors.Warn(err) {
		return nil
	}
	return err
}

// BackupManager returns a backup manager for the active store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	dir, err := backup.DirFor(c.Store.Location())
	if err != nil {
		return nil, err
	}
	return backup.NewManager(c.Store, dir), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Adapter.(*storage.MemoryStore); ok {
		return
	}
	mgr, err := c.BackupManager()
	if err == nil {
		_, err = mgr.CreateBackup()
	}
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// WeekStart returns the statistics week start, honoring an explicit override
// before the stored setting.
func (c *Context) WeekStart(override string) (time.Weekday, error) {
	if override != "" {
		return utils.ParseWeekStart(override)
	}
	stored := c.Store.SettingString(constants.SettingWeekStart, "")
	wd, err := utils.ParseWeekStart(stored)
	if err != nil {
		logger.Warn("Ignoring invalid week start setting", "value", stored)
		return stats.DefaultWeekStart, nil
	}
	return wd, nil
}

// ResolveDay returns today in the store's timezone, or the parsed day.
func (c *Context) ResolveDay(day string) (time.Time, error) {
	if day == "" {
		return utils.CivilDay(c.Store.Today()), nil
	}
	return utils.ParseDay(day)
}
