package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/cli/backups"
	"github.com/julianstephens/habitharbor/internal/cli/habits"
	"github.com/julianstephens/habitharbor/internal/cli/settings"
	"github.com/julianstephens/habitharbor/internal/cli/system"
	"github.com/julianstephens/habitharbor/internal/constants"
	apperrors "github.com/julianstephens/habitharbor/internal/errors"
	core "github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Storage path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"${config}" env:"HABITHARBOR_CONFIG"`
	Debug     bool   `help:"Mirror debug logs to stderr." env:"HABITHARBOR_DEBUG"`
	Ephemeral bool   `help:"Keep habits in memory only; nothing is saved."`
	TZ        string `name:"tz" help:"IANA timezone that decides which day is today for this run (defaults to the timezone setting, then Local)."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitharbor storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit  habits.HabitCmd  `cmd:"" help:"Manage habits and habit tracking."`
	Stats  habits.StatsCmd  `cmd:"" help:"Show weekly completion and habit performance."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage habit backups."`
	Export   backups.ExportCmd    `cmd:"" help:"Export habits and settings as JSON."`
	Import   backups.ImportCmd    `cmd:"" help:"Replace habits and settings from an exported JSON file."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send a reminder notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits, streaks and weekly progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)
	command := ctx.Command()

	adapter, kind, err := cli.OpenAdapter(CLI.Config, CLI.Ephemeral)
	if err != nil {
		// Keyring commands exist to fix a missing connection string
		if !strings.HasPrefix(command, "keyring") {
			apperrors.Fatal(err)
		}
		adapter = storage.NewMemoryStore()
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cli.ConfigDir(adapter)}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", command, "storage", kind, "location", adapter.GetConfigPath())

	loc, err := utils.LoadLocation(CLI.TZ)
	if err != nil {
		apperrors.Fatalf("invalid timezone %q: %v", CLI.TZ, err)
	}

	appCtx := &cli.Context{Adapter: adapter}
	opts := []core.Option{
		core.WithLocation(loc),
		core.WithWarningHandler(appCtx.HandleWarning),
	}
	if strings.HasPrefix(command, "tui") {
		opts = append(opts, core.WithAsyncSave())
	}
	store := core.New(adapter, opts...)
	appCtx.Store = store

	if err := store.Open(); err != nil {
		// Doctor reports unreachable storage itself
		if !strings.HasPrefix(command, "doctor") {
			apperrors.Fatal(err)
		}
		logger.Warn("Storage unavailable", "error", err)
	}
	defer store.Close()

	if CLI.TZ == "" {
		if tz := store.SettingString(constants.SettingTimezone, ""); tz != "" {
			if loc, err := utils.LoadLocation(tz); err == nil {
				store.SetLocation(loc)
			} else {
				logger.Warn("Ignoring invalid timezone setting", "timezone", tz, "error", err)
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
