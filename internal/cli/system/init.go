package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by removing all habits and settings (an automatic backup is taken first)."`
	Source string `help:"Source file path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		ctx.PerformAutomaticBackup()
		if err := ctx.Persisted(ctx.Store.Reset()); err != nil {
			return fmt.Errorf("failed to reset storage: %w", err)
		}
		ctx.Printf("Reset existing data at: %s\n", ctx.Store.Location())
	}

	if err := ctx.Adapter.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitharbor storage at: %s\n", ctx.Store.Location())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully! Migrated %d habits\n", n)
	} else if n := ctx.Store.Len(); n > 0 && !c.Force {
		ctx.Printf("Storage already holds %d habits; use --force to start over.\n", n)
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	source, _, err := cli.OpenAdapter(c.Source, false)
	if err != nil {
		return 0, err
	}
	if source.GetConfigPath() == ctx.Store.Location() {
		return 0, fmt.Errorf("cannot migrate when source and destination are the same: %s", c.Source)
	}

	if err := source.Init(); err != nil {
		return 0, fmt.Errorf("failed to open source storage: %w", err)
	}
	defer source.Close()

	data, err := source.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, fmt.Errorf("source storage is empty")
		}
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}

	if ctx.Store.Len() > 0 {
		ctx.PerformAutomaticBackup()
	}
	if err := ctx.Persisted(ctx.Store.Import(data)); err != nil {
		return 0, err
	}
	return ctx.Store.Len(), nil
}
