package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/storage"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, b.Name(), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := locate(c.BackupFile, mgr.Resolve(c.BackupFile))
	if err != nil {
		return fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace all habits and settings with the backup.")
		ctx.Println("⚠️  IMPORTANT: Close any running habitharbor TUI before restoring.")
		ctx.Println("A backup of your current habits will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err := ctx.Persisted(err); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Printf("✓ Restored %d habit(s) from %s\n", ctx.Store.Len(), filepath.Base(backupPath))
	ctx.Printf("  Previous state saved as %s\n", filepath.Base(safety))
	return nil
}

// locate prefers a file in the working directory and falls back to the
// backup directory.
func locate(ref, inBackupDir string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return filepath.Abs(ref)
	}
	if _, err := os.Stat(inBackupDir); err != nil {
		return "", err
	}
	return inBackupDir, nil
}

type ExportCmd struct {
	Path string `arg:"" help:"File to write, or - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Path == "-" {
		ctx.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %d habit(s) to %s\n", ctx.Store.Len(), c.Path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"Exported file or backup to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	doc, err := storage.Decode(data)
	if err != nil {
		return fmt.Errorf("import file is corrupted or invalid: %w", err)
	}

	if !c.Yes {
		prompt := fmt.Sprintf("Replace %d current habit(s) with %d from %s?", ctx.Store.Len(), len(doc.Habits), filepath.Base(c.Path))
		ok, err := ctx.Confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Persisted(ctx.Store.Import(data)); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %d habit(s)\n", ctx.Store.Len())
	return nil
}
