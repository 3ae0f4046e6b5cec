package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/storage"
)

// Snapshotter produces and accepts whole-collection blobs. *habits.Store
// satisfies it.
type Snapshotter interface {
	Export() ([]byte, error)
	Import(data []byte) error
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Name returns the backup file name.
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager handles backup operations
type Manager struct {
	source    Snapshotter
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager that keeps snapshots of source in
// backupDir.
func NewManager(source Snapshotter, backupDir string) *Manager {
	return &Manager{
		source:    source,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// DirFor returns the backup directory for a storage location. File-backed
// stores keep backups beside the data file; other stores use the user config
// directory.
func DirFor(location string) (string, error) {
	if filepath.IsAbs(location) {
		return filepath.Join(filepath.Dir(location), constants.BackupDirName), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AppName, constants.BackupDirName), nil
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup writes a snapshot of the current collection and rotates old
// backups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called during a restore, so the safety
// snapshot never pushes out the backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := m.source.Export()
	if err != nil {
		return "", fmt.Errorf("failed to export habits: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Created backup", "path", backupPath, "bytes", len(data))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks a free file name, widening the timestamp to seconds and
// then adding a counter on collisions.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+ts+constants.BackupFileSuffix)
	}

	path := name(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}

	ts := now.Format("20060102-150405")
	path = name(ts)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", ts, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseTimestamp extracts the time from a backup file name, ignoring any
// collision counter.
func parseTimestamp(name string) (time.Time, bool) {
	ts := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(ts, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		ts = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestamp, ok := parseTimestamp(name)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	// Newest first; names break ties so counters sort after their base.
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}

	return nil
}

// Resolve turns a backup name or path into a path. Bare names are looked up in
// the backup directory.
func (m *Manager) Resolve(ref string) string {
	if filepath.IsAbs(ref) || strings.ContainsRune(ref, os.PathSeparator) {
		return ref
	}
	return filepath.Join(m.backupDir, ref)
}

// RestoreBackup replaces the collection with the backup's contents. A safety
// backup of the current state is written first; its path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("backup file does not exist: %s", backupPath)
		}
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	if _, err := storage.Decode(data); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	safety, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current habits before restore: %w", err)
	}

	if err := m.source.Import(data); err != nil {
		return safety, fmt.Errorf("failed to restore backup: %w", err)
	}
	logger.Info("Restored backup", "path", backupPath, "safety", safety)
	return safety, nil
}

// Verify checks that a backup file holds a readable blob.
func (m *Manager) Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = storage.Decode(data)
	return err
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
