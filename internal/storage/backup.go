package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// BackupManager creates and lists backups of the storefront database.
type BackupManager struct {
	dbPath    string
	backupDir string
}

// NewBackupManager creates a backup manager. An empty backupDir defaults to
// a "backups" subdirectory next to the database file.
func NewBackupManager(dbPath, backupDir string) *BackupManager {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(dbPath), "backups")
	}
	return &BackupManager{dbPath: dbPath, backupDir: backupDir}
}

// Backup creates a timestamped backup. It uses VACUUM INTO, which is atomic
// and does not need an exclusive lock, falling back to a file copy on
// older SQLite builds.
func (bm *BackupManager) Backup() (string, error) {
	if err := os.MkdirAll(bm.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(bm.backupDir, name)

	source, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("open source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	if _, err := source.Exec(fmt.Sprintf("VACUUM INTO %q", backupPath)); err != nil {
		if copyErr := bm.backupByCopy(backupPath); copyErr != nil {
			return "", copyErr
		}
	}

	if err := bm.verify(backupPath); err != nil {
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("backup verification failed: %w", err)
	}
	return backupPath, nil
}

// backupByCopy copies the database file directly.
func (bm *BackupManager) backupByCopy(backupPath string) error {
	source, err := os.Open(bm.dbPath)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, source); err != nil {
		_ = os.Remove(backupPath)
		return fmt.Errorf("copy database file: %w", err)
	}
	return nil
}

// verify checks that the backup opens and passes an integrity check.
func (bm *BackupManager) verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check returned %q", result)
	}
	return nil
}

// List returns backup file paths, newest first.
func (bm *BackupManager) List() ([]string, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".db" {
			paths = append(paths, filepath.Join(bm.backupDir, entry.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// Prune deletes all but the newest keep backups.
func (bm *BackupManager) Prune(keep int) error {
	if keep < 0 {
		return fmt.Errorf("keep must be non-negative, got %d", keep)
	}
	paths, err := bm.List()
	if err != nil {
		return err
	}
	for _, path := range paths[min(keep, len(paths)):] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old backup %s: %w", path, err)
		}
	}
	return nil
}
