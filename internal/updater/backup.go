package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/version"
)

const (
	backupFilename     = "cpx-pomodoro.backup"
	backupInfoFilename = "backup.json"
)

type backupInfo struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	ExecPath  string    `json:"exec_path"`
}

// backupManager keeps one copy of the previous binary plus a metadata
// file, so a bad update can be undone.
type backupManager struct {
	backupDir string
	info      *backupInfo
	logger    *slog.Logger
}

func newBackupManager(dir string, logger *slog.Logger) (*backupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	mgr := &backupManager{
		backupDir: dir,
		logger:    logger,
	}
	mgr.loadInfo()
	return mgr, nil
}

// loadInfo picks up the metadata of a backup left by a previous run.
func (m *backupManager) loadInfo() {
	data, err := os.ReadFile(filepath.Join(m.backupDir, backupInfoFilename))
	if err != nil {
		return // No backup exists
	}

	var info backupInfo
	if err := json.Unmarshal(data, &info); err != nil {
		m.logger.Warn("Failed to parse backup info", "error", err)
		return
	}

	// The metadata is only as good as the binary next to it
	backupPath := filepath.Join(m.backupDir, backupFilename)
	if _, err := os.Stat(backupPath); err != nil {
		m.logger.Warn("Backup file missing", "path", backupPath)
		return
	}

	m.info = &info
	m.logger.Debug("Loaded backup info", "version", info.Version)
}

// create copies the running binary into the backup directory and
// records its version and location.
func (m *backupManager) create() error {
	execPath, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	backupPath := filepath.Join(m.backupDir, backupFilename)
	if err := copyFile(execPath, backupPath); err != nil {
		return err
	}

	info := backupInfo{
		Version:   version.Version,
		CreatedAt: time.Now(),
		ExecPath:  execPath,
	}
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal backup info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.backupDir, backupInfoFilename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup info: %w", err)
	}

	m.info = &info
	m.logger.Info("Backup created", "version", info.Version, "path", backupPath)
	return nil
}

// restore copies the backup over the binary it was taken from.
func (m *backupManager) restore() error {
	if m.info == nil {
		return ErrNoBackup
	}

	backupPath := filepath.Join(m.backupDir, backupFilename)
	if err := copyFile(backupPath, m.info.ExecPath); err != nil {
		return err
	}

	m.logger.Info("Backup restored", "version", m.info.Version)
	return nil
}

func (m *backupManager) hasBackup() bool {
	return m.info != nil
}

func (m *backupManager) version() string {
	if m.info == nil {
		return ""
	}
	return m.info.Version
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", from, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", to, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", from, err)
	}
	return nil
}
