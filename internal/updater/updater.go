// Package updater replaces the running binary with the latest GitHub
// release. It backs the current binary up first and restores it when a
// replace fails partway.
package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/version"
)

var (
	// ErrNoReleases means the repository has no published releases.
	ErrNoReleases = errors.New("updater: no releases found")
	// ErrNoBackup means a rollback was requested with nothing to restore.
	ErrNoBackup = errors.New("updater: no backup available")
)

// Options configures the updater.
type Options struct {
	Repository string // GitHub repo slug, e.g. "SebastiaanZ/cpx-pomodoro"
	Prerelease bool   // Whether to include prereleases
}

// UpdateInfo describes the outcome of a release check.
type UpdateInfo struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	ReleaseNotes    string    `json:"release_notes,omitempty"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitzero"`
	UpdateAvailable bool      `json:"update_available"`
}

// Updater checks for and applies releases of this binary.
type Updater struct {
	repository selfupdate.Repository
	updater    *selfupdate.Updater
	backups    *backupManager
	logger     *slog.Logger
}

// New creates an updater for the given repository. It fails when the
// running binary cannot be replaced in place.
func New(opts *Options) (*Updater, error) {
	logger := logging.GetLogger("updater")

	if err := canReplaceExecutable(); err != nil {
		return nil, err
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	backups, err := newBackupManager(defaultBackupDir(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare backup directory: %w", err)
	}

	return &Updater{
		repository: selfupdate.ParseSlug(opts.Repository),
		updater:    updater,
		backups:    backups,
		logger:     logger,
	}, nil
}

// canReplaceExecutable verifies the directory holding the running
// binary is writable, by creating and removing a probe file there.
func canReplaceExecutable() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	probe := filepath.Join(filepath.Dir(exe), ".cpx-pomodoro.update.test")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("no write permission to %s: %w", filepath.Dir(exe), err)
	}
	f.Close()
	os.Remove(probe)
	return nil
}

// Check queries GitHub for the latest release and compares it against
// the running version without downloading anything.
func (u *Updater) Check(ctx context.Context) (*UpdateInfo, error) {
	info, _, err := u.check(ctx)
	return info, err
}

// Apply downloads the latest release and replaces the running binary.
// The current binary is backed up first; a failed replace restores it.
func (u *Updater) Apply(ctx context.Context) (*UpdateInfo, error) {
	info, release, err := u.check(ctx)
	if err != nil {
		return nil, err
	}
	if !info.UpdateAvailable {
		return info, nil
	}

	if err := u.backups.create(); err != nil {
		return nil, fmt.Errorf("failed to back up current binary: %w", err)
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := u.updater.UpdateTo(ctx, release, exe); err != nil {
		u.attemptRollback()
		return nil, fmt.Errorf("failed to apply update: %w", err)
	}

	u.logger.Info("Update applied", "version", info.LatestVersion)
	return info, nil
}

// Rollback restores the previously backed up binary.
func (u *Updater) Rollback() error {
	if !u.backups.hasBackup() {
		return ErrNoBackup
	}
	if err := u.backups.restore(); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	u.logger.Info("Rollback completed", "version", u.backups.version())
	return nil
}

// BackupVersion returns the version string of the stored backup, empty
// when none exists.
func (u *Updater) BackupVersion() string {
	return u.backups.version()
}

func (u *Updater) check(ctx context.Context) (*UpdateInfo, *selfupdate.Release, error) {
	release, found, err := u.updater.DetectLatest(ctx, u.repository)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, nil, ErrNoReleases
	}

	current := version.Version
	info := &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  release.Version(),
		// A dev build is always considered outdated
		UpdateAvailable: current == "dev" || release.GreaterThan(current),
	}
	if info.UpdateAvailable {
		info.ReleaseNotes = release.ReleaseNotes
		info.ReleaseURL = release.URL
		info.PublishedAt = release.PublishedAt
	}
	return info, release, nil
}

func (u *Updater) attemptRollback() {
	if !u.backups.hasBackup() {
		u.logger.Error("No backup available for automatic rollback")
		return
	}
	if err := u.backups.restore(); err != nil {
		u.logger.Error("Failed to restore backup", "error", err)
		return
	}
	u.logger.Info("Automatic rollback completed")
}

// defaultBackupDir is ~/.cache/cpx-pomodoro/backup, falling back to the
// temp dir when the home directory is unknown.
func defaultBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cpx-pomodoro", "backup")
	}
	return filepath.Join(home, ".cache", "cpx-pomodoro", "backup")
}
