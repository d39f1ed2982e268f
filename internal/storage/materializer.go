package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"openrecorder/internal/fileutil"
	"openrecorder/internal/keymutex"
	"openrecorder/internal/logging"
	"openrecorder/internal/services"
)

const (
	transcriptFileName = "transcript.txt"
	audioFileStem      = "audio"
	fallbackExt        = "bin"
)

// Manager materializes managed recording directories on disk. All writes
// into the storage root go through it.
type Manager struct {
	locator *Locator
	logger  *slog.Logger
	locks   keymutex.Map
}

// NewManager builds a Manager over the given locator.
func NewManager(locator *Locator, logger *slog.Logger) *Manager {
	return &Manager{
		locator: locator,
		logger:  logging.NewComponentLogger(logger, "storage"),
	}
}

// Locator exposes the underlying pure path mapping.
func (m *Manager) Locator() *Locator { return m.locator }

// EnsureAudioDir guarantees the managed directory for sourcePath exists and
// contains a copy of the source audio as audio.<ext>. Repeated calls are
// idempotent: an existing copy is never rewritten. The check-then-copy
// sequence is serialized per managed directory, so concurrent callers for
// the same source perform exactly one copy.
func (m *Manager) EnsureAudioDir(sourcePath string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrFileNotFound, "storage", "ensure audio dir", sourcePath, nil)
		}
		return "", services.Wrap(services.ErrStorageIO, "storage", "ensure audio dir", "stat source", err)
	}

	managedPath := m.locator.ManagedPath(sourcePath)

	unlock := m.locks.Lock(managedPath)
	defer unlock()

	if err := os.MkdirAll(managedPath, 0o755); err != nil {
		return "", services.Wrap(services.ErrStorageIO, "storage", "ensure audio dir", "create directory", err)
	}

	dest := filepath.Join(managedPath, audioFileName(sourcePath))
	if fileutil.FileExists(dest) {
		return managedPath, nil
	}

	if err := fileutil.CopyFile(sourcePath, dest); err != nil {
		return "", services.Wrap(services.ErrStorageIO, "storage", "ensure audio dir", "copy audio", err)
	}
	m.logger.Debug("materialized managed audio",
		logging.String("source", sourcePath),
		logging.String("dest", dest))
	return managedPath, nil
}

func audioFileName(sourcePath string) string {
	ext := strings.TrimPrefix(filepath.Ext(sourcePath), ".")
	if ext == "" {
		ext = fallbackExt
	}
	return fmt.Sprintf("%s.%s", audioFileStem, ext)
}

// ListManagedRecordings returns the names of all managed recording
// directories, sorted. A missing audios directory yields an empty list.
func (m *Manager) ListManagedRecordings() ([]string, error) {
	entries, err := os.ReadDir(m.locator.AudiosDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrStorageIO, "storage", "list recordings", "", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
