package transcript

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"openrecorder/internal/fileutil"
	"openrecorder/internal/logging"
	"openrecorder/internal/services"
	"openrecorder/internal/storage"
)

// Resolver reads and writes transcripts for source recordings. Reads fall
// back to legacy sidecar files and migrate them into managed storage; writes
// are forward-only into managed storage.
type Resolver struct {
	manager *storage.Manager
	logger  *slog.Logger
}

// NewResolver builds a Resolver over the storage manager.
func NewResolver(manager *storage.Manager, logger *slog.Logger) *Resolver {
	return &Resolver{
		manager: manager,
		logger:  logging.NewComponentLogger(logger, "transcript"),
	}
}

// SidecarPath returns the legacy transcript location next to the original
// audio file: the source path with its extension replaced by .txt.
func SidecarPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".txt"
}

// Resolve returns the transcript text for sourcePath. The managed transcript
// wins; a legacy sidecar is read, copied into managed storage, and left in
// place. ErrFileNotFound is returned when neither exists.
func (r *Resolver) Resolve(sourcePath string) (string, error) {
	managedDir, err := r.manager.EnsureAudioDir(sourcePath)
	if err != nil {
		return "", err
	}

	managedPath := filepath.Join(managedDir, "transcript.txt")
	if data, err := os.ReadFile(managedPath); err == nil {
		return string(data), nil
	}

	sidecar := SidecarPath(sourcePath)
	data, err := os.ReadFile(sidecar)
	if err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrFileNotFound, "transcript", "resolve", "no transcript for "+sourcePath, nil)
		}
		return "", services.Wrap(services.ErrStorageIO, "transcript", "resolve", "read sidecar", err)
	}

	// Write-through migration. Failing to migrate fails the read: serving
	// content the managed tree does not hold would leave the library split
	// across layouts indefinitely.
	if err := os.WriteFile(managedPath, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrStorageIO, "transcript", "resolve", "migrate sidecar", err)
	}
	r.logger.Info("migrated sidecar transcript",
		logging.String("source", sourcePath),
		logging.String("managed", managedPath))
	return string(data), nil
}

// Save writes text as the managed transcript for sourcePath. Legacy sidecar
// files are never written.
func (r *Resolver) Save(sourcePath, text string) error {
	managedDir, err := r.manager.EnsureAudioDir(sourcePath)
	if err != nil {
		return err
	}
	managedPath := filepath.Join(managedDir, "transcript.txt")
	if err := os.WriteFile(managedPath, []byte(text), 0o644); err != nil {
		return services.Wrap(services.ErrStorageIO, "transcript", "save", "", err)
	}
	return nil
}

// Has reports whether a transcript exists in either the managed location or
// the legacy sidecar location. It is strictly read-only: no migration, no
// directory materialization. Analytics scans call this per file and must not
// mutate storage.
func (r *Resolver) Has(sourcePath string) bool {
	if fileutil.FileExists(r.manager.Locator().TranscriptPath(sourcePath)) {
		return true
	}
	return fileutil.FileExists(SidecarPath(sourcePath))
}

// Path returns the path of the existing transcript for sourcePath, managed
// location first, and ok=false when neither location has one. Read-only.
func (r *Resolver) Path(sourcePath string) (string, bool) {
	managed := r.manager.Locator().TranscriptPath(sourcePath)
	if fileutil.FileExists(managed) {
		return managed, true
	}
	sidecar := SidecarPath(sourcePath)
	if fileutil.FileExists(sidecar) {
		return sidecar, true
	}
	return "", false
}
