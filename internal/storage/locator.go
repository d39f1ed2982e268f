package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"openrecorder/internal/fingerprint"
	"openrecorder/internal/services"
)

const (
	// appDirName is the fixed subdirectory under the local application data
	// directory. Other tooling depends on this name; do not change it.
	appDirName = "open-recorder"

	// audiosDirName holds one managed directory per source recording.
	audiosDirName = "audios"

	// summariesDirName holds the insights cache files.
	summariesDirName = "summaries"

	// hashSuffixLen is the number of fingerprint hex characters appended to
	// the managed directory name. Six characters is a deliberate brevity
	// choice carried over from the existing on-disk layout; collisions are
	// theoretically possible and not disambiguated.
	hashSuffixLen = 6
)

// ResolveRoot returns the managed storage root. An explicit override wins;
// otherwise the per-user local application data directory is resolved and
// joined with the application subdirectory.
func ResolveRoot(override string) (string, error) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed, nil
	}
	base, err := localDataDir()
	if err != nil {
		return "", services.Wrap(services.ErrHostUnavailable, "storage", "resolve root", "", err)
	}
	return filepath.Join(base, appDirName), nil
}

func localDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "AppData", "Local"), nil
}

// DirName derives the managed directory name for a source path:
// "<stem>-<hash6>", where the hash covers the full path string. The result
// is a pure function of the path string, never of file content or mtime, so
// a recording keeps its managed directory as long as it does not move.
func DirName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%s", stem, fingerprint.Short(sourcePath, hashSuffixLen))
}

// Locator maps source paths onto the managed storage layout. It never
// touches the filesystem.
type Locator struct {
	root string
}

// NewLocator builds a Locator rooted at the given storage root.
func NewLocator(root string) *Locator {
	return &Locator{root: root}
}

// Root returns the storage root this locator was built with.
func (l *Locator) Root() string { return l.root }

// AudiosDir returns the directory holding all managed recording directories.
func (l *Locator) AudiosDir() string {
	return filepath.Join(l.root, audiosDirName)
}

// SummariesDir returns the insights cache directory.
func (l *Locator) SummariesDir() string {
	return filepath.Join(l.root, summariesDirName)
}

// ManagedPath returns the managed directory for a source recording.
func (l *Locator) ManagedPath(sourcePath string) string {
	return filepath.Join(l.AudiosDir(), DirName(sourcePath))
}

// TranscriptPath returns the managed transcript location for a source
// recording. The file may or may not exist.
func (l *Locator) TranscriptPath(sourcePath string) string {
	return filepath.Join(l.ManagedPath(sourcePath), transcriptFileName)
}
