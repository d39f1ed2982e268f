package library

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"openrecorder/internal/fingerprint"
	"openrecorder/internal/logging"
	"openrecorder/internal/services"
)

// audioExtensions lists the file types a library scan picks up, matched
// case-insensitively.
var audioExtensions = map[string]struct{}{
	"mp3": {},
	"m4a": {},
	"wav": {},
}

// Item is one audio file discovered by a scan. Items are ephemeral:
// recomputed on every pass, never persisted.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Size     int64    `json:"size"`
	MTime    int64    `json:"mtime"`
	Duration *float64 `json:"duration"`
}

// DurationFunc probes the duration of an audio file in seconds. ok=false
// means unknown.
type DurationFunc func(ctx context.Context, path string) (float64, bool)

// Scanner enumerates audio files under a folder.
type Scanner struct {
	duration DurationFunc
	logger   *slog.Logger
}

// NewScanner builds a Scanner. A nil duration function leaves every item's
// duration unknown.
func NewScanner(duration DurationFunc, logger *slog.Logger) *Scanner {
	if duration == nil {
		duration = func(context.Context, string) (float64, bool) { return 0, false }
	}
	return &Scanner{
		duration: duration,
		logger:   logging.NewComponentLogger(logger, "library"),
	}
}

// Scan recursively enumerates audio files under folder. Unreadable
// subdirectories are skipped rather than aborting the whole scan; an
// unreadable top-level folder is an error.
func (s *Scanner) Scan(ctx context.Context, folder string) ([]Item, error) {
	if _, err := os.ReadDir(folder); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrFileNotFound, "library", "scan", folder, nil)
		}
		return nil, services.Wrap(services.ErrStorageIO, "library", "scan", folder, err)
	}

	var items []Item
	err := filepath.WalkDir(folder, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.logger.Debug("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(walkErr))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := audioExtensions[ext]; !ok {
			return nil
		}
		item, err := s.itemFor(ctx, path)
		if err != nil {
			// File vanished or became unreadable mid-scan; skip it.
			s.logger.Debug("skipping unreadable file",
				logging.String("path", path),
				logging.Error(err))
			return nil
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "library", "scan", folder, err)
	}
	return items, nil
}

// ReadFileMeta stats a single audio file and probes its duration.
func (s *Scanner) ReadFileMeta(ctx context.Context, path string) (Item, error) {
	item, err := s.itemFor(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Item{}, services.Wrap(services.ErrFileNotFound, "library", "read file meta", path, nil)
		}
		return Item{}, services.Wrap(services.ErrStorageIO, "library", "read file meta", path, err)
	}
	return item, nil
}

func (s *Scanner) itemFor(ctx context.Context, path string) (Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Item{}, err
	}
	item := Item{
		ID:    fingerprint.SumString(path),
		Name:  filepath.Base(path),
		Path:  path,
		Size:  info.Size(),
		MTime: info.ModTime().Unix(),
	}
	if seconds, ok := s.duration(ctx, path); ok {
		item.Duration = &seconds
	}
	return item, nil
}
