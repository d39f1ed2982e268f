package insights

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"openrecorder/internal/fingerprint"
	"openrecorder/internal/logging"
)

// Key derives the cache key for transcript text. The text is trimmed first
// so whitespace-only variations of the same transcript share one entry.
func Key(text string) string {
	return fingerprint.SumString(strings.TrimSpace(text))
}

// Store persists insights records as one file per fingerprint under the
// summaries directory. The cache is an optimization, not a source of truth:
// read failures degrade to a miss and write failures are for the caller to
// swallow.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore builds a Store writing into dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "insights-cache"),
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".txt")
}

// Read returns the cached record for key and whether one was found. A file
// that exists but cannot be read counts as a miss.
func (s *Store) Read(key string) (Record, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache read failed, treating as miss",
				logging.String("key", key),
				logging.Error(err))
		}
		return Record{}, false
	}
	return decodeCacheFile(data), true
}

// Write persists the full record for key, creating the cache directory if
// absent. The write is atomic via a temp file rename.
func (s *Store) Write(key string, record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// cacheFile is the tagged union of the two on-disk formats: the structured
// JSON record written by current releases, and the legacy raw summary text
// written before the record format existed.
type cacheFile struct {
	structured bool
	record     Record
	legacy     string
}

func decodeCache(data []byte) cacheFile {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var record Record
		if err := json.Unmarshal([]byte(trimmed), &record); err == nil {
			return cacheFile{structured: true, record: record}
		}
	}
	return cacheFile{legacy: string(data)}
}

func decodeCacheFile(data []byte) Record {
	decoded := decodeCache(data)
	if decoded.structured {
		return decoded.record
	}
	legacy := decoded.legacy
	return Record{Summary: &legacy}
}
