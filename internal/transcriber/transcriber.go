package transcriber

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"openrecorder/internal/logging"
	"openrecorder/internal/metastore"
	"openrecorder/internal/services"
	"openrecorder/internal/services/openai"
	"openrecorder/internal/transcript"
)

// batchLockName is the advisory lock file under the storage root that keeps
// two batch runs from interleaving writes into managed storage.
const batchLockName = ".batch.lock"

// Service is the external transcription collaborator.
type Service interface {
	Transcribe(ctx context.Context, path string) (openai.Transcript, error)
}

// Transcriber runs transcriptions and lands their results: transcript text
// into managed storage, language and duration into the metadata store.
type Transcriber struct {
	service  Service
	resolver *transcript.Resolver
	meta     *metastore.Store
	root     string
	logger   *slog.Logger
}

// New builds a Transcriber. meta may be nil, in which case metadata is not
// persisted.
func New(service Service, resolver *transcript.Resolver, meta *metastore.Store, storageRoot string, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		service:  service,
		resolver: resolver,
		meta:     meta,
		root:     storageRoot,
		logger:   logging.NewComponentLogger(logger, "transcriber"),
	}
}

// Single transcribes one audio file and saves the transcript into managed
// storage.
func (t *Transcriber) Single(ctx context.Context, path string) (openai.Transcript, error) {
	return t.transcribeOne(ctx, path, uuid.NewString())
}

func (t *Transcriber) transcribeOne(ctx context.Context, path, runID string) (openai.Transcript, error) {
	result, err := t.service.Transcribe(ctx, path)
	if err != nil {
		return openai.Transcript{}, err
	}
	if err := t.resolver.Save(path, result.Text); err != nil {
		return openai.Transcript{}, err
	}
	t.recordMeta(ctx, path, result, runID)
	t.logger.Info("transcribed recording",
		logging.String("path", path),
		logging.String("run_id", runID),
		logging.String("language", result.Language),
		logging.Float64("duration_seconds", result.Duration))
	return result, nil
}

func (t *Transcriber) recordMeta(ctx context.Context, path string, result openai.Transcript, runID string) {
	if t.meta == nil {
		return
	}
	duration := result.Duration
	if err := t.meta.Record(ctx, path, result.Language, &duration, runID); err != nil {
		t.logger.Warn("metadata record failed",
			logging.String("path", path),
			logging.Error(err))
	}
}

// ItemResult is the outcome for one file of a batch run.
type ItemResult struct {
	Path       string
	Transcript openai.Transcript
	Err        error
}

// Batch transcribes the given files sequentially, one at a time. Sequencing
// bounds peak service load and local disk I/O; callers wanting parallelism
// must layer it themselves. Per-file failures are collected, not fatal. An
// abandoned context stops before the next file, never mid-file.
func (t *Transcriber) Batch(ctx context.Context, paths []string) ([]ItemResult, error) {
	runID := uuid.NewString()

	lock := flock.New(filepath.Join(t.root, batchLockName))
	if err := lock.Lock(); err != nil {
		return nil, services.Wrap(services.ErrStorageIO, "transcriber", "batch", "acquire batch lock", err)
	}
	defer lock.Unlock()

	t.logger.Info("batch transcription started",
		logging.String("run_id", runID),
		logging.Int("files", len(paths)))

	results := make([]ItemResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := t.transcribeOne(ctx, path, runID)
		if err != nil {
			t.logger.Warn("batch item failed",
				logging.String("run_id", runID),
				logging.String("path", path),
				logging.Error(err))
		}
		results = append(results, ItemResult{Path: path, Transcript: result, Err: err})
	}

	t.logger.Info("batch transcription finished",
		logging.String("run_id", runID),
		logging.Int("files", len(paths)))
	return results, nil
}
