package insights

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"openrecorder/internal/keymutex"
	"openrecorder/internal/logging"
	"openrecorder/internal/services"
)

// Completer is the external completion collaborator. Implementations map
// their failures onto the services error taxonomy.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service derives summaries, action items, and topics from transcript text,
// backed by the fingerprint-keyed cache. Only missing fields are fetched;
// previously computed fields always survive a write.
type Service struct {
	store     *Store
	completer Completer
	logger    *slog.Logger
	locks     keymutex.Map
}

// NewService builds a Service over the given store and completer.
func NewService(store *Store, completer Completer, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "insights"),
	}
}

// Summarize returns the summary for text, from cache when present.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", services.Wrap(services.ErrEmptyInput, "insights", "summarize", "transcript text is empty", nil)
	}
	key := Key(text)

	unlock := s.locks.Lock(key)
	defer unlock()

	cached, _ := s.store.Read(key)
	if cached.HasSummary() {
		s.logger.Debug("summary cache hit", logging.String("key", key))
		return *cached.Summary, nil
	}

	summary, err := s.fetchSummary(ctx, text)
	if err != nil {
		return "", err
	}
	s.writeBack(key, cached.Merge(Record{Summary: &summary}))
	return summary, nil
}

// RecommendActions returns the action items for text, from cache when
// present.
func (s *Service) RecommendActions(ctx context.Context, text string) ([]Action, error) {
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrEmptyInput, "insights", "recommend actions", "transcript text is empty", nil)
	}
	key := Key(text)

	unlock := s.locks.Lock(key)
	defer unlock()

	cached, _ := s.store.Read(key)
	if cached.HasActions() {
		s.logger.Debug("actions cache hit", logging.String("key", key))
		return cached.Actions, nil
	}

	actions, err := s.fetchActions(ctx, text)
	if err != nil {
		return nil, err
	}
	s.writeBack(key, cached.Merge(Record{Actions: actions}))
	return actions, nil
}

// ExtractKeyTopics returns the topic tags for text, from cache when present.
func (s *Service) ExtractKeyTopics(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrEmptyInput, "insights", "extract topics", "transcript text is empty", nil)
	}
	key := Key(text)

	unlock := s.locks.Lock(key)
	defer unlock()

	cached, _ := s.store.Read(key)
	if cached.HasTopics() {
		s.logger.Debug("topics cache hit", logging.String("key", key))
		return cached.Topics, nil
	}

	topics, err := s.fetchTopics(ctx, text)
	if err != nil {
		return nil, err
	}
	s.writeBack(key, cached.Merge(Record{Topics: topics}))
	return topics, nil
}

// GetInsights returns the complete record for text. Missing fields are
// fetched concurrently; the call is all-or-nothing, so a single field
// failure fails the whole call and persists nothing. Fields that were
// already cached are reused without any external call.
func (s *Service) GetInsights(ctx context.Context, text string) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return Record{}, services.Wrap(services.ErrEmptyInput, "insights", "get insights", "transcript text is empty", nil)
	}
	key := Key(text)

	unlock := s.locks.Lock(key)
	defer unlock()

	cached, _ := s.store.Read(key)
	if cached.Complete() {
		s.logger.Debug("insights cache hit", logging.String("key", key))
		return cached, nil
	}

	update, err := s.fetchMissing(ctx, text, cached)
	if err != nil {
		return Record{}, err
	}

	merged := cached.Merge(update)
	s.writeBack(key, merged)
	return merged, nil
}

// fetchMissing fans out one fetch per missing field and joins the results.
// All fetches run to completion; the first error wins and no partial update
// is surfaced.
func (s *Service) fetchMissing(ctx context.Context, text string, cached Record) (Record, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		update Record
		first  error
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil && first == nil {
			first = err
		}
	}

	if !cached.HasSummary() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := s.fetchSummary(ctx, text)
			if err == nil {
				mu.Lock()
				update.Summary = &summary
				mu.Unlock()
			}
			record(err)
		}()
	}
	if !cached.HasActions() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actions, err := s.fetchActions(ctx, text)
			if err == nil {
				mu.Lock()
				update.Actions = actions
				mu.Unlock()
			}
			record(err)
		}()
	}
	if !cached.HasTopics() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			topics, err := s.fetchTopics(ctx, text)
			if err == nil {
				mu.Lock()
				update.Topics = topics
				mu.Unlock()
			}
			record(err)
		}()
	}

	wg.Wait()
	if first != nil {
		return Record{}, first
	}
	return update, nil
}

func (s *Service) fetchSummary(ctx context.Context, text string) (string, error) {
	response, err := s.completer.Complete(ctx, summaryPrompt(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (s *Service) fetchActions(ctx context.Context, text string) ([]Action, error) {
	response, err := s.completer.Complete(ctx, actionsPrompt(text))
	if err != nil {
		return nil, err
	}
	var actions []Action
	if err := parseArray("recommend actions", response, &actions); err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []Action{}
	}
	return actions, nil
}

func (s *Service) fetchTopics(ctx context.Context, text string) ([]string, error) {
	response, err := s.completer.Complete(ctx, topicsPrompt(text))
	if err != nil {
		return nil, err
	}
	var topics []string
	if err := parseArray("extract topics", response, &topics); err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []string{}
	}
	return topics, nil
}

// writeBack persists the merged record. Cache writes are best-effort and
// never block returning a freshly computed result.
func (s *Service) writeBack(key string, record Record) {
	if err := s.store.Write(key, record); err != nil {
		s.logger.Warn("cache write failed, result not persisted",
			logging.String("key", key),
			logging.Error(err))
	}
}
