package insights

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"openrecorder/internal/services"
)

// stubCompleter answers prompts by kind and counts every call.
type stubCompleter struct {
	calls   atomic.Int64
	summary string
	actions string
	topics  string
	err     error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	switch {
	case strings.Contains(prompt, "summarizes audio transcripts"):
		return s.summary, nil
	case strings.Contains(prompt, "action items"):
		return s.actions, nil
	case strings.Contains(prompt, "key topics"):
		return s.topics, nil
	}
	return "", errors.New("unrecognized prompt")
}

func newTestService(t *testing.T, completer Completer) (*Service, *Store) {
	t.Helper()
	store := NewStore(t.TempDir(), nil)
	return NewService(store, completer, nil), store
}

func TestSummarizeCachesResult(t *testing.T) {
	stub := &stubCompleter{summary: "the summary"}
	service, _ := newTestService(t, stub)

	got, err := service.Summarize(context.Background(), "transcript text")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "the summary" {
		t.Fatalf("summary = %q", got)
	}

	// Second call is a pure cache hit.
	if _, err := service.Summarize(context.Background(), "transcript text"); err != nil {
		t.Fatalf("Summarize again: %v", err)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Fatalf("completer called %d times, want 1", calls)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	stub := &stubCompleter{}
	service, _ := newTestService(t, stub)

	_, err := service.Summarize(context.Background(), "  \n  ")
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if stub.calls.Load() != 0 {
		t.Fatal("empty input must fail before any service call")
	}
}

func TestRecommendActionsParsesAndCaches(t *testing.T) {
	stub := &stubCompleter{actions: `[{"title": "Send recap", "description": "Email the summary"}]`}
	service, _ := newTestService(t, stub)

	actions, err := service.RecommendActions(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("RecommendActions: %v", err)
	}
	if len(actions) != 1 || actions[0].Title != "Send recap" {
		t.Fatalf("actions = %v", actions)
	}

	if _, err := service.RecommendActions(context.Background(), "transcript"); err != nil {
		t.Fatalf("RecommendActions again: %v", err)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Fatalf("completer called %d times, want 1", calls)
	}
}

func TestRecommendActionsEmptyArrayIsCached(t *testing.T) {
	stub := &stubCompleter{actions: "[]"}
	service, _ := newTestService(t, stub)

	actions, err := service.RecommendActions(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("RecommendActions: %v", err)
	}
	if actions == nil || len(actions) != 0 {
		t.Fatalf("actions = %v, want empty non-nil slice", actions)
	}

	// "No actions" is a computed result, not a miss.
	if _, err := service.RecommendActions(context.Background(), "transcript"); err != nil {
		t.Fatalf("RecommendActions again: %v", err)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Fatalf("completer called %d times, want 1", calls)
	}
}

func TestExtractKeyTopicsMalformedResponse(t *testing.T) {
	stub := &stubCompleter{topics: "no array here"}
	service, store := newTestService(t, stub)

	_, err := service.ExtractKeyTopics(context.Background(), "transcript")
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	if _, ok := store.Read(Key("transcript")); ok {
		t.Fatal("a failed fetch must not persist anything")
	}
}

func TestFieldWritesDoNotClobberEachOther(t *testing.T) {
	stub := &stubCompleter{
		summary: "the summary",
		actions: `[{"title": "t", "description": "d"}]`,
		topics:  `["a", "b"]`,
	}
	service, store := newTestService(t, stub)

	if _, err := service.Summarize(context.Background(), "transcript"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if _, err := service.ExtractKeyTopics(context.Background(), "transcript"); err != nil {
		t.Fatalf("ExtractKeyTopics: %v", err)
	}

	record, ok := store.Read(Key("transcript"))
	if !ok {
		t.Fatal("cache entry missing")
	}
	if !record.HasSummary() || !record.HasTopics() {
		t.Fatalf("record = %+v, want summary and topics both present", record)
	}
}

func TestGetInsightsCompleteCacheSkipsService(t *testing.T) {
	stub := &stubCompleter{}
	service, store := newTestService(t, stub)

	summary := "cached summary"
	key := Key("transcript")
	if err := store.Write(key, Record{
		Summary: &summary,
		Actions: []Action{},
		Topics:  []string{"x"},
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	record, err := service.GetInsights(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if !record.Complete() {
		t.Fatalf("record = %+v, want complete", record)
	}
	if stub.calls.Load() != 0 {
		t.Fatal("complete cache must produce zero service calls")
	}
}

func TestGetInsightsFetchesOnlyMissingFields(t *testing.T) {
	stub := &stubCompleter{
		actions: `[]`,
		topics:  `["a"]`,
	}
	service, store := newTestService(t, stub)

	summary := "already here"
	key := Key("transcript")
	if err := store.Write(key, Record{Summary: &summary}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	record, err := service.GetInsights(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if record.Summary == nil || *record.Summary != "already here" {
		t.Fatalf("summary = %v, want cached value preserved", record.Summary)
	}
	if calls := stub.calls.Load(); calls != 2 {
		t.Fatalf("completer called %d times, want 2 (actions and topics only)", calls)
	}
}

func TestGetInsightsAllOrNothing(t *testing.T) {
	stub := &stubCompleter{err: services.Wrap(services.ErrService, "openai", "complete", "boom", nil)}
	service, store := newTestService(t, stub)

	_, err := service.GetInsights(context.Background(), "transcript")
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("err = %v, want ErrService", err)
	}
	if _, ok := store.Read(Key("transcript")); ok {
		t.Fatal("a failed GetInsights must not persist partial results")
	}
}

func TestGetInsightsEmptyInput(t *testing.T) {
	stub := &stubCompleter{}
	service, _ := newTestService(t, stub)

	_, err := service.GetInsights(context.Background(), "")
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}
