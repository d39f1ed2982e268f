package insights

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"openrecorder/internal/testsupport"
)

func strPtr(s string) *string { return &s }

func TestKeyTrimsWhitespace(t *testing.T) {
	if Key("hello") != Key("  hello \n") {
		t.Fatal("whitespace variants must share one cache key")
	}
	if Key("hello") == Key("goodbye") {
		t.Fatal("distinct transcripts must not collide")
	}
}

func TestReadMissingEntry(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	if _, ok := store.Read(Key("nothing")); ok {
		t.Fatal("Read reported a hit on an empty cache")
	}
}

func TestWriteThenRead(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "summaries"), nil)

	key := Key("transcript")
	record := Record{
		Summary: strPtr("short summary"),
		Actions: []Action{{Title: "Follow up", Description: "Email the team"}},
		Topics:  []string{"planning"},
	}
	if err := store.Write(key, record); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, ok := store.Read(key)
	if !ok {
		t.Fatal("Read missed a freshly written record")
	}
	if got.Summary == nil || *got.Summary != "short summary" {
		t.Fatalf("summary = %v", got.Summary)
	}
	if len(got.Actions) != 1 || got.Actions[0].Title != "Follow up" {
		t.Fatalf("actions = %v", got.Actions)
	}
	if len(got.Topics) != 1 || got.Topics[0] != "planning" {
		t.Fatalf("topics = %v", got.Topics)
	}
}

func TestWriteThenReadKeepsComputedEmptyFields(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	// "Computed, none found" must survive the round trip; a dropped empty
	// slice would look like a miss and trigger a refetch on every call.
	key := Key("quiet transcript")
	if err := store.Write(key, Record{Actions: []Action{}, Topics: []string{}}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, ok := store.Read(key)
	if !ok {
		t.Fatal("Read missed the record")
	}
	if !got.HasActions() || !got.HasTopics() {
		t.Fatalf("record = %+v, want empty fields still present", got)
	}
	if got.HasSummary() {
		t.Fatal("absent summary must stay absent")
	}
}

func TestReadLegacyRawSummary(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	key := Key("old transcript")
	testsupport.WriteFile(t, filepath.Join(dir, key+".txt"), "plain legacy summary text")

	got, ok := store.Read(key)
	if !ok {
		t.Fatal("Read missed the legacy entry")
	}
	if got.Summary == nil || *got.Summary != "plain legacy summary text" {
		t.Fatalf("summary = %v, want legacy text", got.Summary)
	}
	if got.HasActions() || got.HasTopics() {
		t.Fatal("legacy entries carry only a summary")
	}
}

func TestReadMalformedJSONFallsBackToLegacy(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	key := Key("broken")
	testsupport.WriteFile(t, filepath.Join(dir, key+".txt"), "{not valid json")

	got, ok := store.Read(key)
	if !ok {
		t.Fatal("Read missed the entry")
	}
	if got.Summary == nil || *got.Summary != "{not valid json" {
		t.Fatalf("summary = %v, want raw content as legacy summary", got.Summary)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	if err := store.Write(Key("x"), Record{Summary: strPtr("s")}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestMergePreservesPopulatedFields(t *testing.T) {
	base := Record{Summary: strPtr("summary"), Topics: []string{"a"}}
	update := Record{Actions: []Action{{Title: "t"}}}

	merged := base.Merge(update)
	if merged.Summary == nil || *merged.Summary != "summary" {
		t.Fatal("merge dropped the summary")
	}
	if len(merged.Topics) != 1 {
		t.Fatal("merge dropped the topics")
	}
	if len(merged.Actions) != 1 {
		t.Fatal("merge ignored the update")
	}
}

func TestMergeEmptySliceIsPresent(t *testing.T) {
	base := Record{Actions: []Action{{Title: "old"}}}
	update := Record{Actions: []Action{}}

	merged := base.Merge(update)
	if len(merged.Actions) != 0 {
		t.Fatal("an empty computed slice must replace the old value")
	}
	if !merged.HasActions() {
		t.Fatal("empty computed slice still counts as present")
	}
}

func TestCompleteRequiresAllFields(t *testing.T) {
	record := Record{Summary: strPtr("s"), Actions: []Action{}}
	if record.Complete() {
		t.Fatal("record missing topics reported complete")
	}
	record.Topics = []string{}
	if !record.Complete() {
		t.Fatal("record with all fields present reported incomplete")
	}
}
