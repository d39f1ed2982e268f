package insights

import (
	"errors"
	"testing"

	"openrecorder/internal/services"
)

func TestParseArrayStrict(t *testing.T) {
	var topics []string
	if err := parseArray("extract topics", `["a", "b"]`, &topics); err != nil {
		t.Fatalf("parseArray: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("topics = %v", topics)
	}
}

func TestParseArrayWrappedInProse(t *testing.T) {
	response := "Here are the topics:\n[\"planning\", \"budget\"]\nHope that helps!"

	var topics []string
	if err := parseArray("extract topics", response, &topics); err != nil {
		t.Fatalf("parseArray: %v", err)
	}
	if len(topics) != 2 || topics[0] != "planning" {
		t.Fatalf("topics = %v", topics)
	}
}

func TestParseArrayActions(t *testing.T) {
	response := `[{"title": "Send notes", "description": "Share the recap"}]`

	var actions []Action
	if err := parseArray("recommend actions", response, &actions); err != nil {
		t.Fatalf("parseArray: %v", err)
	}
	if len(actions) != 1 || actions[0].Title != "Send notes" {
		t.Fatalf("actions = %v", actions)
	}
}

func TestParseArrayMalformed(t *testing.T) {
	var topics []string
	err := parseArray("extract topics", "I could not find any topics.", &topics)
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestParseArrayBracketsButInvalid(t *testing.T) {
	var topics []string
	err := parseArray("extract topics", "[not json]", &topics)
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}
