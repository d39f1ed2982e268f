package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrFileNotFound, "storage", "ensure audio dir", "/music/a.mp3", nil)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("err = %v, not classified as ErrFileNotFound", err)
	}
	for _, part := range []string{"storage", "ensure audio dir", "/music/a.mp3"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("err = %v, missing %q", err, part)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrStorageIO, "storage", "copy audio", "", cause)
	if !errors.Is(err, ErrStorageIO) {
		t.Fatalf("err = %v, not classified as ErrStorageIO", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, cause lost", err)
	}
}

func TestWrapNilMarkerDefaultsToService(t *testing.T) {
	err := Wrap(nil, "openai", "complete", "oops", nil)
	if !errors.Is(err, ErrService) {
		t.Fatalf("err = %v, want ErrService fallback", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrService, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("err = %v", err)
	}
}

func TestIsValidation(t *testing.T) {
	validation := []error{
		Wrap(ErrEmptyInput, "insights", "summarize", "", nil),
		Wrap(ErrInvalidPreset, "library", "parse preset", "", nil),
		Wrap(ErrUnsupportedFormat, "openai", "transcribe", "", nil),
		Wrap(ErrFileTooLarge, "openai", "transcribe", "", nil),
	}
	for _, err := range validation {
		if !IsValidation(err) {
			t.Fatalf("IsValidation(%v) = false", err)
		}
	}
	if IsValidation(Wrap(ErrNetwork, "openai", "complete", "", nil)) {
		t.Fatal("network failures are not validation errors")
	}
}
