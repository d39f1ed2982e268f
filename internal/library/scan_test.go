package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"openrecorder/internal/services"
	"openrecorder/internal/testsupport"
)

func fixedDuration(seconds float64) DurationFunc {
	return func(context.Context, string) (float64, bool) {
		return seconds, true
	}
}

func TestScanFindsSupportedExtensions(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(folder, "a.mp3"), "x")
	testsupport.WriteFile(t, filepath.Join(folder, "b.M4A"), "x")
	testsupport.WriteFile(t, filepath.Join(folder, "nested", "c.wav"), "x")
	testsupport.WriteFile(t, filepath.Join(folder, "notes.txt"), "x")
	testsupport.WriteFile(t, filepath.Join(folder, "d.flac"), "x")

	scanner := NewScanner(nil, nil)
	items, err := scanner.Scan(context.Background(), folder)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("found %d items, want 3: %+v", len(items), items)
	}
}

func TestScanMissingFolder(t *testing.T) {
	scanner := NewScanner(nil, nil)
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, services.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestScanItemFields(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "take.mp3")
	testsupport.WriteFile(t, path, "some audio bytes")

	scanner := NewScanner(fixedDuration(42.5), nil)
	items, err := scanner.Scan(context.Background(), folder)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}

	item := items[0]
	if item.Name != "take.mp3" || item.Path != path {
		t.Fatalf("item = %+v", item)
	}
	if item.Size != int64(len("some audio bytes")) {
		t.Fatalf("size = %d", item.Size)
	}
	if item.Duration == nil || *item.Duration != 42.5 {
		t.Fatalf("duration = %v", item.Duration)
	}
	if item.ID == "" {
		t.Fatal("item ID missing")
	}
}

func TestScanNilDurationFuncLeavesDurationUnknown(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(folder, "take.mp3"), "x")

	scanner := NewScanner(nil, nil)
	items, err := scanner.Scan(context.Background(), folder)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if items[0].Duration != nil {
		t.Fatalf("duration = %v, want unknown", items[0].Duration)
	}
}

func TestScanIDStableAcrossRuns(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(folder, "take.mp3"), "x")

	scanner := NewScanner(nil, nil)
	first, err := scanner.Scan(context.Background(), folder)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	again, err := scanner.Scan(context.Background(), folder)
	if err != nil {
		t.Fatalf("Scan again: %v", err)
	}
	if first[0].ID != again[0].ID {
		t.Fatal("item ID changed between scans of the same path")
	}
}

func TestReadFileMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	testsupport.WriteFile(t, path, "bytes")

	scanner := NewScanner(fixedDuration(3), nil)
	item, err := scanner.ReadFileMeta(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFileMeta: %v", err)
	}
	if item.Name != "take.wav" || item.Duration == nil || *item.Duration != 3 {
		t.Fatalf("item = %+v", item)
	}
}

func TestReadFileMetaMissing(t *testing.T) {
	scanner := NewScanner(nil, nil)
	_, err := scanner.ReadFileMeta(context.Background(), filepath.Join(t.TempDir(), "absent.wav"))
	if !errors.Is(err, services.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}
