package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"openrecorder/internal/library"
	"openrecorder/internal/testsupport"
)

// runCommand executes the CLI against an isolated storage root and returns
// its stdout.
func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	testsupport.WriteFile(t, path, "[paths]\nstorage_root = \""+filepath.Join(dir, "storage")+"\"\n")
	return path
}

func TestScanCommandJSON(t *testing.T) {
	configPath := writeTestConfig(t)

	folder := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(folder, "a.mp3"), "x")
	testsupport.WriteFile(t, filepath.Join(folder, "skip.txt"), "x")

	out, err := runCommand(t, configPath, "scan", "--json", folder)
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}

	var items []library.Item
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(items) != 1 || items[0].Name != "a.mp3" {
		t.Fatalf("items = %+v", items)
	}
}

func TestStorageEnsureAndList(t *testing.T) {
	configPath := writeTestConfig(t)

	source := filepath.Join(t.TempDir(), "take.mp3")
	testsupport.WriteFile(t, source, "audio")

	out, err := runCommand(t, configPath, "storage", "ensure", source)
	if err != nil {
		t.Fatalf("ensure: %v\n%s", err, out)
	}
	managedDir := strings.TrimSpace(out)
	if !strings.Contains(filepath.Base(managedDir), "take-") {
		t.Fatalf("managed dir = %q", managedDir)
	}

	out, err = runCommand(t, configPath, "storage", "list")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	if !strings.Contains(out, filepath.Base(managedDir)) {
		t.Fatalf("list output = %q, missing %q", out, filepath.Base(managedDir))
	}
}

func TestTranscriptSaveAndShow(t *testing.T) {
	configPath := writeTestConfig(t)

	source := filepath.Join(t.TempDir(), "take.mp3")
	testsupport.WriteFile(t, source, "audio")
	textFile := filepath.Join(t.TempDir(), "transcript.txt")
	testsupport.WriteFile(t, textFile, "the transcript text")

	out, err := runCommand(t, configPath, "transcript", "save", source, textFile)
	if err != nil {
		t.Fatalf("save: %v\n%s", err, out)
	}

	out, err = runCommand(t, configPath, "transcript", "show", source)
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	if out != "the transcript text" {
		t.Fatalf("show output = %q", out)
	}

	out, err = runCommand(t, configPath, "transcript", "has", source)
	if err != nil {
		t.Fatalf("has: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "yes" {
		t.Fatalf("has output = %q", out)
	}
}

func TestTranscriptShowMissing(t *testing.T) {
	configPath := writeTestConfig(t)

	source := filepath.Join(t.TempDir(), "take.mp3")
	testsupport.WriteFile(t, source, "audio")

	if _, err := runCommand(t, configPath, "transcript", "show", source); err == nil {
		t.Fatal("show succeeded with no transcript anywhere")
	}
}

func TestConfigInit(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, configPath, "config", "init")
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}

	// Refuses to overwrite without --force.
	if _, err := runCommand(t, configPath, "config", "init"); err == nil {
		t.Fatal("init overwrote an existing config")
	}
	if _, err := runCommand(t, configPath, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestStatsCommandInvalidPreset(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCommand(t, configPath, "stats", "--preset", "14d", t.TempDir()); err == nil {
		t.Fatal("stats accepted an invalid preset")
	}
}

func TestStatsCommandJSONEmptyFolder(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, configPath, "stats", "--json", "--preset", "all", t.TempDir())
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}

	var result library.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Preset != library.PresetAll {
		t.Fatalf("preset = %q", result.Preset)
	}
	if len(result.DurationBuckets) != 4 {
		t.Fatalf("buckets = %d", len(result.DurationBuckets))
	}
}
