package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"openrecorder/internal/testsupport"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	testsupport.WriteFile(t, src, "payload")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if got := testsupport.ReadFile(t, dst); got != "payload" {
		t.Fatalf("dst = %q", got)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("CopyFile succeeded on a missing source")
	}
}

func TestCopyFileModeSetsPermissions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	testsupport.WriteFile(t, src, "payload")

	if err := CopyFileMode(src, dst, 0o600); err != nil {
		t.Fatalf("CopyFileMode: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	testsupport.WriteFile(t, path, "x")

	if !FileExists(path) {
		t.Fatal("FileExists = false for a regular file")
	}
	if FileExists(filepath.Join(dir, "absent")) {
		t.Fatal("FileExists = true for a missing path")
	}
	if FileExists(dir) {
		t.Fatal("FileExists = true for a directory")
	}
}
