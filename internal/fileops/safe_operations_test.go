// file: internal/fileops/safe_operations_test.go
// version: 2.0.0
// guid: fbadf622-c669-4046-b7cb-52a9d9c4cfdf

package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMoveOptions(t *testing.T) {
	if !DefaultMoveOptions().VerifyChecksums {
		t.Error("Expected VerifyChecksums to be true")
	}
}

func TestMove_Rename(t *testing.T) {
	tmpDir := t.TempDir()
	srcFile := filepath.Join(tmpDir, "source.mp3")
	dstFile := filepath.Join(tmpDir, "dest.mp3")

	content := []byte("Test content for move operation")
	if err := os.WriteFile(srcFile, content, 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}

	if err := Move(srcFile, dstFile, DefaultMoveOptions()); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if _, err := os.Stat(srcFile); !os.IsNotExist(err) {
		t.Error("Expected source file to be gone")
	}
	got, err := os.ReadFile(dstFile)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Content mismatch: got %q", got)
	}
}

func TestMove_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	srcFile := filepath.Join(tmpDir, "source.mp3")
	dstFile := filepath.Join(tmpDir, "dest.mp3")

	if err := os.WriteFile(srcFile, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dstFile, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Move(srcFile, dstFile, DefaultMoveOptions())
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("Expected ErrDestinationExists, got %v", err)
	}

	got, _ := os.ReadFile(dstFile)
	if string(got) != "existing" {
		t.Errorf("Destination was modified: %q", got)
	}
	if _, err := os.Stat(srcFile); err != nil {
		t.Errorf("Source should be untouched: %v", err)
	}
}

func TestMove_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	err := Move(filepath.Join(tmpDir, "missing.mp3"), filepath.Join(tmpDir, "dest.mp3"), DefaultMoveOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected not-exist error, got %v", err)
	}
}

func TestMoveAcrossDevices(t *testing.T) {
	tmpDir := t.TempDir()
	srcFile := filepath.Join(tmpDir, "source.flac")
	dstFile := filepath.Join(tmpDir, "other", "dest.flac")

	content := []byte("lossless bytes")
	if err := os.WriteFile(srcFile, content, 0640); err != nil {
		t.Fatal(err)
	}

	if err := moveAcrossDevices(srcFile, dstFile, DefaultMoveOptions()); err != nil {
		t.Fatalf("moveAcrossDevices failed: %v", err)
	}

	if _, err := os.Stat(srcFile); !os.IsNotExist(err) {
		t.Error("Expected source to be removed after verified copy")
	}
	got, err := os.ReadFile(dstFile)
	if err != nil || string(got) != string(content) {
		t.Fatalf("Destination content wrong: %q, %v", got, err)
	}
	info, err := os.Stat(dstFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0040 == 0 {
		t.Errorf("Expected group read permission to be preserved, got %o", info.Mode().Perm())
	}
}

func TestMoveAcrossDevices_ExistingDestination(t *testing.T) {
	tmpDir := t.TempDir()
	srcFile := filepath.Join(tmpDir, "source.wav")
	dstFile := filepath.Join(tmpDir, "dest.wav")
	if err := os.WriteFile(srcFile, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dstFile, []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}

	err := moveAcrossDevices(srcFile, dstFile, MoveOptions{})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("Expected ErrDestinationExists, got %v", err)
	}
	if _, err := os.Stat(srcFile); err != nil {
		t.Errorf("Source should survive a failed copy: %v", err)
	}
	if got, _ := os.ReadFile(dstFile); string(got) != "b" {
		t.Errorf("Existing destination was modified: %q", got)
	}
}
