// file: cmd/diagnostics_test.go
// version: 2.0.0
// guid: 7e0e6920-c983-4b14-9c11-64b203651d37

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdfalk/music-organizer/internal/config"
	"github.com/jdfalk/music-organizer/internal/movelog"
)

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Fatalf("expected no truncation, got %q", got)
	}
	if got := truncateString("this is long", 4); got != "this..." {
		t.Fatalf("expected truncation, got %q", got)
	}
}

func TestPromptYesNo(t *testing.T) {
	var out bytes.Buffer
	confirmed, err := promptYesNo(&out, strings.NewReader("yes\n"), "confirm")
	if err != nil {
		t.Fatalf("promptYesNo failed: %v", err)
	}
	if !confirmed {
		t.Fatal("expected confirmation")
	}
	if !strings.Contains(out.String(), "confirm? Type 'yes' to confirm: ") {
		t.Fatalf("unexpected prompt %q", out.String())
	}

	confirmed, err = promptYesNo(&out, strings.NewReader("no"), "confirm")
	if err != nil {
		t.Fatalf("promptYesNo failed: %v", err)
	}
	if confirmed {
		t.Fatal("did not expect confirmation")
	}
}

func TestRunDiagnosticsTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.mp3")
	if err := os.WriteFile(path, []byte("no tags here"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runDiagnosticsTags(&out, []string{path}); err != nil {
		t.Fatalf("runDiagnosticsTags failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Result: fallback", "Artist: Unknown Artist", "Year:   Unknown Year", "Reason: "} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRunDiagnosticsUndoLog(t *testing.T) {
	dir := t.TempDir()
	undoPath := filepath.Join(dir, config.DefaultUndoLog)

	var out bytes.Buffer
	if err := runDiagnosticsUndoLog(&out, undoPath, 5); err != nil {
		t.Fatal(err)
	}
	if out.String() != "No undo log found.\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	present := filepath.Join(dir, "present.mp3")
	if err := os.WriteFile(present, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	lines := movelog.FormatUndo("/orig/present.mp3", present) + "\n" +
		movelog.FormatUndo("/orig/gone.mp3", filepath.Join(dir, "gone.mp3")) + "\n"
	if err := os.WriteFile(undoPath, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := runDiagnosticsUndoLog(&out, undoPath, 1); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "2 undo records") || !strings.Contains(got, "(present)") || !strings.Contains(got, "... 1 more") {
		t.Fatalf("unexpected output:\n%s", got)
	}

	if err := runDiagnosticsUndoLog(&out, undoPath, -1); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestRunClearUndoLog(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.MoveLogPath = filepath.Join(dir, config.DefaultMoveLog)
	cfg.UndoLogPath = filepath.Join(dir, config.DefaultUndoLog)
	if err := os.WriteFile(cfg.UndoLogPath, []byte("a|b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runClearUndoLog(&out, strings.NewReader("no\n"), cfg, false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.UndoLogPath); err != nil {
		t.Fatalf("undo log should be kept after declining: %v", err)
	}

	if err := runClearUndoLog(&out, strings.NewReader(""), cfg, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.UndoLogPath); !os.IsNotExist(err) {
		t.Fatalf("expected undo log to be removed, got %v", err)
	}

	out.Reset()
	if err := runClearUndoLog(&out, strings.NewReader(""), cfg, true); err != nil {
		t.Fatal(err)
	}
	if out.String() != "No undo log found.\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
