// file: internal/report/report.go
// version: 1.0.0
// guid: 2b79fd11-c42e-464e-9bbe-2d9e4988f158

// Package report renders a machine-readable summary of an organizer run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jdfalk/music-organizer/internal/organizer"
)

// Counts mirrors the summary counters.
type Counts struct {
	Discovered int `yaml:"discovered"`
	Moved      int `yaml:"moved"`
	Skipped    int `yaml:"skipped"`
	Errors     int `yaml:"errors"`
	Previewed  int `yaml:"previewed,omitempty"`
	Flattened  int `yaml:"flattened"`
	Fallbacks  int `yaml:"metadata_fallbacks"`
}

// Report is the YAML document written by --report.
type Report struct {
	RunID       string    `yaml:"run_id"`
	Root        string    `yaml:"root"`
	Mode        string    `yaml:"mode"`
	DryRun      bool      `yaml:"dry_run"`
	Started     time.Time `yaml:"started"`
	Duration    string    `yaml:"duration"`
	Counts      Counts    `yaml:"counts"`
	BytesMoved  int64     `yaml:"bytes_moved"`
	MoveLog     string    `yaml:"move_log,omitempty"`
	UndoLog     string    `yaml:"undo_log,omitempty"`
	Directories []string  `yaml:"directories,omitempty"`
	Playlists   []string  `yaml:"playlists,omitempty"`
	Error       string    `yaml:"error,omitempty"`
}

// FromSummary builds a report for a finished run. runErr is the error Run
// returned, if any.
func FromSummary(s organizer.Summary, moveLog, undoLog string, runErr error) Report {
	r := Report{
		RunID:    s.RunID,
		Root:     s.Root,
		Mode:     s.Mode,
		DryRun:   s.DryRun,
		Started:  s.Started.UTC().Truncate(time.Second),
		Duration: s.Duration.Round(time.Millisecond).String(),
		Counts: Counts{
			Discovered: s.Discovered,
			Moved:      s.Moved,
			Skipped:    s.Skipped,
			Errors:     s.Errors,
			Previewed:  s.Previewed,
			Flattened:  s.Flattened,
			Fallbacks:  s.Fallbacks,
		},
		BytesMoved:  s.BytesMoved,
		Directories: s.Directories,
		Playlists:   s.Playlists,
	}
	if !s.DryRun {
		r.MoveLog = moveLog
		r.UndoLog = undoLog
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// Write stores r as YAML at path.
func Write(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return r, nil
}
