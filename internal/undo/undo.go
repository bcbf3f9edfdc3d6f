// file: internal/undo/undo.go
// version: 1.0.0
// guid: 971af688-cba3-4d83-bf34-c60fd45a8143

// Package undo restores files moved by the organizer from its undo log.
package undo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jdfalk/music-organizer/internal/fileops"
	"github.com/jdfalk/music-organizer/internal/metrics"
	"github.com/jdfalk/music-organizer/internal/movelog"
)

var (
	// ErrNoUndoLog is returned when there is nothing to undo.
	ErrNoUndoLog = errors.New("no undo log found")
	// ErrIncomplete is returned when some records could not be restored.
	// The undo log is kept in that case.
	ErrIncomplete = errors.New("undo incomplete")
)

// Result counts what happened to the records of the undo log.
type Result struct {
	Restored int
	Skipped  int
	Failed   int
}

// Engine replays an undo log.
type Engine struct {
	journal *movelog.Journal
	move    func(src, dst string) error
	out     io.Writer
	metrics *metrics.Recorder
}

// NewEngine creates an engine for the undo log of journal. Restorations are
// printed to out.
func NewEngine(journal *movelog.Journal, opts fileops.MoveOptions, out io.Writer) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{
		journal: journal,
		move: func(src, dst string) error {
			return fileops.Move(src, dst, opts)
		},
		out: out,
	}
}

// SetMetrics records restore results into r.
func (e *Engine) SetMetrics(r *metrics.Recorder) {
	e.metrics = r
}

// Undo moves every logged destination back to its source, in log order.
// Records whose destination no longer exists are skipped. The log is deleted
// once every record has been handled without a failure.
func (e *Engine) Undo(ctx context.Context) (res Result, err error) {
	start := time.Now()
	defer func() {
		e.metrics.ObserveRunDuration("undo", time.Since(start))
	}()

	undoPath := e.journal.UndoPath()
	if !fileops.Exists(undoPath) {
		return res, ErrNoUndoLog
	}
	if err := e.journal.Lock(); err != nil {
		return res, err
	}

	records, err := movelog.ReadUndoLog(undoPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, ErrNoUndoLog
		}
		return res, err
	}
	log.Printf("[INFO] undo: replaying %d records from %s", len(records), undoPath)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.restore(rec, &res)
	}

	if res.Failed > 0 {
		log.Printf("[WARN] undo: %d records failed, keeping %s for another attempt", res.Failed, undoPath)
		return res, fmt.Errorf("%w: %d of %d records failed", ErrIncomplete, res.Failed, len(records))
	}

	if err := os.Remove(undoPath); err != nil {
		return res, fmt.Errorf("remove undo log: %w", err)
	}
	fmt.Fprintln(e.out, "Undo completed.")
	return res, nil
}

func (e *Engine) restore(rec movelog.Record, res *Result) {
	if !fileops.Exists(rec.Destination) {
		res.Skipped++
		e.metrics.ObserveRestore("skipped")
		return
	}

	err := os.MkdirAll(filepath.Dir(rec.Source), 0755)
	if err == nil {
		err = e.move(rec.Destination, rec.Source)
	}
	if err != nil {
		res.Failed++
		e.metrics.ObserveRestore("error")
		log.Printf("[ERROR] undo: restoring %s to %s: %v", rec.Destination, rec.Source, err)
		return
	}

	res.Restored++
	e.metrics.ObserveRestore("restored")
	fmt.Fprintf(e.out, "Restored %s to %s\n", rec.Destination, rec.Source)
}
