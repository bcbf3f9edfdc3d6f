// file: internal/organizer/executor.go
// version: 1.0.0
// guid: 38b45b11-c45b-4f52-aa83-f2a2ff011721

package organizer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jdfalk/music-organizer/internal/fileops"
)

// Outcome is the terminal state of one file.
type Outcome int

const (
	Moved Outcome = iota
	Skipped
	Failed
	Previewed
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Skipped:
		return "skipped"
	case Failed:
		return "error"
	case Previewed:
		return "previewed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Journal receives the log lines of executed moves.
type Journal interface {
	RecordUndo(src, dst string) error
	RecordMove(src, dst string) error
	RecordError(src string, cause error) error
}

// MoveFunc relocates a file without replacing an existing destination.
type MoveFunc func(src, dst string) error

// ExecResult describes what happened to one file.
type ExecResult struct {
	Outcome     Outcome
	Source      string
	Destination string
	Bytes       int64
	Err         error
}

// Executor performs planned moves and journals them.
type Executor struct {
	Journal Journal
	Move    MoveFunc
	// Out receives dry-run previews.
	Out io.Writer
}

// NewExecutor creates an executor using fileops.Move with opts.
func NewExecutor(journal Journal, opts fileops.MoveOptions, out io.Writer) *Executor {
	return &Executor{
		Journal: journal,
		Move: func(src, dst string) error {
			return fileops.Move(src, dst, opts)
		},
		Out: out,
	}
}

// Execute moves source to targetDir/fileName. A dry run only prints the
// would-be destination. Failures are journaled and returned as a Failed
// result so the caller can carry on with the next file.
func (e *Executor) Execute(source, targetDir, fileName string, dryRun bool) ExecResult {
	dst := filepath.Join(targetDir, fileName)
	res := ExecResult{Source: source, Destination: dst}

	if dryRun {
		if e.Out != nil {
			fmt.Fprintf(e.Out, "[Dry Run] Would move '%s' to '%s'\n", source, dst)
		}
		res.Outcome = Previewed
		return res
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return e.fail(res, err)
	}

	if filepath.Clean(source) == filepath.Clean(dst) {
		res.Outcome = Skipped
		return res
	}

	size := fileops.FileSize(source)
	if err := e.Move(source, dst); err != nil {
		return e.fail(res, err)
	}

	if err := e.Journal.RecordUndo(source, dst); err != nil {
		// A move without an undo entry cannot be reversed; put the file back.
		if rbErr := e.Move(dst, source); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return e.fail(res, fmt.Errorf("record undo: %w", err))
	}
	if err := e.Journal.RecordMove(source, dst); err != nil {
		res.Outcome = Failed
		res.Err = fmt.Errorf("record move: %w", err)
		log.Printf("[ERROR] organizer: moved %s but could not write move log: %v", source, err)
		return res
	}

	res.Outcome = Moved
	res.Bytes = size
	return res
}

func (e *Executor) fail(res ExecResult, err error) ExecResult {
	res.Outcome = Failed
	res.Err = err
	log.Printf("[ERROR] organizer: moving %s: %v", res.Source, err)
	if logErr := e.Journal.RecordError(res.Source, err); logErr != nil {
		log.Printf("[WARN] organizer: could not write move log: %v", logErr)
	}
	return res
}
