// file: internal/movelog/journal.go
// version: 1.0.0
// guid: 04d05779-e96a-429c-85cb-95094f0c22c7

package movelog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrJournalLocked is returned when another process is writing the same undo log.
var ErrJournalLocked = errors.New("undo log is locked by another running organizer")

// Record is one reversible move as stored in the undo log.
type Record struct {
	Destination string
	Source      string
}

// Journal appends to the human-readable move log and the machine-readable
// undo log. Files are opened on first write so a run that moves nothing
// leaves no trace. Every line is written with a single append.
type Journal struct {
	movePath string
	undoPath string
	lock     *flock.Flock

	moveFile *os.File
	undoFile *os.File
}

// New creates a journal for the given log paths.
func New(movePath, undoPath string) *Journal {
	return &Journal{
		movePath: movePath,
		undoPath: undoPath,
		lock:     flock.New(LockPath(undoPath)),
	}
}

// LockPath returns the advisory lock file guarding undoPath.
func LockPath(undoPath string) string {
	return undoPath + ".lock"
}

// MovePath returns the move log location.
func (j *Journal) MovePath() string { return j.movePath }

// UndoPath returns the undo log location.
func (j *Journal) UndoPath() string { return j.undoPath }

// Lock takes the single-writer lock. It fails fast when held elsewhere.
func (j *Journal) Lock() error {
	if err := ensureDir(j.undoPath); err != nil {
		return err
	}
	ok, err := j.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrJournalLocked
	}
	return nil
}

// RecordUndo appends "<destination>|<source>" to the undo log.
func (j *Journal) RecordUndo(src, dst string) error {
	if j.undoFile == nil {
		f, err := openAppend(j.undoPath)
		if err != nil {
			return err
		}
		j.undoFile = f
	}
	return writeLine(j.undoFile, FormatUndo(src, dst))
}

// RecordMove appends "Moved '<source>' -> '<destination>'" to the move log.
func (j *Journal) RecordMove(src, dst string) error {
	return j.appendMoveLog(FormatMove(src, dst))
}

// RecordError appends "Error moving '<source>': <cause>" to the move log.
func (j *Journal) RecordError(src string, cause error) error {
	return j.appendMoveLog(FormatError(src, cause))
}

func (j *Journal) appendMoveLog(line string) error {
	if j.moveFile == nil {
		f, err := openAppend(j.movePath)
		if err != nil {
			return err
		}
		j.moveFile = f
	}
	return writeLine(j.moveFile, line)
}

// Close closes any open log and releases the lock.
func (j *Journal) Close() error {
	var errs []error
	if j.moveFile != nil {
		errs = append(errs, j.moveFile.Close())
		j.moveFile = nil
	}
	if j.undoFile != nil {
		errs = append(errs, j.undoFile.Close())
		j.undoFile = nil
	}
	if j.lock.Locked() {
		errs = append(errs, j.lock.Unlock())
	}
	return errors.Join(errs...)
}

// FormatMove renders a move log line.
func FormatMove(src, dst string) string {
	return fmt.Sprintf("Moved '%s' -> '%s'", src, dst)
}

// FormatError renders a move log error line.
func FormatError(src string, cause error) string {
	return fmt.Sprintf("Error moving '%s': %v", src, cause)
}

// FormatUndo renders an undo log line.
func FormatUndo(src, dst string) string {
	return dst + "|" + src
}

// ParseUndoLine splits an undo log line at its first "|". Lines without a
// separator or with an empty side are reported as not ok.
func ParseUndoLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	dst, src, found := strings.Cut(line, "|")
	if !found || strings.TrimSpace(dst) == "" || strings.TrimSpace(src) == "" {
		return Record{}, false
	}
	return Record{Destination: dst, Source: src}, true
}

// ReadUndoLog returns the records of the undo log in file order.
// A missing log yields an error matching os.ErrNotExist.
func ReadUndoLog(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if rec, ok := ParseUndoLine(scanner.Text()); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read undo log: %w", err)
	}
	return records, nil
}

func openAppend(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func writeLine(f *os.File, line string) error {
	_, err := f.WriteString(line + "\n")
	return err
}
