// file: internal/movelog/journal_test.go
// version: 1.0.0
// guid: 54e88472-8762-42ca-b704-7ece1af0671c

package movelog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordsLines(t *testing.T) {
	dir := t.TempDir()
	moveLog := filepath.Join(dir, "moves.txt")
	undoLog := filepath.Join(dir, "undo.txt")

	j := New(moveLog, undoLog)
	require.NoError(t, j.Lock())

	require.NoError(t, j.RecordUndo("/m/a.mp3", "/m/Misc/a.mp3"))
	require.NoError(t, j.RecordMove("/m/a.mp3", "/m/Misc/a.mp3"))
	require.NoError(t, j.RecordError("/m/b.mp3", errors.New("permission denied")))
	require.NoError(t, j.Close())

	moves, err := os.ReadFile(moveLog)
	require.NoError(t, err)
	assert.Equal(t,
		"Moved '/m/a.mp3' -> '/m/Misc/a.mp3'\n"+
			"Error moving '/m/b.mp3': permission denied\n",
		string(moves))

	undo, err := os.ReadFile(undoLog)
	require.NoError(t, err)
	assert.Equal(t, "/m/Misc/a.mp3|/m/a.mp3\n", string(undo))
}

func TestJournal_AppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	undoLog := filepath.Join(dir, "undo.txt")

	for _, name := range []string{"one", "two"} {
		j := New(filepath.Join(dir, "moves.txt"), undoLog)
		require.NoError(t, j.RecordUndo("/src/"+name, "/dst/"+name))
		require.NoError(t, j.Close())
	}

	records, err := ReadUndoLog(undoLog)
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Destination: "/dst/one", Source: "/src/one"},
		{Destination: "/dst/two", Source: "/src/two"},
	}, records)
}

func TestJournal_NoWritesNoFiles(t *testing.T) {
	dir := t.TempDir()
	j := New(filepath.Join(dir, "moves.txt"), filepath.Join(dir, "undo.txt"))
	require.NoError(t, j.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournal_LockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	undoLog := filepath.Join(dir, "undo.txt")

	first := New(filepath.Join(dir, "moves.txt"), undoLog)
	require.NoError(t, first.Lock())

	second := New(filepath.Join(dir, "moves.txt"), undoLog)
	assert.ErrorIs(t, second.Lock(), ErrJournalLocked)

	require.NoError(t, first.Close())
	require.NoError(t, second.Lock())
	require.NoError(t, second.Close())
}

func TestParseUndoLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
		ok   bool
	}{
		{"plain", "/dst/a.mp3|/src/a.mp3", Record{"/dst/a.mp3", "/src/a.mp3"}, true},
		{"crlf", "/dst/a.mp3|/src/a.mp3\r\n", Record{"/dst/a.mp3", "/src/a.mp3"}, true},
		{"pipe in source", "/dst/a.mp3|/src/x|y.mp3", Record{"/dst/a.mp3", "/src/x|y.mp3"}, true},
		{"no separator", "garbage", Record{}, false},
		{"empty source", "/dst/a.mp3|", Record{}, false},
		{"blank", "", Record{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUndoLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadUndoLog_Missing(t *testing.T) {
	_, err := ReadUndoLog(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadUndoLog_SkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undo.txt")
	require.NoError(t, os.WriteFile(path, []byte("b|a\nnot a record\n\nd|c\n"), 0o644))

	records, err := ReadUndoLog(path)
	require.NoError(t, err)
	assert.Equal(t, []Record{{"b", "a"}, {"d", "c"}}, records)
}
