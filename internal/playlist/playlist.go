// file: internal/playlist/playlist.go
// version: 2.0.0
// guid: 7457f191-e5e9-41fc-9e68-231805ef3c41

package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the manifest file written into each organized directory.
const DefaultName = "playlist.m3u"

// Generator writes one manifest per directory listing its audio files.
type Generator struct {
	// Name of the manifest file; DefaultName when empty.
	Name string
	// IsAudio decides which directory entries are listed.
	IsAudio func(name string) bool
}

// Tracks lists the immediate audio files of dir in directory listing order.
// A missing directory yields no tracks and no error.
func (g Generator) Tracks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var tracks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if g.IsAudio != nil && !g.IsAudio(entry.Name()) {
			continue
		}
		tracks = append(tracks, entry.Name())
	}
	return tracks, nil
}

// Generate writes the manifest for dir, replacing any previous one, and
// reports whether a file was written. Directories without audio files are
// left untouched.
func (g Generator) Generate(dir string) (bool, error) {
	tracks, err := g.Tracks(dir)
	if err != nil {
		return false, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(tracks) == 0 {
		return false, nil
	}

	name := g.Name
	if name == "" {
		name = DefaultName
	}
	playlistPath := filepath.Join(dir, name)
	if err := os.WriteFile(playlistPath, []byte(strings.Join(tracks, "\n")), 0644); err != nil {
		return false, fmt.Errorf("write playlist %s: %w", playlistPath, err)
	}
	return true, nil
}
