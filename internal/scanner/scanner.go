// file: internal/scanner/scanner.go
// version: 2.0.0
// guid: 8bf0414b-0993-4769-a642-4c41dfc58307

package scanner

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
)

// AudioFile represents a discovered audio file
type AudioFile struct {
	Path   string
	Format string
}

// Filter decides whether a file name is an audio file worth organizing.
type Filter func(name string) bool

// ScanDirectory walks rootDir recursively in lexical order and returns every
// file accepted by filter. Paths are absolute when rootDir is absolute.
// Unreadable subdirectories are skipped with a warning.
func ScanDirectory(rootDir string, filter Filter) ([]AudioFile, error) {
	var files []AudioFile

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			log.Printf("[WARN] scanner: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if filter != nil && !filter(d.Name()) {
			return nil
		}
		files = append(files, AudioFile{
			Path:   path,
			Format: strings.ToLower(filepath.Ext(path)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootDir, err)
	}

	return files, nil
}
