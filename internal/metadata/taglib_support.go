// file: internal/metadata/taglib_support.go
// version: 2.1.0
// guid: 274c4fb3-48db-4d63-985e-a606e46e65a8

//go:build taglib
// +build taglib

// TagLib native reader support (optional via build tag 'taglib'). Default build without tag excludes this file.

package metadata

import (
	"path/filepath"

	taglib "go.senan.xyz/taglib"
)

// taglibAvailable indicates native taglib path compiled in
var taglibAvailable = true

// readWithTaglib reads tags through TagLib, which also understands RIFF INFO
// and ID3 chunks in WAV files.
func readWithTaglib(path string) (rawTags, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return rawTags{}, err
	}
	tags, err := taglib.ReadTags(abs)
	if err != nil {
		return rawTags{}, err
	}

	first := func(key string) string {
		if values := tags[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}

	return rawTags{
		Artist: first(taglib.Artist),
		Album:  first(taglib.Album),
		Genre:  first(taglib.Genre),
		Year:   first("DATE"),
	}, nil
}
