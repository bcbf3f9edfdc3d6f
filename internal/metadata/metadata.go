// file: internal/metadata/metadata.go
// version: 2.0.0
// guid: c6c275d6-548f-4e72-b3b9-769fee0dc334

package metadata

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Field names a metadata attribute used for classification.
type Field string

const (
	FieldArtist Field = "artist"
	FieldAlbum  Field = "album"
	FieldGenre  Field = "genre"
	FieldYear   Field = "year"
)

// fallbacks is the single table of substitute values for absent fields.
var fallbacks = map[Field]string{
	FieldArtist: "Unknown Artist",
	FieldAlbum:  "Unknown Album",
	FieldGenre:  "Unknown Genre",
	FieldYear:   "Unknown Year",
}

// FallbackFor returns the substitute value used when field is missing.
func FallbackFor(field Field) string {
	return fallbacks[field]
}

// ErrNoTags is returned by a reader that parsed the file but found no usable fields.
var ErrNoTags = errors.New("no tags found")

// Info is the sanitized metadata tuple used to classify a file.
type Info struct {
	Artist string
	Album  string
	Genre  string
	Year   string
}

// FallbackInfo returns the fixed tuple substituted when a file cannot be read.
func FallbackInfo() Info {
	return Info{
		Artist: fallbacks[FieldArtist],
		Album:  fallbacks[FieldAlbum],
		Genre:  fallbacks[FieldGenre],
		Year:   fallbacks[FieldYear],
	}
}

// Kind distinguishes a successful read from a substituted one.
type Kind int

const (
	Ok Kind = iota
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of reading one file. A Fallback result always carries
// FallbackInfo and the reason every reader failed.
type Result struct {
	Info
	Kind   Kind
	Reader string
	Reason error
}

// rawTags holds unsanitized values as returned by one reader.
type rawTags struct {
	Artist string
	Album  string
	Genre  string
	Year   string
}

func (r rawTags) empty() bool {
	return strings.TrimSpace(r.Artist) == "" &&
		strings.TrimSpace(r.Album) == "" &&
		strings.TrimSpace(r.Genre) == "" &&
		strings.TrimSpace(r.Year) == ""
}

type reader struct {
	name string
	read func(path string) (rawTags, error)
}

// Extractor reads and sanitizes classification metadata.
type Extractor struct {
	Sanitizer Sanitizer
}

// NewExtractor creates an extractor using the given sanitizer.
func NewExtractor(s Sanitizer) *Extractor {
	return &Extractor{Sanitizer: s}
}

// Read returns the sanitized metadata of path. It never fails: when no reader
// can parse the file the result is a Fallback carrying the default tuple.
func (e *Extractor) Read(path string) Result {
	var errs []error
	for _, r := range readersFor(path) {
		tags, err := r.read(path)
		if err == nil && tags.empty() {
			err = ErrNoTags
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
			continue
		}
		return Result{
			Info:   e.info(tags),
			Kind:   Ok,
			Reader: r.name,
		}
	}
	return Result{
		Info:   FallbackInfo(),
		Kind:   Fallback,
		Reason: errors.Join(errs...),
	}
}

// Read extracts metadata with the default sanitizer.
func Read(path string) Result {
	return NewExtractor(Sanitizer{}).Read(path)
}

func (e *Extractor) info(tags rawTags) Info {
	return Info{
		Artist: e.segment(FieldArtist, tags.Artist),
		Album:  e.segment(FieldAlbum, tags.Album),
		Genre:  e.segment(FieldGenre, tags.Genre),
		Year:   e.segment(FieldYear, normalizeYear(tags.Year)),
	}
}

// segment sanitizes value for use as a single path element, substituting the
// field's fallback when nothing usable remains.
func (e *Extractor) segment(field Field, value string) string {
	value = e.Sanitizer.Clean(value)
	if value == "" || value == "." || value == ".." {
		return fallbacks[field]
	}
	return value
}

// normalizeYear reduces dates like "1969-09-26" to their four digit year.
func normalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return s
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	if len(s) > 4 && s[4] >= '0' && s[4] <= '9' {
		return s
	}
	return s[:4]
}

// readersFor returns the reader chain for a file, most general first.
func readersFor(path string) []reader {
	chain := []reader{{name: "tag", read: readWithTag}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		chain = append(chain, reader{name: "id3v2", read: readMP3WithID3v2})
	case ".flac":
		chain = append(chain, reader{name: "flac", read: readFLACVorbis})
	}
	if taglibAvailable {
		chain = append(chain, reader{name: "taglib", read: readWithTaglib})
	}
	return chain
}
