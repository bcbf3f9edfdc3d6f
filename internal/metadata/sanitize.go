// file: internal/metadata/sanitize.go
// version: 1.0.0
// guid: 49c798ae-3dd0-4832-9991-1b0f749f0a93

package metadata

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// invalidChars are replaced with "_" in every path segment.
var invalidChars = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// Sanitizer makes strings safe to use as a single path segment.
type Sanitizer struct {
	// NormalizeUnicode composes the value to NFC before cleaning so that
	// visually identical names map to the same directory.
	NormalizeUnicode bool
}

// Clean replaces reserved characters with "_" and trims surrounding whitespace.
func (s Sanitizer) Clean(name string) string {
	if s.NormalizeUnicode {
		name = norm.NFC.String(name)
	}
	return strings.TrimSpace(invalidChars.Replace(name))
}

// Sanitize cleans name with the default sanitizer.
func Sanitize(name string) string {
	return Sanitizer{}.Clean(name)
}
