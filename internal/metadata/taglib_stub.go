// file: internal/metadata/taglib_stub.go
// version: 2.0.0
// guid: 267ab376-0a74-4c2e-8341-c593a68f5e8d

//go:build !taglib

package metadata

import "errors"

// taglibAvailable false when not built with taglib
var taglibAvailable = false

// readWithTaglib stub when taglib not compiled in
func readWithTaglib(path string) (rawTags, error) {
	return rawTags{}, errors.New("taglib support not compiled in")
}
