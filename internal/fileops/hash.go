// file: internal/fileops/hash.go
// version: 2.0.0
// guid: 108ea7d2-a907-4657-b466-5fd321dee472

package fileops

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ComputeFileHash computes the SHA256 hash of a file
func ComputeFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SameContent reports whether two files have identical SHA256 digests.
func SameContent(a, b string) (bool, error) {
	ha, err := ComputeFileHash(a)
	if err != nil {
		return false, err
	}
	hb, err := ComputeFileHash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// FileSize returns the size of a regular file in bytes, or 0 if it cannot be read.
func FileSize(filePath string) int64 {
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}

// Exists reports whether anything, including a dangling symlink, is at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
