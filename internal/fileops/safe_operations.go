// file: internal/fileops/safe_operations.go
// version: 2.0.0
// guid: 5b3464e3-cace-4667-9192-f74199072b92

package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

var (
	// ErrDestinationExists is returned instead of overwriting an existing file.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrChecksumMismatch is returned when a cross-device copy does not verify.
	ErrChecksumMismatch = errors.New("checksum mismatch: operation failed integrity check")
)

// MoveOptions configures safe move behavior
type MoveOptions struct {
	// VerifyChecksums enables SHA256 verification when a move has to copy
	VerifyChecksums bool
}

// DefaultMoveOptions returns the default safe move configuration
func DefaultMoveOptions() MoveOptions {
	return MoveOptions{VerifyChecksums: true}
}

// Move relocates src to dst without ever replacing an existing dst.
// A same-filesystem move is a rename. Across filesystems the file is copied,
// optionally verified, and the source removed only after the copy is durable.
// On failure the source is left where it was.
func Move(src, dst string, opts MoveOptions) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return moveAcrossDevices(src, dst, opts)
}

// moveAcrossDevices copies src to dst and removes src, rolling back dst on any failure.
func moveAcrossDevices(src, dst string, opts MoveOptions) error {
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if opts.VerifyChecksums {
		same, err := SameContent(src, dst)
		if err != nil {
			_ = os.Remove(dst)
			return fmt.Errorf("failed to verify checksum: %w", err)
		}
		if !same {
			_ = os.Remove(dst)
			return ErrChecksumMismatch
		}
	}

	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to remove original file: %w", err)
	}
	return nil
}

// copyFile copies src to a new file dst, preserving permissions. A partially
// written dst is removed; a pre-existing dst is never touched.
func copyFile(src, dst string) (err error) {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sourceInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
		}
		return err
	}
	defer func() {
		if err != nil {
			_ = destFile.Close()
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	if err = destFile.Sync(); err != nil {
		return err
	}
	return destFile.Close()
}
