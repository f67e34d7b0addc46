// Package safefileio reads bounded regular input files and publishes output
// files without leaving partially written outputs behind.
package safefileio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB)
const MaxFileSize = 128 * 1024 * 1024

// SafeReadFile reads a regular file. Symbolic links in the path are resolved
// first, so the file that is checked and read is the link target.
// A missing file surfaces as an error matching fs.ErrNotExist.
func SafeReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - realPath is resolved above and O_NOFOLLOW refuses a link swapped in since
	file, err := os.OpenFile(realPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, fmt.Errorf("%w: %s", ErrIsSymlink, filePath)
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close input file", "path", realPath, "error", closeErr)
		}
	}()

	fileInfo, err := validateFile(file, filePath)
	if err != nil {
		return nil, err
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, filePath, fileInfo.Size())
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if int64(len(content)) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, filePath)
	}

	return content, nil
}

// validateFile uses the open descriptor so the checked file is the one being read.
func validateFile(file *os.File, filePath string) (os.FileInfo, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, filePath)
	}

	return fileInfo, nil
}

// isNoFollowError reports whether open failed because the path is a symlink.
// Linux returns ELOOP, FreeBSD returns EMLINK.
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, syscall.ELOOP) || errors.Is(e.Err, syscall.EMLINK)
}
