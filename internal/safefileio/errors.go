package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that a path is a symbolic link where a regular file is required.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file is larger than MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotRegularFile indicates that the path names a directory, device, pipe or socket.
	ErrNotRegularFile = errors.New("not a regular file")
)
