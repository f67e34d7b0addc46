package safefileio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// AtomicWriteFile publishes content at filePath. See AtomicWriteFunc.
func AtomicWriteFile(filePath string, content []byte, perm os.FileMode) error {
	return AtomicWriteFunc(filePath, perm, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}

// AtomicWriteFunc streams the output of write into a temporary file next to
// filePath and renames it into place once write succeeds and the data is synced.
// If anything fails the temporary file is removed and filePath is untouched.
// Symbolic links in the parent directory are resolved. An existing
// destination is replaced only when it is a regular file.
func AtomicWriteFunc(filePath string, perm os.FileMode, write func(io.Writer) error) (err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("failed to resolve directory of %s: %w", filePath, err)
	}
	base := filepath.Base(absPath)
	absPath = filepath.Join(dir, base)

	if err := checkDestination(absPath, filePath); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", filePath, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tmp.Close()
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("Failed to remove temporary file", "path", tmpPath, "error", removeErr)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", filePath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filePath, err)
	}

	// The destination may have been replaced while we were writing
	if err := checkDestination(absPath, filePath); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, absPath); err != nil {
		return fmt.Errorf("failed to publish %s: %w", filePath, err)
	}
	committed = true

	return nil
}

// checkDestination rejects destinations that exist and are not regular files.
func checkDestination(absPath, filePath string) error {
	fi, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		return fmt.Errorf("%w: %s", ErrIsSymlink, filePath)
	case !fi.Mode().IsRegular():
		return fmt.Errorf("%w: %s", ErrNotRegularFile, filePath)
	}
	return nil
}
