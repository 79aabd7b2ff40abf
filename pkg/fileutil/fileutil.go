package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/carpool/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := append([]string{dir}, path...)

	if err := os.MkdirAll(filepath.Join(targetPath...), 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// WriteFile writes content to path, creating missing parent directories.
// The content lands in a temporary sibling first and is renamed into place,
// so readers never observe a half-written document.
func WriteFile(path string, content string) failure.ClassifiedError {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &FileError{Message: fmt.Sprintf("%v", err), Cause: ErrCauseWriteError}
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &FileError{Message: fmt.Sprintf("%v", err), Cause: ErrCauseWriteError}
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &FileError{Message: fmt.Sprintf("%v", err), Cause: ErrCauseWriteError}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &FileError{Message: fmt.Sprintf("%v", err), Cause: ErrCauseWriteError}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &FileError{Message: fmt.Sprintf("%v", err), Cause: ErrCauseWriteError}
	}
	return nil
}
