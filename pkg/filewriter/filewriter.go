// Package filewriter writes whole files, creating parent directories as
// needed.
package filewriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Write stores content at path, replacing any existing file, and returns
// the number of bytes written.
func Write(fs afero.Fs, path string, content []byte) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("path is required")
	}

	if err := fs.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return 0, fmt.Errorf("error creating parent directory for %s: %w", path, err)
	}

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return 0, fmt.Errorf("error opening %s: %w", path, err)
	}

	n, err := f.Write(content)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("error closing %s: %w", path, err)
	}

	return n, nil
}

// WriteString is Write for string content.
func WriteString(fs afero.Fs, path, content string) (int, error) {
	return Write(fs, path, []byte(content))
}
