package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BackupFormat is the encoding of an exported library.
type BackupFormat string

// Backup formats.
const (
	BackupJSON BackupFormat = "json"
	BackupYAML BackupFormat = "yaml"
)

// BackupFormatForPath picks the format from a file extension.
// Unknown extensions return ErrInvalidInput.
func BackupFormatForPath(path string) (BackupFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return BackupJSON, nil
	case ".yaml", ".yml":
		return BackupYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported backup extension %q", ErrInvalidInput, filepath.Ext(path))
	}
}

// FileFailure records a file whose processing degraded or was skipped.
type FileFailure struct {
	// Name is the file (or archive entry) name.
	Name string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (f FileFailure) Error() string {
	return fmt.Sprintf("processing failed for %s: %v", f.Name, f.Err)
}

// Unwrap returns the underlying cause.
func (f FileFailure) Unwrap() error {
	return f.Err
}
