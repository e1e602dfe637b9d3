package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/snapshot"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// MaxBackupBytes bounds the size of an imported backup.
const MaxBackupBytes = 512 << 20

// LibraryHolder exposes the whole current library.
type LibraryHolder interface {
	Library(ctx context.Context) (domain.Library, error)
	Replace(ctx context.Context, lib domain.Library) error
}

// BackupService exports and imports the current library.
type BackupService struct {
	library LibraryHolder
}

// NewBackupService creates a backup service.
func NewBackupService(library LibraryHolder) *BackupService {
	return &BackupService{library: library}
}

// Export writes the library in the persisted layout.
func (s *BackupService) Export(ctx context.Context, w io.Writer, format domain.BackupFormat) error {
	codec, err := exportCodec(format)
	if err != nil {
		return err
	}

	lib, err := s.library.Library(ctx)
	if err != nil {
		return err
	}
	data, err := codec.Encode(lib)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Import parses the whole backup before touching the library. Invalid
// input returns domain.ErrInvalidBackup and leaves the library unchanged.
func (s *BackupService) Import(ctx context.Context, r io.Reader, format domain.BackupFormat) error {
	codec, err := snapshot.For(format)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxBackupBytes+1))
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if len(data) > MaxBackupBytes {
		return fmt.Errorf("%w: larger than %d bytes", domain.ErrInvalidBackup, MaxBackupBytes)
	}

	lib, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	return s.library.Replace(ctx, lib)
}

func exportCodec(format domain.BackupFormat) (snapshot.Codec, error) {
	if format == domain.BackupJSON || format == "" {
		return snapshot.JSON{Indent: true}, nil
	}
	return snapshot.For(format)
}
