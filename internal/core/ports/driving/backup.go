package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// BackupService exports and restores the current library.
type BackupService interface {
	// Export writes the current library in the given format.
	Export(ctx context.Context, w io.Writer, format domain.BackupFormat) error

	// Import replaces the current library with the backup in r.
	// Returns domain.ErrInvalidBackup and leaves the library unchanged
	// if r cannot be parsed.
	Import(ctx context.Context, r io.Reader, format domain.BackupFormat) error
}
