package driving

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// SettingsService manages the preferences stored with the current library.
type SettingsService interface {
	// Settings returns the current settings.
	Settings(ctx context.Context) (domain.Settings, error)

	// SetOCRLang sets the OCR language code (e.g., "eng", "hin").
	SetOCRLang(ctx context.Context, lang string) error

	// SetVoiceEnabled toggles speech output.
	SetVoiceEnabled(ctx context.Context, enabled bool) error
}
