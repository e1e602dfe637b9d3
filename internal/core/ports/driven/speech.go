package driven

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// SpeechEngine speaks text through the platform's text-to-speech.
type SpeechEngine interface {
	// Available reports whether the platform can speak at all.
	Available() bool

	// Voices lists the installed voices.
	Voices(ctx context.Context) ([]domain.Voice, error)

	// Speak blocks until text has been spoken with voice or ctx is done.
	// Cancelling ctx stops the utterance.
	Speak(ctx context.Context, text string, voice domain.Voice) error
}
