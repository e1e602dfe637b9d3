package driving

import (
	"context"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// SpeechService reads text aloud when voice output is enabled.
type SpeechService interface {
	// Speak starts speaking text and returns immediately.
	// A new call cancels any utterance still in flight.
	Speak(ctx context.Context, text string) error

	// SpeakAndWait speaks text and blocks until it finishes.
	SpeakAndWait(ctx context.Context, text string) error

	// Stop cancels the current utterance, if any.
	Stop()

	// Voices lists the platform voices.
	Voices(ctx context.Context) ([]domain.Voice, error)
}
