package domain

// DefaultVoiceLocale is the preferred speech locale.
const DefaultVoiceLocale = "en-IN"

// Voice is a text-to-speech voice offered by the platform.
type Voice struct {
	// Name is the engine-specific voice name.
	Name string

	// Locale is the BCP 47 style tag (e.g., "en-IN", "en_GB").
	Locale string

	// Default is true for the platform's default voice.
	Default bool
}
