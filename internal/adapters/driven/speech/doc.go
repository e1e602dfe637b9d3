// Package speech implements driven.SpeechEngine on top of the platform's
// command-line synthesisers: say on macOS, espeak-ng or espeak elsewhere.
package speech
