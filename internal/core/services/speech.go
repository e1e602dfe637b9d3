package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure SpeechService implements the interface.
var _ driving.SpeechService = (*SpeechService)(nil)

// regionNames maps region subtags to names that appear in voice names.
var regionNames = map[string]string{
	"IN": "India",
	"GB": "Britain",
	"US": "America",
	"AU": "Australia",
}

// SpeechService speaks text with the preferred voice. Only one utterance
// plays at a time: a new request cancels the previous one.
type SpeechService struct {
	engine   driven.SpeechEngine
	settings driving.SettingsService
	locale   string

	// voice is cached only once the engine has listed its voices.
	voiceMu  sync.Mutex
	voice    domain.Voice
	hasVoice bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeechService creates a speech service preferring locale.
// An empty locale selects domain.DefaultVoiceLocale.
func NewSpeechService(engine driven.SpeechEngine, settings driving.SettingsService, locale string) *SpeechService {
	if locale == "" {
		locale = domain.DefaultVoiceLocale
	}
	return &SpeechService{engine: engine, settings: settings, locale: locale}
}

// Speak starts speaking text and returns immediately.
func (s *SpeechService) Speak(ctx context.Context, text string) error {
	_, err := s.start(ctx, text)
	return err
}

// SpeakAndWait speaks text and blocks until it finishes or ctx is done.
func (s *SpeechService) SpeakAndWait(ctx context.Context, text string) error {
	wait, err := s.start(ctx, text)
	if err != nil || wait == nil {
		return err
	}
	select {
	case err := <-wait:
		return err
	case <-ctx.Done():
		s.Stop()
		return ctx.Err()
	}
}

// start cancels any utterance in flight and launches a new one. It returns
// a channel that yields the outcome, or nil when nothing is spoken.
func (s *SpeechService) start(ctx context.Context, text string) (<-chan error, error) {
	if !s.enabled(ctx) || strings.TrimSpace(text) == "" {
		return nil, nil
	}
	voice := s.preferredVoice(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	uctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	result := make(chan error, 1)
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer cancel()
		err := s.engine.Speak(uctx, text, voice)
		if err != nil && uctx.Err() == nil {
			logger.Warn("speech failed: %v", err)
		}
		if uctx.Err() != nil {
			err = nil
		}
		result <- err
	}()
	return result, nil
}

// Stop cancels the current utterance and waits for it to end.
func (s *SpeechService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *SpeechService) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Voices lists the platform voices.
func (s *SpeechService) Voices(ctx context.Context) ([]domain.Voice, error) {
	if s.engine == nil || !s.engine.Available() {
		return nil, domain.ErrSpeechUnavailable
	}
	return s.engine.Voices(ctx)
}

func (s *SpeechService) enabled(ctx context.Context) bool {
	if s.engine == nil || !s.engine.Available() {
		return false
	}
	if s.settings == nil {
		return true
	}
	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return false
	}
	return settings.VoiceEnabled
}

func (s *SpeechService) preferredVoice(ctx context.Context) domain.Voice {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()

	if s.hasVoice {
		return s.voice
	}
	voices, err := s.engine.Voices(ctx)
	if err != nil {
		logger.Debug("cannot list voices, using engine default: %v", err)
		return domain.Voice{}
	}
	s.voice = PickVoice(voices, s.locale)
	s.hasVoice = true
	return s.voice
}

// PickVoice chooses a voice for locale: an exact locale match, then a voice
// whose locale or name carries the region, then the first voice of the base
// language, then the first voice. An empty list yields the zero Voice.
func PickVoice(voices []domain.Voice, locale string) domain.Voice {
	if len(voices) == 0 {
		return domain.Voice{}
	}

	want := normaliseLocale(locale)
	lang, region, _ := strings.Cut(want, "-")

	for _, v := range voices {
		if normaliseLocale(v.Locale) == want {
			return v
		}
	}

	if region != "" {
		regionName := strings.ToLower(regionNames[strings.ToUpper(region)])
		for _, v := range voices {
			loc := normaliseLocale(v.Locale)
			name := strings.ToLower(v.Name)
			if strings.HasSuffix(loc, "-"+region) || (regionName != "" && strings.Contains(name, regionName)) {
				return v
			}
		}
	}

	for _, v := range voices {
		loc := normaliseLocale(v.Locale)
		if loc == lang || strings.HasPrefix(loc, lang+"-") {
			return v
		}
	}
	return voices[0]
}

func normaliseLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
