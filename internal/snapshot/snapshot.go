// Package snapshot encodes a library to and from its persisted layout.
//
// The layout is one object with three keys:
//
//	{
//	  "library":  [ {id, name, mediaKind, text, extractionMethod, addedAt, subject, chapter} ],
//	  "user":     {name, dailyTarget, todayCount, streak, badges, lastActive},
//	  "settings": {ocrLang, voiceEnabled}
//	}
//
// addedAt is Unix milliseconds. Keys missing on decode take the initial
// values of domain.NewLibrary.
package snapshot

import (
	"fmt"
	"time"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// Codec converts a library to bytes and back.
type Codec interface {
	// Encode serialises lib.
	Encode(lib domain.Library) ([]byte, error)

	// Decode parses data. Errors wrap domain.ErrInvalidInput.
	Decode(data []byte) (domain.Library, error)
}

// For returns the codec for a backup format.
func For(format domain.BackupFormat) (Codec, error) {
	switch format {
	case domain.BackupJSON, "":
		return JSON{}, nil
	case domain.BackupYAML:
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backup format %q", domain.ErrInvalidInput, format)
	}
}

type state struct {
	Library  []document `json:"library" yaml:"library"`
	User     user       `json:"user" yaml:"user"`
	Settings settings   `json:"settings" yaml:"settings"`
}

type document struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	MediaKind        string `json:"mediaKind" yaml:"mediaKind"`
	Text             string `json:"text" yaml:"text"`
	ExtractionMethod string `json:"extractionMethod" yaml:"extractionMethod"`
	AddedAt          int64  `json:"addedAt" yaml:"addedAt"`
	Subject          string `json:"subject" yaml:"subject"`
	Chapter          string `json:"chapter" yaml:"chapter"`
}

type user struct {
	Name        string   `json:"name" yaml:"name"`
	DailyTarget int      `json:"dailyTarget" yaml:"dailyTarget"`
	TodayCount  int      `json:"todayCount" yaml:"todayCount"`
	Streak      int      `json:"streak" yaml:"streak"`
	Badges      []string `json:"badges" yaml:"badges"`
	LastActive  string   `json:"lastActive,omitempty" yaml:"lastActive,omitempty"`
}

type settings struct {
	OCRLang      string `json:"ocrLang" yaml:"ocrLang"`
	VoiceEnabled bool   `json:"voiceEnabled" yaml:"voiceEnabled"`
}

// initial returns the wire form of a fresh library; decoding into it
// leaves absent keys at their initial values.
func initial() state {
	return fromLibrary(domain.NewLibrary())
}

func fromLibrary(lib domain.Library) state {
	s := state{
		Library: make([]document, 0, len(lib.Documents)),
		User: user{
			Name:        lib.User.Name,
			DailyTarget: lib.User.DailyTarget,
			TodayCount:  lib.User.TodayCount,
			Streak:      lib.User.Streak,
			Badges:      append([]string{}, lib.User.Badges...),
			LastActive:  lib.User.LastActive,
		},
		Settings: settings{
			OCRLang:      lib.Settings.OCRLang,
			VoiceEnabled: lib.Settings.VoiceEnabled,
		},
	}
	for _, d := range lib.Documents {
		s.Library = append(s.Library, document{
			ID:               d.ID,
			Name:             d.Name,
			MediaKind:        string(d.MediaKind),
			Text:             d.Text,
			ExtractionMethod: string(d.ExtractionMethod),
			AddedAt:          d.AddedAt.UnixMilli(),
			Subject:          d.Subject,
			Chapter:          d.Chapter,
		})
	}
	return s
}

func (s state) toLibrary() (domain.Library, error) {
	lib := domain.NewLibrary()
	seen := make(map[string]bool, len(s.Library))

	for i, d := range s.Library {
		if d.ID == "" {
			return domain.Library{}, fmt.Errorf("%w: document %d has no id", domain.ErrInvalidInput, i)
		}
		if seen[d.ID] {
			return domain.Library{}, fmt.Errorf("%w: duplicate document id %q", domain.ErrInvalidInput, d.ID)
		}
		seen[d.ID] = true

		kind := domain.MediaKind(d.MediaKind)
		if !kind.IsValid() {
			kind = domain.MediaUnknown
		}
		method := domain.ExtractionMethod(d.ExtractionMethod)
		if !method.IsValid() {
			method = domain.MethodNone
			if d.Text != "" {
				method = domain.MethodDirectText
			}
		}

		lib.Documents = append(lib.Documents, domain.Document{
			ID:               d.ID,
			Name:             d.Name,
			MediaKind:        kind,
			Text:             d.Text,
			ExtractionMethod: method,
			AddedAt:          time.UnixMilli(d.AddedAt).UTC(),
			Subject:          orDefault(d.Subject, domain.DefaultSubject),
			Chapter:          orDefault(d.Chapter, domain.DefaultChapter),
		})
	}

	lib.User = domain.UserStats{
		Name:        s.User.Name,
		DailyTarget: s.User.DailyTarget,
		TodayCount:  max(s.User.TodayCount, 0),
		Streak:      max(s.User.Streak, 0),
		Badges:      append([]string{}, s.User.Badges...),
		LastActive:  s.User.LastActive,
	}
	if lib.User.DailyTarget < 1 {
		lib.User.DailyTarget = domain.DefaultDailyTarget
	}
	if lib.User.LastActive != "" {
		if _, err := time.Parse(domain.DayLayout, lib.User.LastActive); err != nil {
			return domain.Library{}, fmt.Errorf("%w: lastActive %q", domain.ErrInvalidInput, lib.User.LastActive)
		}
	}

	lib.Settings = domain.Settings{
		OCRLang:      orDefault(s.Settings.OCRLang, domain.DefaultOCRLang),
		VoiceEnabled: s.Settings.VoiceEnabled,
	}
	return lib, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
