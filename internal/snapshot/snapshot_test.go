package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

func sampleLibrary() domain.Library {
	lib := domain.NewLibrary()
	lib.Documents = append(lib.Documents,
		domain.Document{
			ID:               "doc-1",
			Name:             "a.txt",
			MediaKind:        domain.MediaText,
			Text:             "Cats are mammals. Dogs are mammals too.",
			ExtractionMethod: domain.MethodDirectText,
			AddedAt:          domain.Timestamp(time.Date(2024, 5, 1, 8, 0, 0, 250e6, time.UTC)),
			Subject:          "Biology",
			Chapter:          "Chapter 1",
		},
		domain.Document{
			ID:               "doc-2",
			Name:             "b.png",
			MediaKind:        domain.MediaImage,
			Text:             "HELLO WORLD",
			ExtractionMethod: domain.MethodOCR,
			AddedAt:          domain.Timestamp(time.Date(2024, 5, 1, 8, 0, 1, 0, time.UTC)),
			Subject:          domain.DefaultSubject,
			Chapter:          domain.DefaultChapter,
		},
	)
	lib.User.Name = "Asha"
	lib.User.TodayCount = 7
	lib.User.Streak = 3
	lib.User.Badges = []string{domain.BadgeFirstUpload, domain.Badge3DayStreak}
	lib.User.LastActive = "2024-05-01"
	lib.Settings.OCRLang = "hin"
	lib.Settings.VoiceEnabled = false
	return lib
}

// TestRoundTrip tests that decode(encode(lib)) equals lib for every codec
func TestRoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"json":        JSON{},
		"json-indent": JSON{Indent: true},
		"yaml":        YAML{},
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, lib := range []domain.Library{domain.NewLibrary(), sampleLibrary()} {
				data, err := codec.Encode(lib)
				require.NoError(t, err)

				got, err := codec.Decode(data)
				require.NoError(t, err)
				assert.Equal(t, lib, got)
			}
		})
	}
}

// TestJSON_Layout tests the persisted key names and value types
func TestJSON_Layout(t *testing.T) {
	data, err := JSON{}.Encode(sampleLibrary())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Contains(t, raw, "library")
	require.Contains(t, raw, "user")
	require.Contains(t, raw, "settings")

	docs := raw["library"].([]any)
	require.Len(t, docs, 2)
	first := docs[0].(map[string]any)
	for _, key := range []string{"id", "name", "mediaKind", "text", "extractionMethod", "addedAt", "subject", "chapter"} {
		assert.Contains(t, first, key)
	}
	assert.Equal(t, float64(time.Date(2024, 5, 1, 8, 0, 0, 250e6, time.UTC).UnixMilli()), first["addedAt"])
	assert.Equal(t, "direct-text", first["extractionMethod"])

	u := raw["user"].(map[string]any)
	assert.Equal(t, float64(domain.DefaultDailyTarget), u["dailyTarget"])
	assert.Equal(t, "2024-05-01", u["lastActive"])

	s := raw["settings"].(map[string]any)
	assert.Equal(t, "hin", s["ocrLang"])
	assert.Equal(t, false, s["voiceEnabled"])
}

// TestJSON_MissingKeysDefault tests that absent keys take initial values
func TestJSON_MissingKeysDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, lib domain.Library)
	}{
		{
			name:  "empty object",
			input: `{}`,
			check: func(t *testing.T, lib domain.Library) {
				assert.Equal(t, domain.NewLibrary(), lib)
			},
		},
		{
			name:  "user without target",
			input: `{"user":{"name":"Ravi","streak":2}}`,
			check: func(t *testing.T, lib domain.Library) {
				assert.Equal(t, "Ravi", lib.User.Name)
				assert.Equal(t, 2, lib.User.Streak)
				assert.Equal(t, domain.DefaultDailyTarget, lib.User.DailyTarget)
				assert.NotNil(t, lib.User.Badges)
			},
		},
		{
			name:  "settings without voice",
			input: `{"settings":{"ocrLang":"mar"}}`,
			check: func(t *testing.T, lib domain.Library) {
				assert.Equal(t, "mar", lib.Settings.OCRLang)
				assert.True(t, lib.Settings.VoiceEnabled)
			},
		},
		{
			name:  "document with only id and text",
			input: `{"library":[{"id":"x","text":"hello"}]}`,
			check: func(t *testing.T, lib domain.Library) {
				require.Len(t, lib.Documents, 1)
				d := lib.Documents[0]
				assert.Equal(t, domain.MediaUnknown, d.MediaKind)
				assert.Equal(t, domain.MethodDirectText, d.ExtractionMethod)
				assert.Equal(t, domain.DefaultSubject, d.Subject)
				assert.Equal(t, domain.DefaultChapter, d.Chapter)
			},
		},
		{
			name:  "null badges and library",
			input: `{"library":null,"user":{"badges":null}}`,
			check: func(t *testing.T, lib domain.Library) {
				assert.NotNil(t, lib.Documents)
				assert.NotNil(t, lib.User.Badges)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := JSON{}.Decode([]byte(tt.input))
			require.NoError(t, err)
			tt.check(t, lib)
		})
	}
}

// TestDecode_Malformed tests that malformed input wraps ErrInvalidInput
func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		input string
	}{
		{"json empty", JSON{}, ""},
		{"json garbage", JSON{}, "not json"},
		{"json array", JSON{}, `[1,2]`},
		{"json null", JSON{}, `null`},
		{"json truncated", JSON{}, `{"library":[`},
		{"json wrong type", JSON{}, `{"library":"oops"}`},
		{"json missing id", JSON{}, `{"library":[{"text":"x"}]}`},
		{"json duplicate id", JSON{}, `{"library":[{"id":"a"},{"id":"a"}]}`},
		{"json bad day", JSON{}, `{"user":{"lastActive":"yesterday"}}`},
		{"yaml empty", YAML{}, ""},
		{"yaml scalar", YAML{}, "just text"},
		{"yaml wrong type", YAML{}, "library: 5\n"},
		{"yaml broken", YAML{}, "library: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode([]byte(tt.input))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// TestFor tests codec selection by backup format
func TestFor(t *testing.T) {
	c, err := For(domain.BackupJSON)
	require.NoError(t, err)
	assert.IsType(t, JSON{}, c)

	c, err = For(domain.BackupYAML)
	require.NoError(t, err)
	assert.IsType(t, YAML{}, c)

	_, err = For("xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
