package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SpeechEngine = (*Engine)(nil)

// Supported synthesiser programs.
const (
	ProgramSay      = "say"
	ProgramEspeakNG = "espeak-ng"
	ProgramEspeak   = "espeak"
)

// Engine speaks through one synthesiser program.
type Engine struct {
	runner  CommandRunner
	program string
}

// New detects the platform synthesiser. The returned engine reports
// Available() == false when none is installed.
func New() *Engine {
	return NewWithRunner(ExecRunner{}, detect(runtime.GOOS, exec.LookPath))
}

// NewWithRunner creates an engine for program using runner.
// An empty program yields an unavailable engine.
func NewWithRunner(runner CommandRunner, program string) *Engine {
	return &Engine{runner: runner, program: program}
}

func detect(goos string, lookPath func(string) (string, error)) string {
	candidates := []string{ProgramEspeakNG, ProgramEspeak}
	if goos == "darwin" {
		candidates = []string{ProgramSay}
	}
	for _, c := range candidates {
		if _, err := lookPath(c); err == nil {
			return c
		}
	}
	return ""
}

// Program returns the synthesiser in use.
func (e *Engine) Program() string {
	return e.program
}

// Available reports whether a synthesiser was found.
func (e *Engine) Available() bool {
	return e.program != ""
}

// Voices lists the synthesiser's voices.
func (e *Engine) Voices(ctx context.Context) ([]domain.Voice, error) {
	if !e.Available() {
		return nil, domain.ErrSpeechUnavailable
	}

	var (
		out []byte
		err error
	)
	if e.program == ProgramSay {
		out, err = e.runner.Run(ctx, e.program, "-v", "?")
	} else {
		out, err = e.runner.Run(ctx, e.program, "--voices")
	}
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}

	if e.program == ProgramSay {
		return parseSayVoices(out), nil
	}
	return parseEspeakVoices(out), nil
}

// Speak blocks until text is spoken. Cancelling ctx stops the utterance.
func (e *Engine) Speak(ctx context.Context, text string, voice domain.Voice) error {
	if !e.Available() {
		return domain.ErrSpeechUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var args []string
	switch e.program {
	case ProgramSay:
		if voice.Name != "" {
			args = append(args, "-v", voice.Name)
		}
	default:
		if voice.Locale != "" {
			args = append(args, "-v", strings.ToLower(voice.Locale))
		}
	}
	args = append(args, text)

	if _, err := e.runner.Run(ctx, e.program, args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", e.program, err)
	}
	return nil
}

// sayVoiceLine matches "Name   en_US    # sample sentence".
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

func parseSayVoices(out []byte) []domain.Voice {
	var voices []domain.Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := sayVoiceLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, domain.Voice{
			Name:   strings.TrimSpace(m[1]),
			Locale: strings.ReplaceAll(m[2], "_", "-"),
		})
	}
	return voices
}

// parseEspeakVoices reads the table printed by "espeak-ng --voices":
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en
func parseEspeakVoices(out []byte) []domain.Voice {
	var voices []domain.Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, domain.Voice{
			Name:    strings.ReplaceAll(fields[3], "_", " "),
			Locale:  fields[1],
			Default: fields[1] == "en",
		})
	}
	return voices
}
