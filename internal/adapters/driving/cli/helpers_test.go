package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/services"
	"github.com/custodia-labs/smartstudy/internal/extractors"
	"github.com/custodia-labs/smartstudy/internal/extractors/archive"
	"github.com/custodia-labs/smartstudy/internal/extractors/fallback"
	"github.com/custodia-labs/smartstudy/internal/extractors/plaintext"
	"github.com/custodia-labs/smartstudy/internal/postprocessors"
	"github.com/custodia-labs/smartstudy/internal/postprocessors/tagger"
	"github.com/custodia-labs/smartstudy/internal/textkit"
)

const studyText = `Photosynthesis converts light energy into chemical energy inside green plants.
Chlorophyll absorbs sunlight because it contains magnesium at the centre of each molecule.
Mammals are warm blooded animals that feed their young with milk.
Therefore respiration releases the energy that photosynthesis stores in glucose.`

// fakeSpeechEngine records what it is asked to speak.
type fakeSpeechEngine struct {
	mu     sync.Mutex
	spoken []string
	voices []domain.Voice
}

func (f *fakeSpeechEngine) Available() bool { return true }

func (f *fakeSpeechEngine) Voices(_ context.Context) ([]domain.Voice, error) {
	return f.voices, nil
}

func (f *fakeSpeechEngine) Speak(_ context.Context, text string, _ domain.Voice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	return nil
}

func (f *fakeSpeechEngine) Spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.spoken...)
}

// stubStudyService returns a fixed quiz; summaries come from the real service.
type stubStudyService struct {
	*services.StudyService
	quiz domain.Quiz
}

func (s *stubStudyService) Quiz(_ context.Context, _ int) (domain.Quiz, error) {
	return s.quiz, nil
}

// testEnv holds real services over an in-memory store.
type testEnv struct {
	kv      *memory.KeyValueStore
	library *services.LibraryService
	study   *services.StudyService
	engine  *fakeSpeechEngine
	out     *bytes.Buffer
}

// newTestEnv wires the commands to fresh services and resets flag state.
// Everything is restored when the test ends.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	kv := memory.NewKeyValueStore()
	library, err := services.NewLibraryService(ctx, kv, "")
	require.NoError(t, err)

	registry := extractors.NewRegistry(plaintext.New(), fallback.New())
	pipeline := services.NewPipeline(registry, archive.New(0), postprocessors.NewPipeline(tagger.New()))
	study := services.NewStudyService(library,
		textkit.NewSummarizer(textkit.RegexSplitter{}, textkit.KeywordScorer{}),
		textkit.NewQuizGenerator(nil, nil))
	engine := &fakeSpeechEngine{voices: []domain.Voice{
		{Name: "Rishi", Locale: "en-IN", Default: true},
		{Name: "Daniel", Locale: "en-GB"},
	}}

	SetServices(&Services{
		Library: library,
		Ingest:  services.NewIngestService(pipeline, library, 2),
		Study:   study,
		Speech:  services.NewSpeechService(engine, library, ""),
		Backup:  services.NewBackupService(library),
	})
	SetBootstrap(nil)
	resetFlags()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	return &testEnv{kv: kv, library: library, study: study, engine: engine, out: out}
}

// resetFlags restores every package-level flag variable to its default.
// Cobra only assigns flags that appear on the command line.
func resetFlags() {
	opts = Options{}
	addQuiet = false
	watchSettle = defaultSettle
	documentSummarySentences = 3
	clearYes = false
	summarySentences = domain.DefaultSummarySentences
	summarySpeak = false
	quizQuestions = domain.DefaultQuizQuestions
	quizPrint = false
	quizPlain = false
	speakDoc = ""
	tuiQuizSize = 0
}

// run executes the root command with args and returns its output.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e.out.Reset()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return e.out.String(), err
}

// runWithInput is run with stdin set to input.
func (e *testEnv) runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)
	return e.run(t, args...)
}

// addDoc stores a text document and returns it.
func (e *testEnv) addDoc(t *testing.T, name, text string) domain.Document {
	t.Helper()
	docs, err := e.library.List(context.Background())
	require.NoError(t, err)
	doc := domain.Document{
		ID:               fmt.Sprintf("doc-%d", len(docs)+1),
		Name:             name,
		MediaKind:        domain.MediaText,
		Text:             text,
		ExtractionMethod: domain.MethodDirectText,
		Subject:          domain.DefaultSubject,
		Chapter:          domain.DefaultChapter,
	}
	_, err = e.library.Add(context.Background(), doc)
	require.NoError(t, err)
	return doc
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*syncBuffer)(nil)

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
