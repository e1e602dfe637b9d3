package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/extractors"
	"github.com/custodia-labs/smartstudy/internal/extractors/archive"
	"github.com/custodia-labs/smartstudy/internal/extractors/fallback"
	"github.com/custodia-labs/smartstudy/internal/extractors/image"
	"github.com/custodia-labs/smartstudy/internal/extractors/plaintext"
	"github.com/custodia-labs/smartstudy/internal/postprocessors"
	"github.com/custodia-labs/smartstudy/internal/postprocessors/tagger"
)

// testNow is the fixed clock used across service tests.
var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// failingKV wraps a memory store and fails Put when failPut is set.
type failingKV struct {
	*memory.KeyValueStore
	mu      sync.Mutex
	failPut bool
}

func newFailingKV() *failingKV {
	return &failingKV{KeyValueStore: memory.NewKeyValueStore()}
}

func (f *failingKV) setFailPut(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = v
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failPut
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.KeyValueStore.Put(ctx, key, value)
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLibrary(t *testing.T) (*LibraryService, *memory.KeyValueStore) {
	t.Helper()
	kv := memory.NewKeyValueStore()
	lib, err := NewLibraryService(context.Background(), kv, "", WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return lib, kv
}

// testDoc builds a document with a predictable id.
func testDoc(i int, text string) domain.Document {
	return domain.Document{
		ID:               fmt.Sprintf("doc-%d", i),
		Name:             fmt.Sprintf("file-%d.txt", i),
		MediaKind:        domain.MediaText,
		Text:             text,
		ExtractionMethod: domain.MethodDirectText,
		AddedAt:          domain.Timestamp(testNow),
		Subject:          domain.DefaultSubject,
		Chapter:          domain.DefaultChapter,
	}
}

// fakeOCR returns fixed text for every image.
type fakeOCR struct {
	text string
	err  error

	mu    sync.Mutex
	calls int
}

func (f *fakeOCR) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.text, f.err
}

func (f *fakeOCR) Close() error { return nil }

// zipFile is one entry for buildZip.
type zipFile struct {
	name    string
	content []byte
}

func buildZip(t *testing.T, files ...zipFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildZipWithBadCRC creates an archive holding good, then an entry named
// bad whose stored checksum does not match its content.
func buildZipWithBadCRC(t *testing.T, good zipFile, bad string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(good.name)
	require.NoError(t, err)
	_, err = w.Write(good.content)
	require.NoError(t, err)

	content := []byte("Plants make food from sunlight.")
	w, err = zw.CreateRaw(&zip.FileHeader{
		Name:               bad,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(content) + 1,
		CompressedSize64:   uint64(len(content)),
		UncompressedSize64: uint64(len(content)),
	})
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// newTestPipeline wires the text, image and fallback extractors, the zip
// expander and the tagger, with sequential ids.
func newTestPipeline(ocr driven.OCREngine) *Pipeline {
	registry := extractors.NewRegistry(
		plaintext.New(),
		image.New(ocr),
		fallback.New(),
	)

	var (
		mu sync.Mutex
		n  int
	)
	nextID := func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}

	return NewPipeline(
		registry,
		archive.New(0),
		postprocessors.NewPipeline(tagger.New()),
		WithIDGenerator(nextID),
		WithPipelineClock(func() time.Time { return testNow }),
	)
}

// recorder collects progress events.
type recorder struct {
	mu     sync.Mutex
	events []domain.Progress
}

func (r *recorder) Report(p domain.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

func (r *recorder) Events() []domain.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Progress{}, r.events...)
}
