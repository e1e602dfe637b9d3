package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/smartstudy/cgo/tesseract"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/config/file"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/ocr"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/raster/mupdf"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/speech"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/boltdb"
	filestore "github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/smartstudy/internal/adapters/driving/cli"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/core/services"
	"github.com/custodia-labs/smartstudy/internal/extractors"
	"github.com/custodia-labs/smartstudy/internal/extractors/archive"
	"github.com/custodia-labs/smartstudy/internal/extractors/fallback"
	"github.com/custodia-labs/smartstudy/internal/extractors/html"
	"github.com/custodia-labs/smartstudy/internal/extractors/image"
	"github.com/custodia-labs/smartstudy/internal/extractors/pdf"
	"github.com/custodia-labs/smartstudy/internal/extractors/plaintext"
	"github.com/custodia-labs/smartstudy/internal/logger"
	"github.com/custodia-labs/smartstudy/internal/postprocessors"
	"github.com/custodia-labs/smartstudy/internal/textkit"
)

// closableStore is a key-value store owning resources.
type closableStore interface {
	driven.KeyValueStore
	Close() error
}

// bootstrap wires the adapters and services for one command run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	cfg := services.LoadConfig(openConfig(opts.ConfigDir))
	if opts.Storage != "" {
		cfg.StorageBackend = strings.ToLower(opts.Storage)
	}

	kv, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	ocrEngine := newOCREngine(cfg)
	closeAll := func() error {
		return errors.Join(ocrEngine.Close(), kv.Close())
	}

	svcs, err := newServices(ctx, cfg, opts.Library, kv, ocrEngine)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}
	return svcs, closeAll, nil
}

// openConfig opens the TOML config in dir, or defaults when it cannot be read.
func openConfig(dir string) driven.ConfigStore {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Warn("cannot open config in %s: %v, using defaults", dir, err)
		return memory.NewConfigStore()
	}
	return store
}

// openStore opens the configured backend. When a persistent store cannot
// be opened the tool keeps working on an in-memory store.
func openStore(cfg services.Config) (closableStore, error) {
	var (
		kv  closableStore
		err error
	)
	switch cfg.StorageBackend {
	case services.BackendFile:
		kv, err = filestore.NewKeyValueStore(cfg.DataDir)
	case services.BackendSQLite:
		kv, err = sqlite.NewStore(cfg.DataDir)
	case services.BackendBolt:
		kv, err = boltdb.NewStore(cfg.DataDir)
	case services.BackendMemory:
		return memory.NewKeyValueStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (choose file, sqlite, bolt or memory)", cfg.StorageBackend)
	}
	if err != nil {
		logger.Warn("cannot open %s storage in %s: %v", cfg.StorageBackend, cfg.DataDir, err)
		logger.Warn("falling back to in-memory storage, nothing will be saved")
		return memory.NewKeyValueStore(), nil
	}
	return kv, nil
}

// newOCREngine wraps tesseract when the build has it. Without it every
// recognition reports OCR as unavailable.
func newOCREngine(cfg services.Config) *ocr.FallbackEngine {
	var inner driven.OCREngine
	engine, err := tesseract.New()
	if err != nil {
		logger.Debug("ocr disabled: %v", err)
	} else {
		inner = engine
	}
	return ocr.NewFallbackEngine(inner).WithFallbackLang(cfg.OCRDefaultLang)
}

func newServices(ctx context.Context, cfg services.Config, libraryName string, kv driven.KeyValueStore, ocrEngine driven.OCREngine) (*cli.Services, error) {
	registry := extractors.NewRegistry(
		plaintext.New(),
		html.New(),
		pdf.New(
			pdf.WithOCR(ocrEngine, mupdf.New(float64(cfg.RasterDPI), 0)),
			pdf.WithOCRMinChars(cfg.OCRMinChars),
		),
		image.New(ocrEngine),
		fallback.New(),
	)

	post, err := newPostProcessors(cfg)
	if err != nil {
		return nil, err
	}

	library, err := services.NewLibraryService(ctx, kv, libraryName)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	splitter, err := textkit.NewSplitter(cfg.Splitter)
	if err != nil {
		return nil, err
	}
	scorer, err := textkit.NewScorer(cfg.Scorer)
	if err != nil {
		return nil, err
	}

	pipeline := services.NewPipeline(registry, archive.New(cfg.MaxArchiveBytes()), post)

	return &cli.Services{
		Library: library,
		Ingest:  services.NewIngestService(pipeline, library, cfg.Workers),
		Study: services.NewStudyService(
			library,
			textkit.NewSummarizer(splitter, scorer),
			textkit.NewQuizGenerator(splitter, nil),
		),
		Speech: services.NewSpeechService(speech.New(), library, cfg.VoiceLocale),
		Backup: services.NewBackupService(library),
	}, nil
}

func newPostProcessors(cfg services.Config) (*postprocessors.Pipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	names := cfg.PostProcessors
	if len(names) == 0 {
		names = postprocessors.DefaultProcessors
	}
	pipeline, err := registry.BuildPipeline(names, cfg.ProcessorConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build post-processors: %w", err)
	}
	return pipeline, nil
}
