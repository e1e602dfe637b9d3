package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Config keys.
const (
	KeyStorageBackend     = "storage.backend"
	KeyStorageDataDir     = "storage.data_dir"
	KeyExtractionWorkers  = "extraction.workers"
	KeyOCRMinChars        = "extraction.ocr_min_chars"
	KeyMaxArchiveMB       = "extraction.max_archive_mb"
	KeyOCRDefaultLang     = "ocr.default_lang"
	KeyRasterDPI          = "ocr.dpi"
	KeyVoiceLocale        = "voice.locale"
	KeyStudySplitter      = "study.splitter"
	KeyStudyScorer        = "study.scorer"
	KeyPostProcessors     = "postprocess.processors"
	KeyPostProcessMaxChar = "postprocess.max_chars"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Defaults applied when a key is absent or invalid.
const (
	DefaultBackend      = BackendFile
	DefaultWorkers      = 2
	DefaultOCRMinChars  = 32
	DefaultMaxArchiveMB = 500
	DefaultRasterDPI    = 300
)

// Config is the typed view of the application configuration.
type Config struct {
	StorageBackend string
	DataDir        string
	Workers        int
	OCRMinChars    int
	MaxArchiveMB   int
	OCRDefaultLang string
	RasterDPI      int
	VoiceLocale    string
	Splitter       string
	Scorer         string
	PostProcessors []string
	PostMaxChars   int
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		StorageBackend: DefaultBackend,
		DataDir:        defaultDataDir(),
		Workers:        DefaultWorkers,
		OCRMinChars:    DefaultOCRMinChars,
		MaxArchiveMB:   DefaultMaxArchiveMB,
		OCRDefaultLang: domain.DefaultOCRLang,
		RasterDPI:      DefaultRasterDPI,
		VoiceLocale:    domain.DefaultVoiceLocale,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".smartstudy", "data")
	}
	return filepath.Join(home, ".smartstudy", "data")
}

// LoadConfig reads every known key from store, falling back to defaults.
func LoadConfig(store driven.ConfigStore) Config {
	cfg := DefaultConfig()
	if store == nil {
		return cfg
	}

	cfg.StorageBackend = getBackend(store, cfg.StorageBackend)
	cfg.DataDir = getString(store, KeyStorageDataDir, cfg.DataDir)
	cfg.Workers = getPositiveInt(store, KeyExtractionWorkers, cfg.Workers)
	cfg.OCRMinChars = getPositiveInt(store, KeyOCRMinChars, cfg.OCRMinChars)
	cfg.MaxArchiveMB = getPositiveInt(store, KeyMaxArchiveMB, cfg.MaxArchiveMB)
	cfg.OCRDefaultLang = getString(store, KeyOCRDefaultLang, cfg.OCRDefaultLang)
	cfg.RasterDPI = getPositiveInt(store, KeyRasterDPI, cfg.RasterDPI)
	cfg.VoiceLocale = getString(store, KeyVoiceLocale, cfg.VoiceLocale)
	cfg.Splitter = store.GetString(KeyStudySplitter)
	cfg.Scorer = store.GetString(KeyStudyScorer)
	cfg.PostProcessors = store.GetStringSlice(KeyPostProcessors)
	cfg.PostMaxChars = getPositiveInt(store, KeyPostProcessMaxChar, 0)

	return cfg
}

// MaxArchiveBytes returns the archive size limit in bytes.
func (c Config) MaxArchiveBytes() int64 {
	return int64(c.MaxArchiveMB) << 20
}

// ProcessorConfig returns the generic config handed to post-processor builders.
func (c Config) ProcessorConfig() map[string]any {
	return map[string]any{"max_chars": c.PostMaxChars}
}

func getString(store driven.ConfigStore, key, defaultVal string) string {
	val := strings.TrimSpace(store.GetString(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getPositiveInt(store driven.ConfigStore, key string, defaultVal int) int {
	val := store.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func getBackend(store driven.ConfigStore, defaultVal string) string {
	switch val := strings.ToLower(store.GetString(KeyStorageBackend)); val {
	case BackendFile, BackendSQLite, BackendBolt, BackendMemory:
		return val
	default:
		return defaultVal
	}
}
