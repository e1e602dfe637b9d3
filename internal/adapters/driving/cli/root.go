// Package cli provides the cobra command tree for smartstudy.
// It is a driving adapter: commands call the core only through driving ports.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services are the driving ports the commands use.
type Services struct {
	Library driving.LibraryService
	Ingest  driving.IngestService
	Study   driving.StudyService
	Speech  driving.SpeechService
	Backup  driving.BackupService
}

// Options carries the global flags to the bootstrap function.
type Options struct {
	ConfigDir  string
	Library    string
	Storage    string
	Verbose    bool
}

// BootstrapFunc builds the services once flags are parsed. The returned
// close function is called after the command finishes.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	libraryService driving.LibraryService
	ingestService  driving.IngestService
	studyService   driving.StudyService
	speechService  driving.SpeechService
	backupService  driving.BackupService

	bootstrap BootstrapFunc
	closer    func() error
	opts      Options
)

var (
	errLibraryNotConfigured = errors.New("library service not configured")
	errIngestNotConfigured  = errors.New("ingest service not configured")
	errStudyNotConfigured   = errors.New("study service not configured")
	errSpeechNotConfigured  = errors.New("speech service not configured")
	errBackupNotConfigured  = errors.New("backup service not configured")
)

var rootCmd = &cobra.Command{
	Use:   "smartstudy",
	Short: "Offline study companion",
	Long: `SmartStudy turns your notes, PDFs, scans and archives into a searchable
study library, then summarises it, quizzes you on it and reads it aloud.

Everything runs locally. Scanned pages are read with OCR when a text layer
is missing.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print pipeline details to stderr")
	flags.StringVar(&opts.ConfigDir, "config", "", "config directory holding config.toml (default ~/.smartstudy)")
	flags.StringVarP(&opts.Library, "library", "l", "", "library to use for this command")
	flags.StringVar(&opts.Storage, "storage", "", "storage backend: file, sqlite, bolt or memory")
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	libraryService = s.Library
	ingestService = s.Ingest
	studyService = s.Study
	speechService = s.Speech
	backupService = s.Backup
}

// SetBootstrap sets the function that builds services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if bootstrap == nil {
		return nil
	}

	svcs, closeFn, err := bootstrap(commandContext(cmd), opts)
	if err != nil {
		return err
	}
	SetServices(svcs)
	closer = closeFn
	return nil
}

func teardown() error {
	if closer == nil {
		return nil
	}
	closeFn := closer
	closer = nil
	return closeFn()
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
