package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driving"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// MaxFileBytes bounds a single file read from disk.
const MaxFileBytes = 1 << 30

// IngestService extracts files with bounded concurrency and adds the
// resulting documents to the current library in input order.
type IngestService struct {
	pipeline *Pipeline
	library  driving.LibraryService
	workers  int
}

// NewIngestService creates an ingest service. workers < 1 selects DefaultWorkers.
func NewIngestService(pipeline *Pipeline, library driving.LibraryService, workers int) *IngestService {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &IngestService{pipeline: pipeline, library: library, workers: workers}
}

// Ingest extracts every file and appends all documents, persisting once.
func (s *IngestService) Ingest(ctx context.Context, files []domain.RawFile, progress domain.ProgressFunc) (*driving.IngestReport, error) {
	report := &driving.IngestReport{}
	if len(files) == 0 {
		return report, nil
	}

	settings, err := s.library.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	type result struct {
		docs     []domain.Document
		failures []domain.FileFailure
	}
	results := make([]result, len(files))

	// Callbacks arrive from several workers; serialise them for the caller.
	var progressMu sync.Mutex
	forFile := func(index int) domain.ProgressFunc {
		return func(p domain.Progress) {
			if progress == nil {
				return
			}
			p.Index = index + 1
			p.Total = len(files)
			progressMu.Lock()
			defer progressMu.Unlock()
			progress(p)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range files {
		g.Go(func() error {
			opts := driven.ExtractOptions{Lang: settings.OCRLang, Progress: forFile(i)}
			docs, failures := s.pipeline.Extract(gctx, files[i], opts)
			results[i] = result{docs: docs, failures: failures}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, r := range results {
		docs = append(docs, r.docs...)
		report.Failed = append(report.Failed, r.failures...)
	}

	awarded, err := s.library.Add(ctx, docs...)
	if err != nil {
		return nil, err
	}
	report.Documents = docs
	report.Awarded = awarded

	logger.Info("ingested %d file(s) into %d document(s), %d problem(s)", len(files), len(docs), len(report.Failed))
	return report, nil
}

// IngestPaths resolves paths, directories and doublestar glob patterns,
// reads the files and ingests them. Unreadable paths are reported as failures.
func (s *IngestService) IngestPaths(ctx context.Context, patterns []string, progress domain.ProgressFunc) (*driving.IngestReport, error) {
	paths, failures := ResolvePaths(patterns)

	files := make([]domain.RawFile, 0, len(paths))
	for _, p := range paths {
		raw, err := ReadRawFile(p)
		if err != nil {
			failures = append(failures, domain.FileFailure{Name: p, Err: err})
			continue
		}
		files = append(files, raw)
	}

	report, err := s.Ingest(ctx, files, progress)
	if err != nil {
		return nil, err
	}
	report.Failed = append(failures, report.Failed...)
	return report, nil
}

// ReadRawFile reads a file from disk into a RawFile named by its base name.
func ReadRawFile(path string) (domain.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawFile{}, err
	}
	if info.Size() > MaxFileBytes {
		return domain.RawFile{}, fmt.Errorf("%w: %s is %d bytes", domain.ErrInvalidInput, path, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFile{}, err
	}
	name := filepath.Base(path)
	return domain.RawFile{
		Name:     name,
		MIMEType: domain.GuessMIME(name),
		Content:  content,
	}, nil
}

// ResolvePaths expands patterns into a de-duplicated list of regular files.
// Existing paths are taken literally, even when their names contain glob
// metacharacters. Directories are walked (hidden entries skipped). Anything
// else containing metacharacters is matched with doublestar, so
// "notes/**/*.pdf" works.
func ResolvePaths(patterns []string) ([]string, []domain.FileFailure) {
	var (
		paths    []string
		failures []domain.FileFailure
		seen     = make(map[string]bool)
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		if err != nil && strings.ContainsAny(pattern, "*?[{") {
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				failures = append(failures, domain.FileFailure{Name: pattern, Err: err})
				continue
			}
			if len(matches) == 0 {
				failures = append(failures, domain.FileFailure{Name: pattern, Err: fmt.Errorf("%w: no files match", domain.ErrNotFound)})
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}
		if err != nil {
			failures = append(failures, domain.FileFailure{Name: pattern, Err: err})
			continue
		}
		if !info.IsDir() {
			add(pattern)
			continue
		}

		err = filepath.WalkDir(pattern, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				failures = append(failures, domain.FileFailure{Name: p, Err: err})
				return nil
			}
			if p != pattern && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				add(p)
			}
			return nil
		})
		if err != nil {
			failures = append(failures, domain.FileFailure{Name: pattern, Err: err})
		}
	}
	return paths, failures
}
