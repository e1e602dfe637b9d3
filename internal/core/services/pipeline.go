package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/logger"
)

// MaxArchiveDepth bounds archive nesting.
const MaxArchiveDepth = 4

// Pipeline turns raw files into documents. It never rejects a file:
// every failure degrades to a document with empty text, and archives
// that cannot be expanded yield no documents. It does not touch storage.
type Pipeline struct {
	registry driven.ExtractorRegistry
	expander driven.ArchiveExpander
	post     driven.PostProcessorPipeline

	newID func() string
	now   func() time.Time
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithIDGenerator replaces the uuid generator, for tests.
func WithIDGenerator(fn func() string) PipelineOption {
	return func(p *Pipeline) {
		p.newID = fn
	}
}

// WithPipelineClock replaces time.Now, for tests.
func WithPipelineClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a pipeline. expander and post may be nil: archives
// then yield nothing and documents are stored as extracted.
func NewPipeline(
	registry driven.ExtractorRegistry,
	expander driven.ArchiveExpander,
	post driven.PostProcessorPipeline,
	opts ...PipelineOption,
) *Pipeline {
	p := &Pipeline{
		registry: registry,
		expander: expander,
		post:     post,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract converts raw into documents. Archives expand into zero or more
// documents in entry order; any other file yields exactly one document.
// Failures are returned alongside, never instead of, the documents.
func (p *Pipeline) Extract(ctx context.Context, raw domain.RawFile, opts driven.ExtractOptions) ([]domain.Document, []domain.FileFailure) {
	if raw.ReadErr != nil || domain.ClassifyFile(raw.Name, raw.MIMEType) != domain.MediaArchive {
		doc, err := p.ExtractOne(ctx, raw, opts)
		if err != nil {
			return []domain.Document{doc}, []domain.FileFailure{{Name: raw.Name, Err: err}}
		}
		return []domain.Document{doc}, nil
	}

	fail := func(err error) ([]domain.Document, []domain.FileFailure) {
		logger.L().Warn("archive skipped", zap.String("file", raw.Name), zap.Error(err))
		opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageFailed})
		return nil, []domain.FileFailure{{Name: raw.Name, Err: err}}
	}

	if raw.Depth >= MaxArchiveDepth {
		return fail(fmt.Errorf("%w: archives nested deeper than %d", domain.ErrUnsupportedType, MaxArchiveDepth))
	}
	if p.expander == nil {
		return fail(fmt.Errorf("%w: archive support disabled", domain.ErrUnsupportedType))
	}

	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageExpanding})
	entries, err := p.expander.Expand(ctx, &raw)
	if err != nil {
		return fail(err)
	}

	var (
		docs     []domain.Document
		failures []domain.FileFailure
	)
	for _, entry := range entries {
		d, f := p.Extract(ctx, entry, opts)
		docs = append(docs, d...)
		failures = append(failures, f...)
	}
	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: domain.StageDone, Percent: 100})
	return docs, failures
}

// ExtractOne converts a non-archive file into a document. The document is
// always usable; a non-nil error explains why its text is empty.
func (p *Pipeline) ExtractOne(ctx context.Context, raw domain.RawFile, opts driven.ExtractOptions) (domain.Document, error) {
	kind := domain.ClassifyFile(raw.Name, raw.MIMEType)
	if !kind.IsValid() {
		kind = domain.MediaUnknown
	}

	doc := domain.Document{
		ID:               p.newID(),
		Name:             raw.Name,
		MediaKind:        kind,
		ExtractionMethod: domain.MethodNone,
		AddedAt:          domain.Timestamp(p.now()),
		Subject:          domain.DefaultSubject,
		Chapter:          domain.DefaultChapter,
	}

	var (
		result     *driven.ExtractResult
		extractErr = raw.ReadErr
	)
	if extractErr == nil {
		result, extractErr = p.registry.Extract(ctx, kind, &raw, opts)
	}
	if extractErr != nil {
		logger.L().Warn("extraction failed",
			zap.String("file", raw.Name),
			zap.String("kind", kind.String()),
			zap.Error(extractErr))
	} else if result != nil {
		doc.Text = result.Text
		doc.ExtractionMethod = result.Method
		if !doc.ExtractionMethod.IsValid() {
			doc.ExtractionMethod = domain.MethodNone
		}
	}

	if p.post != nil {
		if err := p.post.Process(ctx, &doc); err != nil {
			logger.L().Warn("post-processing failed", zap.String("file", raw.Name), zap.Error(err))
		}
	}

	stage := domain.StageDone
	if extractErr != nil {
		stage = domain.StageFailed
	}
	opts.Progress.Report(domain.Progress{File: raw.Name, Stage: stage, Percent: 100})

	return doc, extractErr
}
