package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

func TestAddCmd_Use(t *testing.T) {
	assert.Equal(t, "add <path|glob>...", addCmd.Use)
}

func TestAddCmd_RequiresArgs(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "add")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestAddCmd_AddsFiles(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", studyText)
	writeFile(t, dir, "more/extra.md", "Mammals are warm blooded animals.")

	out, err := env.run(t, "add", "--quiet", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Added notes.txt")
	assert.Contains(t, out, "Added extra.md")
	assert.Contains(t, out, "New badge: "+domain.BadgeFirstUpload)
	assert.Contains(t, out, "2 document(s) added, 0 problem(s).")

	docs, err := env.library.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestAddCmd_ReportsMissingFiles(t *testing.T) {
	env := newTestEnv(t)
	missing := filepath.Join(t.TempDir(), "nope.txt")

	out, err := env.run(t, "add", "-q", missing)

	require.NoError(t, err)
	assert.Contains(t, out, "Problem with")
	assert.Contains(t, out, "0 document(s) added, 1 problem(s).")
}

func TestAddCmd_PrintsProgress(t *testing.T) {
	env := newTestEnv(t)
	path := writeFile(t, t.TempDir(), "notes.txt", studyText)

	out, err := env.run(t, "add", path)

	require.NoError(t, err)
	assert.Contains(t, out, "[1/1] notes.txt: done")
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress domain.Progress
		expected string
	}{
		{
			name:     "reading",
			progress: domain.Progress{File: "a.pdf", Index: 1, Total: 3, Stage: domain.StageReading},
			expected: "[1/3] a.pdf: reading",
		},
		{
			name:     "ocr with percent",
			progress: domain.Progress{File: "a.pdf", Index: 2, Total: 3, Stage: domain.StageOCR, Percent: 42.4},
			expected: "[2/3] a.pdf: ocr 42%",
		},
		{
			name:     "complete percent is hidden",
			progress: domain.Progress{File: "a.pdf", Index: 3, Total: 3, Stage: domain.StageDone, Percent: 100},
			expected: "[3/3] a.pdf: done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatProgress(tt.progress))
		})
	}
}

func TestThrottledProgress_AlwaysPrintsFinalStages(t *testing.T) {
	var buf bytes.Buffer
	// A limiter with no burst never allows intermediate lines.
	report := throttledProgress(&buf, rate.NewLimiter(0, 0))

	report(domain.Progress{File: "a", Index: 1, Total: 2, Stage: domain.StageOCR, Percent: 10})
	report(domain.Progress{File: "a", Index: 1, Total: 2, Stage: domain.StageDone})
	report(domain.Progress{File: "b", Index: 2, Total: 2, Stage: domain.StageFailed})

	assert.NotContains(t, buf.String(), "ocr")
	assert.Contains(t, buf.String(), "[1/2] a: done")
	assert.Contains(t, buf.String(), "[2/2] b: failed")
}

func TestDescribeDocument(t *testing.T) {
	doc := &domain.Document{
		Text:             "héllo",
		ExtractionMethod: domain.MethodOCR,
		Subject:          "Science",
		Chapter:          "Ch 2",
	}
	assert.Equal(t, "(Science • Ch 2, ocr, 5 chars)", describeDocument(doc))
}
