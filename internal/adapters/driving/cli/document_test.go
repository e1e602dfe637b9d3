package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

// Document Command Tests

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"list", "show", "text", "summary", "rm", "clear", "subjects"} {
		assert.Contains(t, commandNames, name)
	}
}

func TestDocumentListCmd_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, `No documents in library "Default"`)
}

func TestDocumentListCmd_ListsDocuments(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "physics.txt", "Force equals mass times acceleration.")
	env.addDoc(t, "biology.txt", "Mammals are warm blooded.")

	out, err := env.run(t, "doc", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "Name: physics.txt")
	assert.Contains(t, out, "Tags: General • Misc")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocumentShowCmd(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "physics.txt", "Force equals mass times acceleration.")

	out, err := env.run(t, "document", "show", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document: doc-1")
	assert.Contains(t, out, "Name:       physics.txt")
	assert.Contains(t, out, "Extraction: direct-text")
	assert.Contains(t, out, "Length:     37 chars")
}

func TestDocumentShowCmd_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "document", "show", "missing")

	require.Error(t, err)
	assert.Equal(t, "document missing not found", err.Error())
}

func TestDocumentShowCmd_RequiresExactlyOneArg(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "document", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentTextCmd(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "notes.txt", "Mammals are warm blooded.")

	out, err := env.run(t, "document", "text", "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "Mammals are warm blooded.\n", out)
}

func TestDocumentSummaryCmd(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "notes.txt", studyText)

	out, err := env.run(t, "document", "summary", "-n", "1", "doc-1")

	require.NoError(t, err)
	assert.Equal(t, 1, countBullets(out))
}

func TestDocumentSummaryCmd_NotEnoughMaterial(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "tiny.txt", "Hi.")

	out, err := env.run(t, "document", "summary", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, domain.NotEnoughMaterial)
}

func TestDocumentRemoveCmd(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "a.txt", "Mammals are warm blooded.")
	env.addDoc(t, "b.txt", "Force equals mass times acceleration.")

	out, err := env.run(t, "document", "rm", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document doc-1 removed.")

	text, err := env.library.AllText(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, text, "Mammals")
}

func TestDocumentClearCmd(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		input     string
		wantLeft  int
		wantInOut string
	}{
		{
			name:      "confirmed",
			args:      []string{"document", "clear"},
			input:     "y\n",
			wantLeft:  0,
			wantInOut: "Library cleared.",
		},
		{
			name:      "declined",
			args:      []string{"document", "clear"},
			input:     "n\n",
			wantLeft:  1,
			wantInOut: "Cancelled.",
		},
		{
			name:      "no input declines",
			args:      []string{"document", "clear"},
			input:     "",
			wantLeft:  1,
			wantInOut: "Cancelled.",
		},
		{
			name:      "yes flag skips prompt",
			args:      []string{"document", "clear", "--yes"},
			wantLeft:  0,
			wantInOut: "Library cleared.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.addDoc(t, "a.txt", "Mammals are warm blooded.")

			out, err := env.runWithInput(t, tt.input, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, tt.wantInOut)
			docs, err := env.library.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, docs, tt.wantLeft)
		})
	}
}

func TestDocumentClearCmd_KeepsProfile(t *testing.T) {
	env := newTestEnv(t)
	env.addDoc(t, "a.txt", "Mammals are warm blooded.")

	_, err := env.run(t, "document", "clear", "-y")
	require.NoError(t, err)

	profile, err := env.library.Profile(context.Background())
	require.NoError(t, err)
	assert.True(t, profile.HasBadge(domain.BadgeFirstUpload))
}

func TestDocumentSubjectsCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "document", "subjects")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents yet.")

	env.addDoc(t, "a.txt", "Mammals are warm blooded.")
	env.addDoc(t, "b.txt", "Force equals mass times acceleration.")

	out, err = env.run(t, "document", "subjects")

	require.NoError(t, err)
	assert.Contains(t, out, "Subjects:")
	assert.Regexp(t, `General\s+2`, out)
	assert.Regexp(t, `General • Misc\s+2`, out)
}
