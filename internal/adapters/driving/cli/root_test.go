package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "smartstudy", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"verbose", "config", "library", "storage"} {
		assert.NotNil(t, flags.Lookup(name), "flag %s should exist", name)
	}
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
	assert.Equal(t, "l", flags.Lookup("library").Shorthand)
}

func TestRootCmd_HasCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{
		"add", "watch", "document", "library", "summary", "quiz", "speak",
		"profile", "settings", "backup", "tui", "mcp", "version",
	} {
		assert.True(t, names[want], "command %s should be registered", want)
	}
}

func TestSetup_CallsBootstrapWithFlags(t *testing.T) {
	env := newTestEnv(t)

	var got Options
	closed := false
	SetBootstrap(func(_ context.Context, o Options) (*Services, func() error, error) {
		got = o
		return &Services{Library: env.library}, func() error {
			closed = true
			return nil
		}, nil
	})

	out, err := env.run(t, "--library", "physics", "--storage", "memory", "library", "current")

	require.NoError(t, err)
	assert.Equal(t, "physics", got.Library)
	assert.Equal(t, "memory", got.Storage)
	assert.True(t, closed, "close function should run after the command")
	assert.Contains(t, out, "Default")
}

func TestSetup_BootstrapError(t *testing.T) {
	env := newTestEnv(t)
	SetBootstrap(func(_ context.Context, _ Options) (*Services, func() error, error) {
		return nil, nil, errors.New("cannot open store")
	})

	_, err := env.run(t, "library", "current")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open store")
}

func TestCommands_WithoutServices(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"add", []string{"add", "x.txt"}, errIngestNotConfigured},
		{"document list", []string{"document", "list"}, errLibraryNotConfigured},
		{"summary", []string{"summary"}, errStudyNotConfigured},
		{"speak", []string{"speak", "hello"}, errSpeechNotConfigured},
		{"backup export", []string{"backup", "export", "x.json"}, errBackupNotConfigured},
		{"profile", []string{"profile"}, errLibraryNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			SetServices(nil)

			_, err := env.run(t, tt.args...)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
