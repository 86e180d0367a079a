package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/xuan/internal/types"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		expected Config
	}{
		{
			name: "yaml",
			file: ".xuan.yaml",
			content: `name: project
rules:
  empty-block:
    severity: ERROR
  round-trip:
    severity: off
`,
			expected: Config{
				Name: "project",
				Rules: map[string]tt.ConfigRule{
					"empty-block": {Severity: tt.SeverityError},
					"round-trip":  {Severity: tt.SeverityOff},
				},
			},
		},
		{
			name: "toml",
			file: "xuan.toml",
			content: `name = "project"

[rules.duplicate-map-key]
severity = "info"
`,
			expected: Config{
				Name: "project",
				Rules: map[string]tt.ConfigRule{
					"duplicate-map-key": {Severity: tt.SeverityInfo},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			config, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestLoadConfigDefault(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, tt.SeverityError, config.Rules["syntax-error"].Severity)
	assert.Equal(t, tt.SeverityWarning, config.Rules["empty-block"].Severity)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("rules:\n  no-such-rule:\n    severity: error\n"), 0o644))
	_, err = LoadConfig(unknown)
	assert.ErrorContains(t, err, `unknown rule "no-such-rule"`)

	badSeverity := filepath.Join(dir, "severity.yaml")
	require.NoError(t, os.WriteFile(badSeverity, []byte("rules:\n  empty-block:\n    severity: loud\n"), 0o644))
	_, err = LoadConfig(badSeverity)
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	for _, file := range []string{DefaultConfigFile, "xuan.toml"} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), file)
			require.NoError(t, WriteConfig(path, DefaultConfig()))

			config, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, DefaultConfig(), config)
		})
	}
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  empty-block:\n    severity: off\n"), 0o644))
	createTempFiles(t, dir, "do {}\n", "a.xuan")

	engine, err := New(dir, path)
	require.NoError(t, err)

	issues, err := engine.Run(filepath.Join(dir, "a.xuan"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
