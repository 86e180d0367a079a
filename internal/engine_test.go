package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/xuan/internal/types"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func writeFile(t testing.TB, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func ruleNames(issues []tt.Issue) []string {
	names := make([]string, 0, len(issues))
	for _, issue := range issues {
		names = append(names, issue.Rule)
	}
	return names
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(createTempDir(t, "engine_test"), nil)
	require.NoError(t, err)
	assert.Len(t, engine.rules, len(allRuleConstructors))
}

func TestEngineApplyRules(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", map[string]tt.ConfigRule{
		"empty-block":  {Severity: tt.SeverityError},
		"round-trip":   {Severity: tt.SeverityOff},
		"unknown-rule": {Severity: tt.SeverityWarning},
	})
	require.NoError(t, err)

	assert.Equal(t, tt.SeverityError, engine.findRule("empty-block").Severity())
	assert.True(t, engine.ignoredRules["round-trip"])
	assert.Nil(t, engine.findRule("unknown-rule"))

	issues, err := engine.RunSource([]byte("do {}"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "empty-block", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestRuleNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"duplicate-map-key",
		"empty-block",
		"round-trip",
		"shadowed-default",
		"syntax-error",
	}, RuleNames())
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		code  string
		rules []string
	}{
		{"clean", "let x = {a: 1}\nx", []string{}},
		{"sorted by position", "let m = {a: 1, a: 2}\ndo {}", []string{"duplicate-map-key", "empty-block"}},
		{"shadowed default", "branch {\ndefault: do {}\n}", []string{"shadowed-default", "empty-block"}},
		{"syntax error", "let x = (1", []string{SyntaxErrorRule}},
		{"lexer error", "1/*com", []string{SyntaxErrorRule}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues, err := engine.RunSource([]byte(tt.code))
			require.NoError(t, err)
			assert.Equal(t, tt.rules, ruleNames(issues))
		})
	}
}

func TestEngineSyntaxErrorIssue(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("let x = 1\nlet x.y = 1"))
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, SyntaxErrorRule, issue.Rule)
	assert.Equal(t, "parser error", issue.Category)
	assert.Equal(t, "invalid left-hand-side value", issue.Message)
	assert.Equal(t, tt.SeverityError, issue.Severity)
	assert.Equal(t, 2, issue.Start.Line)
	assert.Equal(t, 5, issue.Start.Column)
	assert.Equal(t, 5, issue.End.Column)

	engine.IgnoreRule(SyntaxErrorRule)
	issues, err = engine.RunSource([]byte("let x.y = 1"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineSyntaxErrorSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity tt.Severity
	}{
		{"warning", tt.SeverityWarning},
		{"info", tt.SeverityInfo},
		{"error", tt.SeverityError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(".", map[string]tt.ConfigRule{
				SyntaxErrorRule: {Severity: tc.severity},
			})
			require.NoError(t, err)

			issues, err := engine.RunSource([]byte("let x = (1"))
			require.NoError(t, err)
			require.Len(t, issues, 1)
			assert.Equal(t, SyntaxErrorRule, issues[0].Rule)
			assert.Equal(t, tc.severity, issues[0].Severity)
		})
	}
}

func TestEngineNolint(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	code := "#[nolint: empty-block]\nfunction f() = do {}\nfunction g() = do {}\n"
	issues, err := engine.RunSource([]byte(code))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Start.Line)
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	engine.IgnoreRule("empty-block")

	issues, err := engine.RunSource([]byte("do {}"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineRun(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "engine_run")
	main := filepath.Join(dir, "main.xuan")
	writeFile(t, main, "do {}\n")

	engine, err := NewEngine(dir, nil)
	require.NoError(t, err)

	issues, err := engine.Run(main)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, main, issues[0].Filename)
	assert.Equal(t, main, issues[0].Start.Filename)

	_, err = engine.Run(filepath.Join(dir, "missing.xuan"))
	assert.Error(t, err)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "engine_ignore")
	files := map[string]bool{
		"main.xuan":            false,
		"vendor/lib.xuan":      true,
		"vendor/deep/lib.xuan": true,
		"gen/a_gen.xuan":       true,
		"gen/handwritten.xuan": false,
		"vendored/keep.xuan":   false,
	}
	for name := range files {
		writeFile(t, filepath.Join(dir, name), "do {}\n")
	}

	engine, err := NewEngine(dir, nil)
	require.NoError(t, err)
	engine.IgnorePath("vendor")
	engine.IgnorePath("gen/*_gen.xuan")

	for name, ignored := range files {
		issues, err := engine.Run(filepath.Join(dir, name))
		require.NoError(t, err)
		if ignored {
			assert.Empty(t, issues, name)
		} else {
			assert.Len(t, issues, 1, name)
		}
	}
}

func TestEngineUsesCache(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "engine_cache")
	main := filepath.Join(dir, "main.xuan")
	writeFile(t, main, "do {}\n")

	cache, err := NewCache(filepath.Join(dir, ".cache"))
	require.NoError(t, err)

	engine, err := NewEngine(dir, nil)
	require.NoError(t, err)
	engine.SetCache(cache)

	issues, err := engine.Run(main)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	cached, ok := cache.Get(main)
	require.True(t, ok)
	assert.Equal(t, issues, cached)

	// A cached entry is served even when the rule is ignored afterwards.
	engine.IgnoreRule("empty-block")
	issues, err = engine.Run(main)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}
