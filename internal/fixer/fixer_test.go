package fixer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/xuan/internal/types"
)

func shadowedDefault(start, end int, suggestion string) tt.Issue {
	return tt.Issue{
		Rule:       "shadowed-default",
		Message:    "branch expression has no cases besides default",
		Start:      tt.Position{Offset: start, Line: 1, Column: start + 1},
		End:        tt.Position{Offset: end, Line: 1, Column: end + 1},
		Suggestion: suggestion,
	}
}

func TestApplySuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		issues  []tt.Issue
		want    string
		applied int
	}{
		{
			name:    "replaces the range",
			source:  "let x = branch {default: 1}",
			issues:  []tt.Issue{shadowedDefault(8, 26, "1")},
			want:    "let x = 1",
			applied: 1,
		},
		{
			name:   "skips rules without fixes",
			source: "do {}",
			issues: []tt.Issue{{
				Rule:       "empty-block",
				Start:      tt.Position{Offset: 0},
				End:        tt.Position{Offset: 4},
				Suggestion: "x",
			}},
			want: "do {}",
		},
		{
			name:   "applies from the end",
			source: "f(branch {default: a}, branch {default: b})",
			issues: []tt.Issue{
				shadowedDefault(2, 20, "a"),
				shadowedDefault(23, 41, "b"),
			},
			want:    "f(a, b)",
			applied: 2,
		},
		{
			name:   "skips overlapping ranges",
			source: "branch {default: branch {default: 1}}",
			issues: []tt.Issue{
				shadowedDefault(0, 36, "branch {default: 1}"),
				shadowedDefault(17, 35, "1"),
			},
			want:    "branch {default: 1}",
			applied: 1,
		},
		{
			name:    "counts codepoints",
			source:  `"é" ++ branch {default: 1}`,
			issues:  []tt.Issue{shadowedDefault(7, 25, "1")},
			want:    `"é" ++ 1`,
			applied: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, applied := ApplySuggestions(tt.source, tt.issues)
			assert.Equal(t, tt.want, got)
			assert.Len(t, applied, tt.applied)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got, err := Format("let x = 1+2*3 // sum\n\n\nx")
	require.NoError(t, err)
	assert.Equal(t, "let x = (1 + (2 * 3))\nx\n", got)

	_, err = Format("let = 1")
	assert.Error(t, err)
}

func TestFix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filename := filepath.Join(dir, "main.xuan")
	source := "let x = branch {default: 1}\n"
	require.NoError(t, os.WriteFile(filename, []byte(source), 0o644))

	issues := []tt.Issue{shadowedDefault(8, 26, "1")}

	t.Run("dry run leaves the file", func(t *testing.T) {
		var out bytes.Buffer
		changed, err := New(true, &out).Fix(filename, issues)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Contains(t, out.String(), "Would fix issue in "+filename+" at line 1")

		content, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, source, string(content))
	})

	t.Run("writes the fixed file", func(t *testing.T) {
		changed, err := New(false, nil).Fix(filename, issues)
		require.NoError(t, err)
		assert.True(t, changed)

		content, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "let x = 1\n", string(content))

		changed, err = New(false, nil).Fix(filename, nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
