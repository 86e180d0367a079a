package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/xuan/parser"
)

func TestParseIgnoreRuleNames(t *testing.T) {
	t.Parallel()

	result := parseIgnoreRuleNames(" rule1, rule2 ,,rule3")
	assert.Len(t, result, 3)
	for _, rule := range []string{"rule1", "rule2", "rule3"} {
		assert.Contains(t, result, rule)
	}
}

func TestParseAttribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		rules   []string
		wantErr bool
	}{
		{text: "nolint", rules: []string{}},
		{text: " nolint ", rules: []string{}},
		{text: "nolint: empty-block", rules: []string{"empty-block"}},
		{text: "nolint:a,b", rules: []string{"a", "b"}},
		{text: "nolint:", wantErr: true},
		{text: "nolintx", wantErr: true},
		{text: "test", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			rules, err := parseAttribute(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got := []string{}
			for rule := range rules {
				got = append(got, rule)
			}
			assert.ElementsMatch(t, tt.rules, got)
		})
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()

	src := "#[nolint: empty-block]\nfunction f() = do {}\n#[nolint]\nfunction g() = do {}\n#[test]\nfunction h() = do {}\n"
	program, err := parser.ParseSource(src)
	require.NoError(t, err)

	manager := ParseAttributes(program)
	require.Len(t, manager.scopes, 2)

	f := program.Statements[0].Span()
	g := program.Statements[1].Span()
	h := program.Statements[2].Span()

	assert.True(t, manager.IsNolint(f.Start, "empty-block"))
	assert.True(t, manager.IsNolint(f.End-1, "empty-block"))
	assert.False(t, manager.IsNolint(f.Start, "round-trip"))
	assert.True(t, manager.IsNolint(g.Start+3, "anything"))
	assert.False(t, manager.IsNolint(h.Start, "empty-block"))
	assert.False(t, manager.IsNolint(g.End, "anything"))
}
