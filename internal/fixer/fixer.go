package fixer

import (
	"fmt"
	"io"
	"os"
	"sort"

	tt "github.com/gnolang/xuan/internal/types"
	"github.com/gnolang/xuan/parser"
)

// fixableRules are the rules whose suggestion replaces the reported range.
var fixableRules = map[string]bool{
	"shadowed-default": true,
}

type Fixer struct {
	DryRun bool
	out    io.Writer
}

func New(dryRun bool, out io.Writer) *Fixer {
	if out == nil {
		out = io.Discard
	}
	return &Fixer{
		DryRun: dryRun,
		out:    out,
	}
}

// Fix applies the suggestions of fixable issues to filename and rewrites
// it in its canonical printed form. It reports whether the file changed.
func (f *Fixer) Fix(filename string, issues []tt.Issue) (bool, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	fixed, applied := ApplySuggestions(string(content), issues)
	formatted, err := Format(fixed)
	if err != nil {
		return false, fmt.Errorf("failed to parse fixed file: %w", err)
	}
	if formatted == string(content) {
		return false, nil
	}

	if f.DryRun {
		for _, issue := range applied {
			fmt.Fprintf(f.out, "Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Fprintf(f.out, "Suggestion:\n%s\n", issue.Suggestion)
		}
		fmt.Fprintf(f.out, "Would reformat %s\n", filename)
		return true, nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	if err := os.WriteFile(filename, []byte(formatted), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(f.out, "Fixed issues in %s\n", filename)
	return true, nil
}

// Format parses source and returns its canonical printed form. Comments are
// not part of the syntax tree and are dropped.
func Format(source string) (string, error) {
	program, err := parser.ParseSource(source)
	if err != nil {
		return "", err
	}
	return program.String(), nil
}

// ApplySuggestions replaces the range of every fixable issue by its
// suggestion. Issues are applied from the end of the file backwards and an
// issue overlapping one already applied is skipped. It returns the new
// source and the applied issues.
func ApplySuggestions(source string, issues []tt.Issue) (string, []tt.Issue) {
	var candidates []tt.Issue
	for _, issue := range issues {
		if fixableRules[issue.Rule] && issue.Suggestion != "" {
			candidates = append(candidates, issue)
		}
	}
	if len(candidates) == 0 {
		return source, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Offset > candidates[j].Start.Offset
	})

	runes := []rune(source)
	limit := len(runes)
	var applied []tt.Issue
	for _, issue := range candidates {
		start, end := issue.Start.Offset, issue.End.Offset+1
		if start < 0 || end > limit || start >= end {
			continue
		}

		replaced := make([]rune, 0, len(runes)-(end-start)+len(issue.Suggestion))
		replaced = append(replaced, runes[:start]...)
		replaced = append(replaced, []rune(issue.Suggestion)...)
		replaced = append(replaced, runes[end:]...)
		runes = replaced

		limit = start
		applied = append(applied, issue)
	}

	return string(runes), applied
}
