package internal

import (
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	tt "github.com/gnolang/xuan/internal/types"
	"github.com/gnolang/xuan/token"
)

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Filename string
	Lines    []string

	// codepoint offset of the first character of each line
	lineStarts []int
}

// NewSourceCode splits source into lines.
func NewSourceCode(filename, source string) *SourceCode {
	lines := strings.Split(source, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += utf8.RuneCountInString(line) + 1
	}
	return &SourceCode{Filename: filename, Lines: lines, lineStarts: starts}
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(filename, string(content)), nil
}

// Position converts a codepoint offset into a line and column. The column
// counts bytes, which is what the formatter expects when it expands tabs.
func (s *SourceCode) Position(offset int) tt.Position {
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	text := s.Lines[line]
	runes := offset - s.lineStarts[line]
	column := len(text) + 1
	for i := range text {
		if runes == 0 {
			column = i + 1
			break
		}
		runes--
	}
	if runes > 0 {
		// past the end of the line, as for a range ending on the newline
		column = len(text) + 1 + runes
	}

	return tt.Position{
		Filename: s.Filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   column,
	}
}

// Locate returns the positions of the first and the last character of r.
func (s *SourceCode) Locate(r token.Range) (start, end tt.Position) {
	last := r.End - 1
	if last < r.Start {
		last = r.Start
	}
	return s.Position(r.Start), s.Position(last)
}
