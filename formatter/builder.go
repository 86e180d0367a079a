package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	"github.com/gnolang/xuan/internal"
	tt "github.com/gnolang/xuan/internal/types"
)

const tabWidth = 8

var (
	severityStyles = map[tt.Severity]*color.Color{
		tt.SeverityError:   color.New(color.FgRed, color.Bold),
		tt.SeverityWarning: color.New(color.FgHiYellow, color.Bold),
		tt.SeverityInfo:    color.New(color.FgHiCyan, color.Bold),
	}
	labelStyle      = color.New(color.FgYellow, color.Bold)
	locationStyle   = color.New(color.FgCyan, color.Bold)
	gutterStyle     = color.New(color.FgHiBlue, color.Bold)
	markStyle       = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// issueFormatter provides the template an issue is rendered with.
type issueFormatter interface {
	IssueTemplate() string
}

func getIssueFormatter(rule string) issueFormatter {
	if rule == internal.SyntaxErrorRule {
		return &SyntaxErrorFormatter{}
	}
	return &GeneralIssueFormatter{}
}

var funcMap = template.FuncMap{
	"header":     header,
	"snippet":    snippet,
	"underline":  underline,
	"suggestion": suggestion,
	"note":       note,
}

// GenerateFormattedIssue renders issues of one source file, each followed
// by a blank line.
func GenerateFormattedIssue(issues []tt.Issue, source *internal.SourceCode) string {
	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(buildIssue(issue, source, getIssueFormatter(issue.Rule)))
	}
	return sb.String()
}

// IssueData is what the issue templates are executed with.
type IssueData struct {
	tt.Issue

	// Label follows the severity in the header: the rule name, or the
	// error kind for syntax errors.
	Label string

	// Lines are the source lines of the issue with their common
	// indentation removed; FirstLine is the number of Lines[0].
	Lines     []string
	FirstLine int
	Indent    string

	// GutterWidth is the width of the widest line number.
	GutterWidth int
}

func newIssueData(issue tt.Issue, source *internal.SourceCode) IssueData {
	data := IssueData{
		Issue:       issue,
		Label:       issue.Rule,
		FirstLine:   issue.Start.Line,
		GutterWidth: len(strconv.Itoa(issue.End.Line)),
	}
	if issue.Rule == internal.SyntaxErrorRule && issue.Category != "" {
		data.Label = issue.Category
	}
	if data.Filename == "" {
		data.Filename = source.Filename
	}

	if inRange(issue.Start.Line, issue.End.Line, len(source.Lines)) {
		lines := source.Lines[issue.Start.Line-1 : issue.End.Line]
		data.Indent = findCommonIndent(lines)
		data.Lines = make([]string, len(lines))
		for i, line := range lines {
			data.Lines[i] = strings.TrimPrefix(line, data.Indent)
		}
	}
	return data
}

// gutter returns the blank left margin of the snippet lines.
func (d IssueData) gutter() string {
	return strings.Repeat(" ", d.GutterWidth+1)
}

func buildIssue(issue tt.Issue, source *internal.SourceCode, formatter issueFormatter) string {
	tmpl, err := template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate())
	if err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newIssueData(issue, source)); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

func header(d IssueData) string {
	var sb strings.Builder
	if style, ok := severityStyles[d.Severity]; ok {
		sb.WriteString(style.Sprintf("%s: ", strings.ToLower(d.Severity.String())))
	}
	sb.WriteString(labelStyle.Sprintln(d.Label))

	filename := d.Filename
	if filename == "" {
		filename = "<input>"
	}
	sb.WriteString(gutterStyle.Sprint(strings.Repeat(" ", d.GutterWidth) + "--> "))
	sb.WriteString(locationStyle.Sprintf("%s:%d:%d", filename, d.Start.Line, d.Start.Column))
	sb.WriteByte('\n')
	return sb.String()
}

func snippet(d IssueData) string {
	var sb strings.Builder
	sb.WriteString(gutterStyle.Sprint(d.gutter() + "|"))
	sb.WriteByte('\n')
	for i, line := range d.Lines {
		sb.WriteString(gutterStyle.Sprintf("%*d | ", d.GutterWidth, d.FirstLine+i))
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// underline marks the issue under the last snippet line. A range spanning
// lines is marked from the start of its last line.
func underline(d IssueData) string {
	var sb strings.Builder
	sb.WriteString(gutterStyle.Sprint(d.gutter() + "| "))
	if len(d.Lines) == 0 {
		sb.WriteString(markStyle.Sprintln(d.Message))
		return sb.String()
	}

	last := d.Lines[len(d.Lines)-1]
	shift := len(d.Indent)
	from := 0
	if len(d.Lines) == 1 {
		from = calculateVisualColumn(last, d.Start.Column-shift)
	}
	to := calculateVisualColumn(last, d.End.Column-shift)
	width := to - from + 1
	if width < 1 {
		width = 1
	}

	sb.WriteString(strings.Repeat(" ", from))
	sb.WriteString(markStyle.Sprintln(strings.Repeat("~", width)))
	sb.WriteString(gutterStyle.Sprint(d.gutter() + "= "))
	sb.WriteString(markStyle.Sprintln(d.Message))
	return sb.String()
}

func suggestion(d IssueData) string {
	var sb strings.Builder
	sb.WriteString(suggestionStyle.Sprintln("Suggestion:"))
	sb.WriteString(gutterStyle.Sprintln(d.gutter() + "|"))
	for i, line := range strings.Split(d.Suggestion, "\n") {
		sb.WriteString(gutterStyle.Sprintf("%*d | ", d.GutterWidth, d.FirstLine+i))
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(gutterStyle.Sprintln(d.gutter() + "|"))
	return sb.String()
}

func note(d IssueData) string {
	return suggestionStyle.Sprint("Note: ") + gutterStyle.Sprintln(d.Note)
}

func inRange(start, end, lines int) bool {
	return start > 0 && start <= end && end <= lines
}

// calculateVisualColumn returns the display width of line before the
// 1-based byte column, expanding tabs. Columns past the end count as one
// cell each.
func calculateVisualColumn(line string, column int) int {
	visual := 0
	for i, ch := range line {
		if i+1 >= column {
			return visual
		}
		if ch == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual++
		}
	}
	if extra := column - len(line) - 1; extra > 0 {
		visual += extra
	}
	return visual
}

// findCommonIndent returns the leading whitespace shared by every
// non-blank line.
func findCommonIndent(lines []string) string {
	var common []rune
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		indent := []rune(line[:len(line)-len(trimmed)])
		if !found {
			common, found = indent, true
			continue
		}
		n := 0
		for n < len(common) && n < len(indent) && common[n] == indent[n] {
			n++
		}
		common = common[:n]
	}
	return string(common)
}
