package formatter

// SyntaxErrorFormatter renders lexer and parser errors. Only the position
// where the error starts is marked.
type SyntaxErrorFormatter struct{}

func (f *SyntaxErrorFormatter) IssueTemplate() string {
	return `{{header .}}{{snippet .}}{{underline .}}
`
}
