package formatter

// GeneralIssueFormatter renders the snippet of every line the issue spans,
// then its suggestion and note when present.
type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .}}{{snippet .}}{{underline .}}
{{- if .Suggestion}}
{{suggestion .}}
{{- end}}
{{- if .Note}}
{{note .}}
{{- end}}
`
}
