package lints

import (
	"github.com/gnolang/xuan/ast"
	tt "github.com/gnolang/xuan/internal/types"
	"github.com/gnolang/xuan/parser"
)

// DetectRoundTripFailures prints every top level statement and parses the
// printed form again. A statement whose printed form fails to parse, or
// parses into something that prints differently, is reported.
func DetectRoundTripFailures(program *ast.Program, loc Locator, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, stmt := range program.Statements {
		printed := stmt.String()

		reparsed, err := parser.ParseSource(printed)
		if err != nil {
			issue := newIssue("round-trip", severity, loc, stmt, "printed form of this statement does not parse")
			issue.Note = err.Error()
			issues = append(issues, issue)
			continue
		}

		if len(reparsed.Statements) != 1 || reparsed.Statements[0].String() != printed {
			issue := newIssue("round-trip", severity, loc, stmt, "printed form of this statement parses into a different tree")
			issue.Suggestion = printed
			issues = append(issues, issue)
		}
	}
	return issues, nil
}
