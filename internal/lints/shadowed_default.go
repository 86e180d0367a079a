package lints

import (
	"github.com/gnolang/xuan/ast"
	tt "github.com/gnolang/xuan/internal/types"
)

// DetectShadowedDefaults finds branch and match expressions that only have
// a default case. The default is always taken, so the surrounding construct
// can be replaced by its consequent.
func DetectShadowedDefaults(program *ast.Program, loc Locator, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	report := func(n ast.Node, kind string, def ast.Expression) {
		issue := newIssue("shadowed-default", severity, loc, n, kind+" expression has no cases besides default")
		issue.Suggestion = def.String()
		issues = append(issues, issue)
	}

	ast.Inspect(program, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.BranchExpression:
			if len(v.Cases) == 0 && v.Default != nil {
				report(v, "branch", v.Default)
			}
		case *ast.MatchExpression:
			if len(v.Cases) == 0 && v.Default != nil {
				report(v, "match", v.Default)
			}
		}
		return true
	})
	return issues, nil
}
