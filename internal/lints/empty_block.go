package lints

import (
	"github.com/gnolang/xuan/ast"
	tt "github.com/gnolang/xuan/internal/types"
)

// DetectEmptyBlocks reports do, join and body blocks without expressions.
func DetectEmptyBlocks(program *ast.Program, loc Locator, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(program, func(n ast.Node) bool {
		block, ok := n.(*ast.BlockExpression)
		if !ok || len(block.Expressions) > 0 {
			return true
		}

		var message string
		switch block.Kind {
		case ast.DoBlock:
			message = "empty do block"
		case ast.JoinBlock:
			message = "empty join block"
		default:
			message = "empty block"
		}
		issues = append(issues, newIssue("empty-block", severity, loc, block, message))
		return true
	})
	return issues, nil
}
