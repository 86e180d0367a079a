package lints

import (
	"github.com/gnolang/xuan/ast"
	tt "github.com/gnolang/xuan/internal/types"
	"github.com/gnolang/xuan/token"
)

// Locator turns a source range into issue positions.
type Locator interface {
	Locate(r token.Range) (start, end tt.Position)
}

func newIssue(rule string, severity tt.Severity, loc Locator, node ast.Node, message string) tt.Issue {
	start, end := loc.Locate(node.Span())
	return tt.Issue{
		Rule:     rule,
		Filename: start.Filename,
		Start:    start,
		End:      end,
		Message:  message,
		Severity: severity,
	}
}
