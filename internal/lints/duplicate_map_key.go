package lints

import (
	"fmt"
	"strconv"

	"github.com/gnolang/xuan/ast"
	tt "github.com/gnolang/xuan/internal/types"
)

// DetectDuplicateMapKeys reports map and constructor entries whose key
// repeats an earlier plain identifier or string key of the same map.
func DetectDuplicateMapKeys(program *ast.Program, loc Locator, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	ast.Inspect(program, func(n ast.Node) bool {
		m, ok := n.(*ast.MapExpression)
		if !ok {
			return true
		}

		seen := make(map[string]*ast.MapEntry)
		for _, entry := range m.Entries {
			key, ok := mapKey(entry.Key)
			if !ok {
				continue
			}
			first, dup := seen[key]
			if !dup {
				seen[key] = entry
				continue
			}

			issue := newIssue("duplicate-map-key", severity, loc, entry.Key, fmt.Sprintf("duplicate key %s", key))
			firstPos, _ := loc.Locate(first.Key.Span())
			issue.Note = fmt.Sprintf("first defined at line %d", firstPos.Line)
			issues = append(issues, issue)
		}
		return true
	})
	return issues, nil
}

func mapKey(e ast.Expression) (string, bool) {
	switch k := e.(type) {
	case *ast.Identifier:
		if len(k.Dirs) > 0 || len(k.Generics) > 0 || k.Prefix {
			return "", false
		}
		return k.Name, true
	case *ast.StringLiteral:
		return strconv.Quote(k.Value), true
	}
	return "", false
}
