package nolint

import (
	"errors"
	"strings"

	"github.com/gnolang/xuan/ast"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
//
// A scope is opened by a nolint attribute on a declaration:
//
//	#[nolint]
//	#[nolint: empty-block, duplicate-map-key]
//
// and covers the whole declaration.
type Manager struct {
	scopes []nolintScope
}

// nolintScope represents a range in the code where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseAttributes collects the nolint attributes of the top level
// declarations of program.
func ParseAttributes(program *ast.Program) *Manager {
	manager := &Manager{}
	for _, stmt := range program.Statements {
		for _, attr := range attributesOf(stmt) {
			rules, err := parseAttribute(attr)
			if err != nil {
				// not a nolint attribute
				continue
			}
			r := stmt.Span()
			manager.scopes = append(manager.scopes, nolintScope{rules: rules, start: r.Start, end: r.End})
		}
	}
	return manager
}

func attributesOf(stmt ast.Statement) []string {
	switch d := stmt.(type) {
	case *ast.FunctionDeclaration:
		return d.Attributes
	case *ast.UseDeclaration:
		return d.Attributes
	case *ast.ConstDeclaration:
		return d.Attributes
	case *ast.StructDeclaration:
		return d.Attributes
	case *ast.UnionDeclaration:
		return d.Attributes
	case *ast.TraitDeclaration:
		return d.Attributes
	case *ast.ImplDeclaration:
		return d.Attributes
	case *ast.AliasDeclaration:
		return d.Attributes
	}
	return nil
}

// parseAttribute parses the text between #[ and ]. No rule list means
// every rule.
func parseAttribute(text string) (map[string]struct{}, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, nolintPrefix) {
		return nil, errors.New("invalid nolint attribute")
	}

	rest := strings.TrimSpace(text[len(nolintPrefix):])
	if rest == "" {
		return map[string]struct{}{}, nil
	}
	if rest[0] != ':' {
		return nil, errors.New("invalid nolint attribute format")
	}

	rules := parseIgnoreRuleNames(rest[1:])
	if len(rules) == 0 {
		return nil, errors.New("invalid nolint attribute: no rules specified after colon")
	}
	return rules, nil
}

// parseIgnoreRuleNames parses a comma separated rule list.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// IsNolint checks if an issue of ruleName starting at the codepoint offset
// is nolinted.
func (m *Manager) IsNolint(offset int, ruleName string) bool {
	for _, ns := range m.scopes {
		if offset < ns.start || offset >= ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
