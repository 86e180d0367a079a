package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gnolang/xuan/internal/nolint"
	"github.com/gnolang/xuan/internal/trie"
	tt "github.com/gnolang/xuan/internal/types"
	"github.com/gnolang/xuan/parser"
	"github.com/gnolang/xuan/token"
)

// SyntaxErrorRule is the rule name of issues made from lexer and parser
// errors. It cannot be configured, only ignored.
const SyntaxErrorRule = "syntax-error"

// Engine manages the checking process.
type Engine struct {
	rootDir      string
	ignoredRules map[string]bool
	ignoredDirs  *trie.Trie
	ignoredGlobs []string
	rules        map[string]LintRule
	cache        *Cache

	syntaxSeverity tt.Severity
}

// NewEngine creates a new engine with the default rules, adjusted by the
// given rule configuration.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule) (*Engine, error) {
	if rootDir == "" {
		rootDir = "."
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving root directory: %w", err)
	}

	engine := &Engine{rootDir: abs, ignoredDirs: trie.New(), syntaxSeverity: tt.SeverityError}
	engine.applyRules(rules)

	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	"round-trip":        NewRoundTripRule,
	"empty-block":       NewEmptyBlockRule,
	"shadowed-default":  NewShadowedDefaultRule,
	"duplicate-map-key": NewDuplicateMapKeyRule,
}

// RuleNames returns the names of every known rule, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors)+1)
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	names = append(names, SyntaxErrorRule)
	sort.Strings(names)
	return names
}

// DefaultRules returns the configuration of every rule at its default
// severity.
func DefaultRules() map[string]tt.ConfigRule {
	rules := make(map[string]tt.ConfigRule, len(allRuleConstructors)+1)
	for name, newRuleCstr := range allRuleConstructors {
		rules[name] = tt.ConfigRule{Severity: newRuleCstr().Severity()}
	}
	rules[SyntaxErrorRule] = tt.ConfigRule{Severity: tt.SeverityError}
	return rules
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		if key == SyntaxErrorRule {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			} else {
				e.syntaxSeverity = rule.Severity
			}
			continue
		}

		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil || rule.Severity == tt.SeverityOff {
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
			continue
		}

		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// SetCache makes Run reuse the issues of files that did not change.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

// Run applies all rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.check(filename, string(content))
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			return nil, fmt.Errorf("error caching issues: %w", err)
		}
	}

	return issues, nil
}

// RunSource applies all rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.check("", string(source))
}

func (e *Engine) check(filename, source string) ([]tt.Issue, error) {
	code := NewSourceCode(filename, source)

	program, err := parser.ParseSource(source)
	if err != nil {
		var syntaxErr *token.Error
		if !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("error parsing content: %w", err)
		}
		if e.ignoredRules[SyntaxErrorRule] {
			return []tt.Issue{}, nil
		}
		return []tt.Issue{syntaxIssue(code, syntaxErr, e.syntaxSeverity)}, nil
	}

	nolintMgr := nolint.ParseAttributes(program)

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(runtime.NumCPU())

	allIssues := []tt.Issue{}
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		g.Go(func() error {
			issues, err := rule.Check(program, code)
			if err != nil {
				return fmt.Errorf("rule %s: %w", rule.Name(), err)
			}

			nolinted := filterNolintIssues(nolintMgr, issues)

			mu.Lock()
			allIssues = append(allIssues, nolinted...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortIssues(allIssues)
	return allIssues, nil
}

// filterNolintIssues drops the issues covered by nolint attributes.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start.Offset, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func syntaxIssue(code *SourceCode, err *token.Error, severity tt.Severity) tt.Issue {
	start, end := code.Locate(err.Range)
	return tt.Issue{
		Rule:     SyntaxErrorRule,
		Category: err.Kind.String(),
		Filename: code.Filename,
		Message:  err.Message,
		Start:    start,
		End:      end,
		Severity: severity,
	}
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Start.Offset != issues[j].Start.Offset {
			return issues[i].Start.Offset < issues[j].Start.Offset
		}
		return issues[i].Rule < issues[j].Rule
	})
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching pattern: a glob relative to the root
// directory, or a file or directory path whose whole tree is skipped.
func (e *Engine) IgnorePath(pattern string) {
	pattern = filepath.ToSlash(filepath.Clean(pattern))
	if strings.ContainsAny(pattern, "*?[") {
		e.ignoredGlobs = append(e.ignoredGlobs, pattern)
		return
	}
	e.ignoredDirs.Insert(trie.Split(pattern))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	if len(e.ignoredGlobs) == 0 && e.ignoredDirs.Len() == 0 {
		return false
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(e.rootDir, abs)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	if e.ignoredDirs.HasPrefixOf(trie.Split(rel)) {
		return true
	}
	for _, pattern := range e.ignoredGlobs {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
