package internal

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/internal/lints"
	tt "github.com/gnolang/xuan/internal/types"
)

/*
* Implement each rule as a separate struct
 */

// LintRule defines the interface for all checker rules.
type LintRule interface {
	// Check runs the rule on a parsed program and returns a slice of Issues.
	Check(program *ast.Program, source *SourceCode) ([]tt.Issue, error)

	// Name returns the name of the rule.
	Name() string

	// Severity returns the severity of the rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the rule.
	SetSeverity(tt.Severity)
}

type RoundTripRule struct {
	severity tt.Severity
}

func NewRoundTripRule() LintRule {
	return &RoundTripRule{severity: tt.SeverityError}
}

func (r *RoundTripRule) Check(program *ast.Program, source *SourceCode) ([]tt.Issue, error) {
	return lints.DetectRoundTripFailures(program, source, r.severity)
}

func (r *RoundTripRule) Name() string {
	return "round-trip"
}

func (r *RoundTripRule) Severity() tt.Severity {
	return r.severity
}

func (r *RoundTripRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type EmptyBlockRule struct {
	severity tt.Severity
}

func NewEmptyBlockRule() LintRule {
	return &EmptyBlockRule{severity: tt.SeverityWarning}
}

func (r *EmptyBlockRule) Check(program *ast.Program, source *SourceCode) ([]tt.Issue, error) {
	return lints.DetectEmptyBlocks(program, source, r.severity)
}

func (r *EmptyBlockRule) Name() string {
	return "empty-block"
}

func (r *EmptyBlockRule) Severity() tt.Severity {
	return r.severity
}

func (r *EmptyBlockRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type ShadowedDefaultRule struct {
	severity tt.Severity
}

func NewShadowedDefaultRule() LintRule {
	return &ShadowedDefaultRule{severity: tt.SeverityWarning}
}

func (r *ShadowedDefaultRule) Check(program *ast.Program, source *SourceCode) ([]tt.Issue, error) {
	return lints.DetectShadowedDefaults(program, source, r.severity)
}

func (r *ShadowedDefaultRule) Name() string {
	return "shadowed-default"
}

func (r *ShadowedDefaultRule) Severity() tt.Severity {
	return r.severity
}

func (r *ShadowedDefaultRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type DuplicateMapKeyRule struct {
	severity tt.Severity
}

func NewDuplicateMapKeyRule() LintRule {
	return &DuplicateMapKeyRule{severity: tt.SeverityWarning}
}

func (r *DuplicateMapKeyRule) Check(program *ast.Program, source *SourceCode) ([]tt.Issue, error) {
	return lints.DetectDuplicateMapKeys(program, source, r.severity)
}

func (r *DuplicateMapKeyRule) Name() string {
	return "duplicate-map-key"
}

func (r *DuplicateMapKeyRule) Severity() tt.Severity {
	return r.severity
}

func (r *DuplicateMapKeyRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
