// Package alert provides the CEL-based alert rule engine applied to
// finished call reports.
package alert

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/fiveshield/shieldcall/internal/domain"
)

// Engine evaluates operator-defined CEL expressions against completed
// reports to decide which calls raise an alert event. Rules are compiled
// once at construction; evaluation is read-only and safe for concurrent
// use.
type Engine struct {
	env   *cel.Env
	rules []compiledRule
}

type compiledRule struct {
	id      string
	program cel.Program
}

// NewEngine compiles the given rules. Every expression must evaluate to
// a bool.
func NewEngine(rules []domain.AlertRule) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("score", cel.DoubleType),
		cel.Variable("verdict", cel.StringType),
		cel.Variable("risk", cel.StringType),
		cel.Variable("categories", cel.ListType(cel.StringType)),
		cel.Variable("turns", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	e := &Engine{env: env}
	for _, rule := range rules {
		compiled, err := e.compile(rule)
		if err != nil {
			return nil, err
		}
		e.rules = append(e.rules, compiled)
	}

	return e, nil
}

// Evaluate returns the IDs of all rules triggered by the report.
// Expression evaluation errors skip the rule rather than failing the
// call.
func (e *Engine) Evaluate(report *domain.Report, turnCount int) []string {
	if len(e.rules) == 0 {
		return nil
	}

	activation := map[string]any{
		"score":      report.Score,
		"verdict":    report.Verdict,
		"risk":       report.RiskLevel,
		"categories": report.ScamTypes,
		"turns":      turnCount,
	}

	var triggered []string
	for _, rule := range e.rules {
		out, _, err := rule.program.Eval(activation)
		if err != nil {
			continue
		}
		if out == types.True {
			triggered = append(triggered, rule.id)
		}
	}

	return triggered
}

// RuleCount returns the number of compiled rules.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

func (e *Engine) compile(rule domain.AlertRule) (compiledRule, error) {
	ast, issues := e.env.Compile(rule.Expression)
	if issues != nil && issues.Err() != nil {
		return compiledRule{}, fmt.Errorf("failed to compile alert rule %s: %w", rule.ID, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return compiledRule{}, fmt.Errorf("alert rule %s: expression must return bool, got %s", rule.ID, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return compiledRule{}, fmt.Errorf("failed to create program for alert rule %s: %w", rule.ID, err)
	}

	return compiledRule{id: rule.ID, program: program}, nil
}
