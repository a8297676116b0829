package policy

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Request describes a generation request evaluated against a Policy.
type Request struct {
	Namespace    string
	BatchSize    int
	MaxBatchSize int
}

// Policy wraps a compiled CEL program that gates generation requests. When
// disabled (empty expression), Allow always returns true.
type Policy struct {
	prog    cel.Program
	enabled bool
}

// Compile compiles a CEL boolean expression over a generation request's
// namespace and batch size. An empty expression is treated as always-allow.
func Compile(expr string) (Policy, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Policy{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("namespace", cel.StringType),
		cel.Variable("batch_size", cel.IntType),
		cel.Variable("max_batch_size", cel.IntType),
	)
	if err != nil {
		return Policy{}, fmt.Errorf("policy: build env: %w", err)
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Policy{}, fmt.Errorf("policy: parse: %w", iss.Err())
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Policy{}, fmt.Errorf("policy: check: %w", iss2.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Policy{}, fmt.Errorf("policy: build program: %w", err)
	}
	return Policy{prog: prog, enabled: true}, nil
}

// Allow evaluates the compiled expression against req. A type error or a
// non-boolean result is treated as a rejection, never a panic.
func (p Policy) Allow(req Request) bool {
	if !p.enabled {
		return true
	}
	out, _, err := p.prog.Eval(map[string]any{
		"namespace":      req.Namespace,
		"batch_size":     int64(req.BatchSize),
		"max_batch_size": int64(req.MaxBatchSize),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
