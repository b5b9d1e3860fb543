package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/onering/onering"
)

// Where is a compiled boolean expression over a record's fields
type Where struct {
	expression string
	program    *vm.Program
}

// helperFunctions are available inside where expressions, next to the
// expr builtins (lower, upper, len, ...) and operators (contains, matches, ...)
func helperFunctions() map[string]any {
	return map[string]any{
		"has": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"text": Stringify,
	}
}

// CompileWhere compiles a where expression such as
// `runtimeInMinutes > 200 and has(name, "king")`
func CompileWhere(expression string) (*Where, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &ValidationError{
			Argument: "where expression",
			Value:    expression,
			Reason:   "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // record fields are only known at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &ValidationError{
			Argument: "where expression",
			Value:    expression,
			Reason:   "failed to compile expression",
			Err:      err,
		}
	}

	return &Where{expression: expression, program: program}, nil
}

// Expression returns the original expression
func (w *Where) Expression() string {
	return w.expression
}

// Match evaluates the expression with the record's fields as variables.
// Fields named like a helper function are not visible to the expression.
func (w *Where) Match(rec onering.Record) (bool, error) {
	env := helperFunctions()
	for _, key := range rec.Keys() {
		if _, isHelper := env[key]; isHelper {
			continue
		}
		v, _ := rec.Get(key)
		env[key] = exprValue(v)
	}

	out, err := expr.Run(w.program, env)
	if err != nil {
		return false, err
	}

	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, not bool", out)
	}
	return matched, nil
}

// exprValue turns json.Number values into int64 or float64 so expressions
// can compare them with numeric literals
func exprValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = exprValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = exprValue(item)
		}
		return out
	}
	return v
}

// Apply returns the records the expression accepts, in order
func (w *Where) Apply(recs []onering.Record) ([]onering.Record, error) {
	result := make([]onering.Record, 0, len(recs))
	for i, rec := range recs {
		ok, err := w.Match(rec)
		if err != nil {
			return nil, &EvaluationError{Expression: w.expression, Index: i, Err: err}
		}
		if ok {
			result = append(result, rec)
		}
	}
	return result, nil
}
