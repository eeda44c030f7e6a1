package utils

import (
	"fmt"
	"math"

	"github.com/knetic/govaluate"
)

// Print a Colored Block in terminal
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}

// EvalNumber evaluates an arithmetic expression such as "0.5", "3/4" or
// "3/2" and returns its value. Variables are not allowed.
func EvalNumber(expr string) (float64, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", expr, err)
	}
	if vars := expression.Vars(); len(vars) > 0 {
		return 0, fmt.Errorf("parse %q: unknown name %q", expr, vars[0])
	}

	result, err := expression.Eval(govaluate.MapParameters{})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", expr, err)
	}

	// govaluate always yields float64 for arithmetic
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("evaluate %q: result %v is not a number", expr, result)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("evaluate %q: result is not finite", expr)
	}

	return value, nil
}
