// Package cel provides a CEL (Common Expression Language) evaluator used by the
// ordering helpers (gt, lt).
//
// CEL gives comparisons a real type system: integers and doubles compare
// numerically, strings compare lexically, and operands of unrelated types fail
// with a "no such overload" error instead of being silently coerced.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator("lhs", "rhs")
//
//	vars := map[string]interface{}{
//	    "lhs": 3,
//	    "rhs": 5.5,
//	}
//
//	result, err := evaluator.Evaluate(ctx, "lhs > rhs", vars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	greater := result.(bool) // false
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - Arithmetic: +, -, *, /, %
package cel
