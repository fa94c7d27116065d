package helpers

import (
	"context"
	"fmt"
)

// CEL variable names used by the ordered comparisons
const (
	lhsVar = "lhs"
	rhsVar = "rhs"
)

func (r *Registry) eq(inv *Invocation) (Result, error) {
	return branch(StringForm(inv.Context) == StringForm(inv.Param(0))), nil
}

func (r *Registry) notEq(inv *Invocation) (Result, error) {
	return branch(StringForm(inv.Context) != StringForm(inv.Param(0))), nil
}

func (r *Registry) gt(inv *Invocation) (Result, error) {
	return r.compare("gt", ">", inv)
}

func (r *Registry) lt(inv *Invocation) (Result, error) {
	return r.compare("lt", "<", inv)
}

// compare orders the context against the first parameter.
// Absent operands take the inverse branch; operands CEL cannot order are an error.
func (r *Registry) compare(helper, op string, inv *Invocation) (Result, error) {
	left, right := inv.Context, inv.Param(0)
	if left == nil || right == nil {
		return branch(false), nil
	}

	vars := map[string]interface{}{
		lhsVar: normalizeNumber(left),
		rhsVar: normalizeNumber(right),
	}
	out, err := r.evaluator.Evaluate(context.Background(), lhsVar+" "+op+" "+rhsVar, vars)
	if err != nil {
		return Result{}, &ComparisonTypeError{Helper: helper, Left: left, Right: right, Cause: err}
	}

	matched, ok := out.(bool)
	if !ok {
		return Result{}, &ComparisonTypeError{
			Helper: helper,
			Left:   left,
			Right:  right,
			Cause:  fmt.Errorf("comparison returned %T", out),
		}
	}
	return branch(matched), nil
}

func (r *Registry) anyTruthy(inv *Invocation) (Result, error) {
	if IsTruthy(inv.Context) {
		return branch(true), nil
	}
	for _, p := range inv.Params {
		if IsTruthy(p) {
			return branch(true), nil
		}
	}
	return branch(false), nil
}

func (r *Registry) isDefined(inv *Invocation) (Result, error) {
	return branch(inv.Context != nil), nil
}

func (r *Registry) containsField(inv *Invocation) (Result, error) {
	items, ok := toSlice(inv.Context)
	if !ok {
		return branch(false), nil
	}

	field := StringForm(inv.Param(0))
	for _, item := range items {
		if IsTruthy(inv.lookup(item, field)) {
			return branch(true), nil
		}
	}
	return branch(false), nil
}

// containsAll never matches an empty parameter list
func (r *Registry) containsAll(inv *Invocation) (Result, error) {
	if len(inv.Params) == 0 {
		return branch(false), nil
	}
	items, ok := toSlice(inv.Context)
	if !ok {
		return branch(false), nil
	}

	values := make(map[string]struct{}, len(items))
	for _, item := range items {
		if s, isString := item.(string); isString {
			values[s] = struct{}{}
		}
	}

	for _, p := range inv.Params {
		s, isString := p.(string)
		if !isString {
			return branch(false), nil
		}
		if _, found := values[s]; !found {
			return branch(false), nil
		}
	}
	return branch(true), nil
}
