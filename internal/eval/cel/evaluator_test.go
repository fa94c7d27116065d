package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Evaluate(t *testing.T) {
	e := NewEvaluator("lhs", "rhs")

	tests := []struct {
		name string
		expr string
		lhs  interface{}
		rhs  interface{}
		want interface{}
	}{
		{name: "ints", expr: "lhs > rhs", lhs: 5, rhs: 3, want: true},
		{name: "int64 and double", expr: "lhs < rhs", lhs: int64(2), rhs: 2.5, want: true},
		{name: "double and int", expr: "lhs > rhs", lhs: 2.5, rhs: 3, want: false},
		{name: "strings", expr: "lhs < rhs", lhs: "abc", rhs: "abd", want: true},
		{name: "arithmetic", expr: "lhs + rhs", lhs: 1, rhs: 2, want: int64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Evaluate(context.Background(), tt.expr, map[string]interface{}{"lhs": tt.lhs, "rhs": tt.rhs})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvaluator_Errors(t *testing.T) {
	e := NewEvaluator("lhs", "rhs")

	_, err := e.Evaluate(context.Background(), "lhs > rhs", map[string]interface{}{"lhs": "a", "rhs": 1})
	assert.Error(t, err)

	_, err = e.Evaluate(context.Background(), "lhs >", nil)
	assert.ErrorContains(t, err, "failed to compile expression")

	_, err = e.Evaluate(context.Background(), "unknown > 1", nil)
	assert.Error(t, err)
}

func TestEvaluator_Cache(t *testing.T) {
	e := NewEvaluator("lhs", "rhs")
	vars := map[string]interface{}{"lhs": 1, "rhs": 2}

	_, err := e.Evaluate(context.Background(), "lhs < rhs", vars)
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), "lhs < rhs", vars)
	require.NoError(t, err)
	assert.Len(t, e.cache, 1)

	_, err = e.Evaluate(context.Background(), "lhs > rhs", vars)
	require.NoError(t, err)
	assert.Len(t, e.cache, 2)
}
