package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"hELLO wORLD": "Hello world",
		"ærlig":       "Ærlig",
		"ØSTLANDET":   "Østlandet",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Capitalize(in), in)
	}
}

func TestCapitalizeNames(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "o'brien mc-donald", want: "O'Brien Mc-Donald"},
		{in: "  ola   NORDMANN ", want: "Ola Nordmann"},
		{in: "anne-marie  o'neill", want: "Anne-Marie O'Neill"},
		{in: "ÅSE\tøstby", want: "Åse Østby"},
		{in: "kari", want: "Kari"},
	}

	r := NewRegistry(Assets{})
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, err := r.Invoke("capitalize_names", &Invocation{Context: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.True(t, res.Safe)
		})
	}
}

func TestBreakLines(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
		safe bool
	}{
		{name: "line feed", in: "first\nsecond", want: "first<br>second", safe: true},
		{name: "crlf", in: "first\r\nsecond", want: "first<br>second", safe: true},
		{name: "literal escape", in: `first\nsecond`, want: "first<br>second", safe: true},
		{name: "literal crlf escape", in: `first\r\nsecond`, want: "first<br>second", safe: true},
		{name: "escapes markup", in: "a<b>\nc & d", want: "a&lt;b&gt;<br>c &amp; d", safe: true},
		{name: "no breaks", in: "plain", want: "plain", safe: true},
		{name: "absent", in: nil, want: ""},
	}

	r := NewRegistry(Assets{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke("breaklines", &Invocation{Context: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, tt.safe, res.Safe)
		})
	}
}

func TestInsertAt(t *testing.T) {
	r := NewRegistry(Assets{})

	tests := []struct {
		name    string
		context interface{}
		params  []interface{}
		hash    map[string]interface{}
		want    string
	}{
		{name: "offsets follow previous insertions", context: "ABCDEF", params: []interface{}{2, 5}, want: "AB CD EF"},
		{name: "second offset counts the first divider", context: "ABCDEF", params: []interface{}{2, 4}, want: "AB C DEF"},
		{name: "custom divider", context: "12345678901", params: []interface{}{6}, hash: map[string]interface{}{"divider": "-"}, want: "123456-78901"},
		{name: "account number", context: "12345678901", params: []interface{}{4, 7}, hash: map[string]interface{}{"divider": "."}, want: "1234.56.78901"},
		{name: "offset at end", context: "AB", params: []interface{}{2}, want: "AB "},
		{name: "rune offsets", context: "ÆØÅæøå", params: []interface{}{3}, want: "ÆØÅ æøå"},
		{name: "no offsets", context: "ABC", want: "ABC"},
		{name: "absent", context: nil, params: []interface{}{2}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke("insert_at", &Invocation{Context: tt.context, Params: tt.params, Hash: tt.hash})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, err := r.Invoke("insert_at", &Invocation{Context: "ABC", Params: []interface{}{1, 9}})
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, 1, argErr.Index)
	})

	t.Run("non-integer offset", func(t *testing.T) {
		_, err := r.Invoke("insert_at", &Invocation{Context: "ABC", Params: []interface{}{"x"}})
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, 0, argErr.Index)
	})
}
