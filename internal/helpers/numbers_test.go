package helpers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value           string
		withoutDecimals bool
		want            string
	}{
		{value: "1234567.5", want: "1 234 567,50"},
		{value: "1234567.5", withoutDecimals: true, want: "1 234 567"},
		{value: "100", want: "100,00"},
		{value: "100.999", want: "100,99"},
		{value: "12.", want: "12,00"},
		{value: "0.05", want: "0,05"},
		{value: "1000", want: "1 000,00"},
		{value: "999999", want: "999 999,00"},
		{value: "", want: ",00"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.value, tt.withoutDecimals))
		})
	}
}

func TestCurrencyNo(t *testing.T) {
	r := NewRegistry(Assets{})

	tests := []struct {
		name    string
		context interface{}
		params  []interface{}
		want    string
	}{
		{name: "decoded json number", context: json.Number("1234567.5"), want: "1 234 567,50"},
		{name: "float", context: 1234.5, want: "1 234,50"},
		{name: "int", context: 999, want: "999,00"},
		{name: "flag true", context: "1234567.5", params: []interface{}{true}, want: "1 234 567"},
		{name: "flag false", context: "1234567.5", params: []interface{}{false}, want: "1 234 567,50"},
		{name: "flag as string", context: "1234567.5", params: []interface{}{"true"}, want: "1 234 567"},
		{name: "flag string false", context: "1234567.5", params: []interface{}{"false"}, want: "1 234 567,50"},
		{name: "absent", context: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke("currency_no", &Invocation{Context: tt.context, Params: tt.params})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestFormatComma(t *testing.T) {
	r := NewRegistry(Assets{})

	res, err := r.Invoke("formatComma", &Invocation{Context: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, "12,5", res.Text)

	res, err = r.Invoke("formatComma", &Invocation{Context: 3.25})
	require.NoError(t, err)
	assert.Equal(t, "3,25", res.Text)

	res, err = r.Invoke("formatComma", &Invocation{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
}

func TestInc(t *testing.T) {
	r := NewRegistry(Assets{})

	tests := []struct {
		name    string
		context interface{}
		want    string
	}{
		{name: "zero", context: 0, want: "1"},
		{name: "json number", context: json.Number("4"), want: "5"},
		{name: "integral float", context: float64(2), want: "3"},
		{name: "numeric string", context: "9", want: "10"},
		{name: "absent", context: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke("inc", &Invocation{Context: tt.context})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}

	for _, bad := range []interface{}{"abc", 1.5, true} {
		_, err := r.Invoke("inc", &Invocation{Context: bad})
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr, "value %v", bad)
		assert.Equal(t, "inc", argErr.Helper)
		assert.Equal(t, -1, argErr.Index)
	}
}
