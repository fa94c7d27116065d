package helpers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(Assets{})

	want := []string{
		"any", "breaklines", "capitalize", "capitalize_names", "contains_all",
		"contains_field", "currency_no", "duration", "eq", "formatComma", "gt",
		"image", "inc", "insert_at", "is_defined", "iso_to_date",
		"iso_to_long_date", "iso_to_nor_date", "iso_to_nor_datetime",
		"json_to_period", "lt", "not_eq", "resource", "safe",
	}
	assert.Equal(t, want, r.Names())

	for _, name := range want {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}
}

func TestRegistry_InvokeUnknown(t *testing.T) {
	r := NewRegistry(Assets{})

	_, err := r.Invoke("nope", &Invocation{})
	assert.Error(t, err)

	res, err := r.Invoke("capitalize", nil)
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
}

func TestLookupHelpers(t *testing.T) {
	images := map[string]string{"logo.png": "data:image/png;base64,AAAA"}
	resources := map[string][]byte{"footer.html": []byte("<p>NAV</p>")}
	r := NewRegistry(Assets{Images: images, Resources: resources})

	// later changes by the caller are not visible
	images["logo.png"] = "changed"
	resources["footer.html"][0] = 'X'
	delete(resources, "footer.html")

	tests := []struct {
		name    string
		helper  string
		context interface{}
		want    string
		safe    bool
	}{
		{name: "image", helper: "image", context: "logo.png", want: "data:image/png;base64,AAAA"},
		{name: "unknown image", helper: "image", context: "missing.png", want: ""},
		{name: "absent image", helper: "image", want: ""},
		{name: "resource", helper: "resource", context: "footer.html", want: "<p>NAV</p>"},
		{name: "unknown resource", helper: "resource", context: "missing", want: ""},
		{name: "absent resource", helper: "resource", want: ""},
		{name: "safe", helper: "safe", context: "<b>bold</b>", want: "<b>bold</b>", safe: true},
		{name: "absent safe", helper: "safe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke(tt.helper, &Invocation{Context: tt.context})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, tt.safe, res.Safe)
		})
	}
}

func TestIsTruthy(t *testing.T) {
	truthy := []interface{}{true, "x", 0, 0.0, json.Number("0"), []interface{}{nil}, map[string]interface{}{"a": nil}, struct{}{}}
	for _, v := range truthy {
		assert.True(t, IsTruthy(v), "%#v", v)
	}

	var nilMap map[string]interface{}
	falsy := []interface{}{nil, false, "", []interface{}{}, []string{}, nilMap, [0]int{}}
	for _, v := range falsy {
		assert.False(t, IsTruthy(v), "%#v", v)
	}
}

func TestStringForm(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: nil, want: ""},
		{in: "s", want: "s"},
		{in: 5, want: "5"},
		{in: int64(-7), want: "-7"},
		{in: 1234567.5, want: "1234567.5"},
		{in: 1e21, want: "1000000000000000000000"},
		{in: json.Number("1.50"), want: "1.50"},
		{in: true, want: "true"},
		{in: []byte("raw"), want: "raw"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StringForm(tt.in))
	}
}
