package helpers

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// IsTruthy reports whether a value selects the body branch of a conditional.
// nil, "", false and empty slices, arrays and maps are falsy; everything else,
// including 0, is truthy.
func IsTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsTruthy(rv.Elem().Interface())
	}
	return true
}

// StringForm renders a value the way templates display it. nil renders as "".
func StringForm(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(value)
}

// toInt converts integral numbers, json.Number and numeric strings to int
func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		i, err := strconv.Atoi(v.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(v)
		return i, err == nil
	}
	return 0, false
}

// toBool reads a flag parameter: booleans as-is, strings via strconv, anything else by truthiness
func toBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return IsTruthy(value)
}

// normalizeNumber converts json.Number into int64 or float64 so it can be compared
func normalizeNumber(value interface{}) interface{} {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// defaultLookup resolves a field on maps and structs when the engine supplies no lookup
func defaultLookup(ctx interface{}, field string) interface{} {
	if ctx == nil || field == "" {
		return nil
	}
	if m, ok := ctx.(map[string]interface{}); ok {
		return m[field]
	}

	rv := reflect.ValueOf(ctx)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(field).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		v := rv.FieldByName(field)
		if !v.IsValid() || !v.CanInterface() {
			return nil
		}
		return v.Interface()
	}
	return nil
}

// toSlice returns the elements of a slice or array value
func toSlice(value interface{}) ([]interface{}, bool) {
	if s, ok := value.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
