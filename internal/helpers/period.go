package helpers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Period is a date range embedded in a payload as {"fom": ..., "tom": ...}
type Period struct {
	From time.Time
	To   time.Time
}

// String renders the period as "dd.MM.yyyy - dd.MM.yyyy"
func (p Period) String() string {
	return FormatShortDate(p.From) + " - " + FormatShortDate(p.To)
}

// Payloads use the Norwegian keys; the English ones are accepted as well
var (
	periodFromKeys = []string{"fom", "from"}
	periodToKeys   = []string{"tom", "to"}
)

// ParsePeriod extracts a Period from a JSON object given as text or as a decoded value.
// Both ends must be present; their order is not checked.
func ParsePeriod(value interface{}) (Period, error) {
	const helper = "json_to_period"

	raw, err := periodJSON(value)
	if err != nil {
		return Period{}, &ParseError{Helper: helper, Value: StringForm(value), Cause: err}
	}
	if !gjson.Valid(raw) {
		return Period{}, &ParseError{Helper: helper, Value: raw, Cause: fmt.Errorf("invalid json")}
	}

	obj := gjson.Parse(raw)
	if !obj.IsObject() {
		return Period{}, &ParseError{Helper: helper, Value: raw, Cause: fmt.Errorf("expected a json object")}
	}

	fromStr, ok := firstField(obj, periodFromKeys)
	if !ok {
		return Period{}, &MissingFieldError{Helper: helper, Field: periodFromKeys[0]}
	}
	toStr, ok := firstField(obj, periodToKeys)
	if !ok {
		return Period{}, &MissingFieldError{Helper: helper, Field: periodToKeys[0]}
	}

	from, err := ParseDate(helper, fromStr)
	if err != nil {
		return Period{}, err
	}
	to, err := ParseDate(helper, toStr)
	if err != nil {
		return Period{}, err
	}

	return Period{From: from, To: to}, nil
}

func firstField(obj gjson.Result, keys []string) (string, bool) {
	for _, key := range keys {
		field := obj.Get(key)
		if field.Exists() && field.Type != gjson.Null {
			return field.String(), true
		}
	}
	return "", false
}

func periodJSON(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal period: %w", err)
	}
	return string(data), nil
}

func (r *Registry) jsonToPeriod(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	period, err := ParsePeriod(inv.Context)
	if err != nil {
		return Result{}, err
	}
	return text(period.String()), nil
}
