package helpers

import (
	"strconv"
	"strings"
)

// FormatCurrency groups the integer part of a decimal string by thousands with
// spaces and joins a two-character decimal part with a comma.
// Decimals are truncated, never rounded: "100.999" becomes "100,99".
func FormatCurrency(value string, withoutDecimals bool) string {
	parts := strings.Split(value, ".")
	grouped := groupThousands(parts[0])
	if withoutDecimals {
		return grouped
	}

	decimals := "00"
	if len(parts) > 1 && parts[1] != "" {
		decimals = firstRunes(parts[1]+"0", 2)
	}
	return grouped + "," + decimals
}

// groupThousands inserts a space between every group of three runes counted from the right
func groupThousands(digits string) string {
	runes := []rune(digits)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && (len(runes)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (r *Registry) currencyNo(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	withoutDecimals := inv.Param(0) != nil && toBool(inv.Param(0))
	return text(FormatCurrency(StringForm(inv.Context), withoutDecimals)), nil
}

func (r *Registry) formatComma(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return text(strings.ReplaceAll(StringForm(inv.Context), ".", ",")), nil
}

func (r *Registry) inc(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	n, ok := toInt(inv.Context)
	if !ok {
		return Result{}, &ArgumentError{Helper: "inc", Index: -1, Reason: "expected an integer, got " + strconv.Quote(StringForm(inv.Context))}
	}
	return text(strconv.Itoa(n + 1)), nil
}
