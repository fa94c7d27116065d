package helpers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aymerick/raymond"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// literal "\r\n" and "\n" escape sequences first, then real line breaks
	lineBreaks = strings.NewReplacer(`\r\n`, "<br>", `\n`, "<br>", "\r\n", "<br>", "\n", "<br>")

	nameSeparators = []string{" ", "-", "'"}
)

// lower lower-cases with Norwegian rules. Casers are stateful, so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Norwegian).String(s)
}

// capitalizeFirst title-cases the first rune and leaves the rest untouched
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// Capitalize lower-cases s and upper-cases its first character
func Capitalize(s string) string {
	return capitalizeFirst(lower(s))
}

// CapitalizeNames normalizes a person name: "o'brien  mc-donald" becomes "O'Brien Mc-Donald"
func CapitalizeNames(s string) string {
	s = lower(whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
	for _, sep := range nameSeparators {
		s = capitalizeWords(s, sep)
	}
	return s
}

func capitalizeWords(s, sep string) string {
	parts := strings.Split(s, sep)
	for i, part := range parts {
		parts[i] = capitalizeFirst(strings.TrimSpace(part))
	}
	return strings.Join(parts, sep)
}

// BreakLines HTML-escapes s and turns every line break into <br>
func BreakLines(s string) string {
	return lineBreaks.Replace(raymond.Escape(s))
}

// InsertAt inserts divider at each rune offset in turn. Every offset applies to
// the string produced by the previous insertion.
func InsertAt(s string, divider string, offsets ...int) (string, error) {
	runes := []rune(s)
	div := []rune(divider)
	for i, idx := range offsets {
		if idx < 0 || idx > len(runes) {
			return "", &ArgumentError{
				Helper: "insert_at",
				Index:  i,
				Reason: fmt.Sprintf("offset %d out of range [0,%d]", idx, len(runes)),
			}
		}
		next := make([]rune, 0, len(runes)+len(div))
		next = append(next, runes[:idx]...)
		next = append(next, div...)
		next = append(next, runes[idx:]...)
		runes = next
	}
	return string(runes), nil
}

func (r *Registry) capitalize(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return text(Capitalize(StringForm(inv.Context))), nil
}

func (r *Registry) capitalizeNames(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return safeText(CapitalizeNames(StringForm(inv.Context))), nil
}

func (r *Registry) breaklines(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return safeText(BreakLines(StringForm(inv.Context))), nil
}

func (r *Registry) insertAt(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}

	offsets := make([]int, len(inv.Params))
	for i, p := range inv.Params {
		n, ok := toInt(p)
		if !ok {
			return Result{}, &ArgumentError{Helper: "insert_at", Index: i, Reason: fmt.Sprintf("expected an integer offset, got %T", p)}
		}
		offsets[i] = n
	}

	divider := StringForm(inv.HashOr("divider", " "))
	out, err := InsertAt(StringForm(inv.Context), divider, offsets...)
	if err != nil {
		return Result{}, err
	}
	return text(out), nil
}
