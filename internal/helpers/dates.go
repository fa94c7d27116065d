package helpers

import (
	"strconv"
	"strings"
	"time"
)

const (
	shortDateLayout     = "02.01.2006"
	shortDateTimeLayout = "02.01.2006 15:04"
)

// Layouts are tried in order. Fractional seconds are accepted after the
// seconds field by time.Parse even though the layouts do not spell them out.
var (
	offsetDateTimeLayouts = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04Z07:00"}
	localDateTimeLayouts  = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	isoDateLayouts        = []string{"2006-01-02", "2006-01-02Z07:00"}
)

var norwegianMonths = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

// FormatShortDate renders t as dd.MM.yyyy
func FormatShortDate(t time.Time) string {
	return t.Format(shortDateLayout)
}

// FormatShortDateTime renders t as dd.MM.yyyy HH:mm
func FormatShortDateTime(t time.Time) string {
	return t.Format(shortDateTimeLayout)
}

// FormatLongDate renders t as "d. <month> yyyy" with Norwegian month names
func FormatLongDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + ". " + norwegianMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ParseDateTime parses an ISO-8601 date-time, with or without offset.
// An offset-aware value keeps its own offset.
func ParseDateTime(helper, value string) (time.Time, error) {
	return parseLayouts(helper, value, offsetDateTimeLayouts, localDateTimeLayouts)
}

// ParseDate parses an ISO-8601 date with an optional offset
func ParseDate(helper, value string) (time.Time, error) {
	return parseLayouts(helper, value, isoDateLayouts)
}

func parseLayouts(helper, value string, chains ...[]string) (time.Time, error) {
	input := stripZoneID(strings.TrimSpace(value))

	var tried []string
	for _, layouts := range chains {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, input); err == nil {
				return t, nil
			}
			tried = append(tried, layout)
		}
	}
	return time.Time{}, &ParseError{Helper: helper, Value: value, Layouts: tried}
}

// stripZoneID drops a trailing region id such as "[Europe/Oslo]"
func stripZoneID(value string) string {
	if !strings.HasSuffix(value, "]") {
		return value
	}
	if i := strings.LastIndex(value, "["); i > 0 {
		return value[:i]
	}
	return value
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts whole calendar days from a to b, ignoring time and offset.
// Unix seconds are used instead of time.Duration, which cannot span more than 292 years.
func daysBetween(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

func (r *Registry) isoToNorDate(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	t, err := ParseDateTime("iso_to_nor_date", StringForm(inv.Context))
	if err != nil {
		return Result{}, err
	}
	return text(FormatShortDate(t)), nil
}

func (r *Registry) isoToNorDateTime(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	t, err := ParseDateTime("iso_to_nor_datetime", StringForm(inv.Context))
	if err != nil {
		return Result{}, err
	}
	return text(FormatShortDateTime(t)), nil
}

func (r *Registry) isoToDate(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	t, err := ParseDate("iso_to_date", StringForm(inv.Context))
	if err != nil {
		return Result{}, err
	}
	return text(FormatShortDate(t)), nil
}

func (r *Registry) isoToLongDate(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	t, err := parseLayouts("iso_to_long_date", StringForm(inv.Context),
		offsetDateTimeLayouts, localDateTimeLayouts, isoDateLayouts)
	if err != nil {
		return Result{}, err
	}
	return text(FormatLongDate(t)), nil
}

func (r *Registry) duration(inv *Invocation) (Result, error) {
	if inv.Context == nil || inv.Param(0) == nil {
		return text(""), nil
	}
	from, err := ParseDate("duration", StringForm(inv.Context))
	if err != nil {
		return Result{}, err
	}
	to, err := ParseDate("duration", StringForm(inv.Param(0)))
	if err != nil {
		return Result{}, err
	}
	return text(strconv.Itoa(daysBetween(from, to))), nil
}
