// Package dateutil provides total date helpers: every function accepts
// loosely typed input and returns a zero value instead of failing.
//
// Supported inputs are time.Time, *time.Time, ISO-8601 strings and Unix
// milliseconds (int, int64, float64). Format patterns use Unicode date
// tokens such as "yyyy-MM-dd" or "MMMM d, yyyy".
package dateutil

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultFormat is used when an empty pattern is given.
const DefaultFormat = "yyyy-MM-dd"

// isoLayouts are tried in order. Layouts without a zone are read in the
// local time zone.
var (
	isoZoned = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04Z07:00",
	}
	isoLocal = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006-01",
		"2006",
	}
)

func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range isoZoned {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	for _, l := range isoLocal {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toTime coerces v into a time. The zero time is invalid.
func toTime(v any) (time.Time, bool) {
	var t time.Time
	switch v := v.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		t = *v
	case string:
		return parseISO(v)
	case int:
		t = time.UnixMilli(int64(v))
	case int64:
		t = time.UnixMilli(v)
	case float64:
		t = time.UnixMilli(int64(v))
	default:
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// blank reports the empty inputs that format and validity checks treat as
// no date at all, including the Unix epoch given as a number.
func blank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

func orDefault(pattern string) string {
	if pattern == "" {
		return DefaultFormat
	}
	return pattern
}

// FormatDate renders date with pattern, or DefaultFormat when pattern is
// empty. Blank or invalid input or an unsupported pattern yields "".
func FormatDate(date any, pattern string) string {
	if blank(date) {
		return ""
	}
	t, ok := toTime(date)
	if !ok {
		return ""
	}
	s, err := format(t, orDefault(pattern))
	if err != nil {
		return ""
	}
	return s
}

// FormatRelativeDate describes date relative to base ("3 days ago",
// "in 2 hours"). A nil base means now.
func FormatRelativeDate(date, base any) string {
	if blank(date) {
		return ""
	}
	t, ok := toTime(date)
	if !ok {
		return ""
	}
	ref := time.Now()
	if base != nil {
		if ref, ok = toTime(base); !ok {
			return ""
		}
	}
	if !t.After(ref) {
		return humanize.RelTime(t, ref, "ago", "")
	}
	s := strings.TrimSpace(humanize.RelTime(t, ref, "", ""))
	if s == "now" {
		return s
	}
	return "in " + s
}

// ParseDate parses value with a Unicode date pattern in the local zone.
// Fields absent from the pattern take their zero values.
func ParseDate(value, pattern string) (time.Time, bool) {
	if value == "" || pattern == "" {
		return time.Time{}, false
	}
	l, err := layout(pattern)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(l, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseISODate parses an ISO-8601 date or date-time.
func ParseISODate(value string) (time.Time, bool) {
	return parseISO(value)
}

// IsValidDate reports whether v is a supported, valid date value.
// Blank input is not.
func IsValidDate(v any) bool {
	if blank(v) {
		return false
	}
	_, ok := toTime(v)
	return ok
}

// GetDaysDifference returns the number of full days between left and
// right, negative when left is earlier. Calendar days are counted in
// left's zone and a trailing partial day does not count.
func GetDaysDifference(left, right any) int {
	l, ok := toTime(left)
	if !ok {
		return 0
	}
	r, ok := toTime(right)
	if !ok {
		return 0
	}
	r = r.In(l.Location())

	sign := compareWallClock(l, r)
	diff := calendarDays(l, r)
	if diff < 0 {
		diff = -diff
	}
	shifted := l.AddDate(0, 0, -sign*diff)
	if compareWallClock(shifted, r) == -sign {
		diff--
	}
	return sign * diff
}

// compareWallClock compares the local date and time of a and b.
func compareWallClock(a, b time.Time) int {
	wa := time.Date(a.Year(), a.Month(), a.Day(), a.Hour(), a.Minute(), a.Second(), a.Nanosecond(), time.UTC)
	wb := time.Date(b.Year(), b.Month(), b.Day(), b.Hour(), b.Minute(), b.Second(), b.Nanosecond(), time.UTC)
	return wa.Compare(wb)
}

func calendarDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(da.Sub(db).Hours() / 24)
}

// AddDaysToDate adds amount calendar days, keeping the time of day.
func AddDaysToDate(date any, amount int) (time.Time, bool) {
	t, ok := toTime(date)
	if !ok {
		return time.Time{}, false
	}
	return t.AddDate(0, 0, amount), true
}

// FormatDateRange renders "start - end" with pattern.
func FormatDateRange(start, end any, pattern string) string {
	s, ok := toTime(start)
	if !ok {
		return ""
	}
	e, ok := toTime(end)
	if !ok {
		return ""
	}
	pattern = orDefault(pattern)
	fs, err := format(s, pattern)
	if err != nil {
		return ""
	}
	fe, err := format(e, pattern)
	if err != nil {
		return ""
	}
	return fs + " - " + fe
}

// IsDateBetween reports whether date lies between start and end. When
// inclusive, a date on the same calendar day as either bound counts.
func IsDateBetween(date, start, end any, inclusive bool) bool {
	d, ok := toTime(date)
	if !ok {
		return false
	}
	s, ok := toTime(start)
	if !ok {
		return false
	}
	e, ok := toTime(end)
	if !ok {
		return false
	}

	if inclusive {
		return (d.After(s) || sameDay(d, s)) && (d.Before(e) || sameDay(d, e))
	}
	return d.After(s) && d.Before(e)
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// GetStartOfDay returns midnight of date's day in date's zone.
func GetStartOfDay(date any) (time.Time, bool) {
	t, ok := toTime(date)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}

// GetEndOfDay returns the last millisecond of date's day in date's zone.
func GetEndOfDay(date any) (time.Time, bool) {
	t, ok := toTime(date)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location()), true
}
