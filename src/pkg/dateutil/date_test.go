package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func local(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestFormatDate(t *testing.T) {
	date := local(2025, time.April, 4)

	assert.Equal(t, "2025-04-04", FormatDate(date, ""))
	assert.Equal(t, "04/04/2025", FormatDate(date, "MM/dd/yyyy"))
	assert.Equal(t, "April 4, 2025", FormatDate(date, "MMMM d, yyyy"))
	assert.Equal(t, "2025-04-04", FormatDate(&date, DefaultFormat))
	assert.Equal(t, "2025-04-04", FormatDate("2025-04-04", ""))
}

func TestFormatDate_Tokens(t *testing.T) {
	ts := time.Date(2025, time.April, 4, 15, 7, 9, 123_000_000, time.UTC)

	assert.Equal(t, "Fri, 4 Apr 25", FormatDate(ts, "EEE, d MMM yy"))
	assert.Equal(t, "Friday 3:07 PM", FormatDate(ts, "EEEE h:mm a"))
	assert.Equal(t, "15:07:09.123Z", FormatDate(ts, "HH:mm:ss.SSSXXX"))
	assert.Equal(t, "at 15 o'clock", FormatDate(ts, "'at' H 'o''clock'"))
	assert.Equal(t, "+00:00", FormatDate(ts, "xxx"))
}

func TestFormatDate_Invalid(t *testing.T) {
	assert.Equal(t, "", FormatDate("", ""))
	assert.Equal(t, "", FormatDate("invalid-date", ""))
	assert.Equal(t, "", FormatDate(nil, ""))
	assert.Equal(t, "", FormatDate(time.Time{}, ""))
	assert.Equal(t, "", FormatDate(local(2025, time.April, 4), "qqq"))
	assert.Equal(t, "", FormatDate(local(2025, time.April, 4), "'open"))
}

func TestFormatDate_UnixMillis(t *testing.T) {
	ms := local(2025, time.April, 4).UnixMilli()
	assert.Equal(t, "2025-04-04", FormatDate(ms, ""))
	assert.Equal(t, "2025-04-04", FormatDate(float64(ms), ""))
}

func TestFormatDate_BlankInput(t *testing.T) {
	assert.Equal(t, "", FormatDate(0, ""))
	assert.Equal(t, "", FormatDate(int64(0), ""))
	assert.Equal(t, "", FormatDate(0.0, "yyyy"))

	// The epoch is still a date where the input is not blank.
	epoch := time.UnixMilli(0).In(time.UTC)
	assert.Equal(t, "1970-01-01", FormatDate(epoch, ""))
	got, ok := AddDaysToDate(0, 1)
	require.True(t, ok)
	assert.Equal(t, int64(24*60*60*1000), got.UnixMilli())
}

func TestFormatRelativeDate(t *testing.T) {
	base := time.Date(2025, time.April, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "3 days ago", FormatRelativeDate(base.AddDate(0, 0, -3), base))
	assert.Equal(t, "in 2 hours", FormatRelativeDate(base.Add(2*time.Hour), base))
	assert.Equal(t, "in 5 days", FormatRelativeDate(base.AddDate(0, 0, 5), base))
	assert.Equal(t, "now", FormatRelativeDate(base, base))
	assert.Equal(t, "", FormatRelativeDate(0, base))
	assert.Equal(t, "", FormatRelativeDate("", base))
	assert.Equal(t, "", FormatRelativeDate("nope", base))
	assert.Equal(t, "", FormatRelativeDate(base, "nope"))
	assert.NotEmpty(t, FormatRelativeDate(base, nil))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("04/04/2025", "MM/dd/yyyy")
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 4, got.Day())

	got, ok = ParseDate("4 April 2025 9:05", "d MMMM yyyy H:mm")
	require.True(t, ok)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 5, got.Minute())

	_, ok = ParseDate("invalid", "MM/dd/yyyy")
	assert.False(t, ok)
	_, ok = ParseDate("", "MM/dd/yyyy")
	assert.False(t, ok)
	_, ok = ParseDate("2025", "")
	assert.False(t, ok)
}

func TestParseISODate(t *testing.T) {
	got, ok := ParseISODate("2025-04-04T12:00:00Z")
	require.True(t, ok)
	got = got.UTC()
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 4, got.Day())

	got, ok = ParseISODate("2025-04-04")
	require.True(t, ok)
	assert.Equal(t, local(2025, time.April, 4), got)

	_, ok = ParseISODate("invalid")
	assert.False(t, ok)
	_, ok = ParseISODate("")
	assert.False(t, ok)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate(time.Now()))
	assert.True(t, IsValidDate("2025-04-04"))
	assert.True(t, IsValidDate(time.Now().UnixMilli()))

	assert.False(t, IsValidDate("invalid"))
	assert.False(t, IsValidDate(""))
	assert.False(t, IsValidDate(nil))
	assert.False(t, IsValidDate(0))
	assert.False(t, IsValidDate(0.0))
	assert.False(t, IsValidDate((*time.Time)(nil)))
	assert.False(t, IsValidDate(struct{}{}))
}

func TestGetDaysDifference(t *testing.T) {
	a := local(2025, time.April, 4)
	b := local(2025, time.April, 1)

	assert.Equal(t, 3, GetDaysDifference(a, b))
	assert.Equal(t, -3, GetDaysDifference(b, a))
	assert.Equal(t, 3, GetDaysDifference("2025-04-04", "2025-04-01"))
	assert.Equal(t, 0, GetDaysDifference("bad", b))
}

func TestGetDaysDifference_PartialDay(t *testing.T) {
	left := time.Date(2025, time.April, 4, 10, 0, 0, 0, time.UTC)
	right := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, GetDaysDifference(left, right))
	assert.Equal(t, -2, GetDaysDifference(right, left))
}

func TestAddDaysToDate(t *testing.T) {
	date := local(2025, time.April, 4)

	got, ok := AddDaysToDate(date, 3)
	require.True(t, ok)
	assert.Equal(t, local(2025, time.April, 7), got)

	got, ok = AddDaysToDate(date, -3)
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 1, got.Day())

	got, ok = AddDaysToDate("2025-04-04", 3)
	require.True(t, ok)
	assert.Equal(t, "2025-04-07", FormatDate(got, "yyyy-MM-dd"))

	_, ok = AddDaysToDate("bad", 1)
	assert.False(t, ok)
}

func TestFormatDateRange(t *testing.T) {
	start := local(2025, time.April, 4)
	end := local(2025, time.April, 10)

	assert.Equal(t, "2025-04-04 - 2025-04-10", FormatDateRange(start, end, ""))
	assert.Equal(t, "04/04/2025 - 04/10/2025", FormatDateRange(start, end, "MM/dd/yyyy"))
	assert.Equal(t, "2025-04-04 - 2025-04-10", FormatDateRange("2025-04-04", "2025-04-10", ""))
	assert.Equal(t, "", FormatDateRange(start, "bad", ""))
}

func TestIsDateBetween(t *testing.T) {
	start := local(2025, time.April, 4)
	end := local(2025, time.April, 10)

	tests := []struct {
		name      string
		date      time.Time
		inclusive bool
		want      bool
	}{
		{"inside", local(2025, time.April, 5), true, true},
		{"equal to start inclusive", start, true, true},
		{"equal to end inclusive", end, true, true},
		{"same day as end inclusive", end.Add(6 * time.Hour), true, true},
		{"equal to start exclusive", start, false, false},
		{"equal to end exclusive", end, false, false},
		{"inside exclusive", local(2025, time.April, 5), false, true},
		{"before start", local(2025, time.April, 3), true, false},
		{"after end", local(2025, time.April, 11), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateBetween(tt.date, start, end, tt.inclusive))
		})
	}

	assert.False(t, IsDateBetween("bad", start, end, true))
}

func TestStartAndEndOfDay(t *testing.T) {
	date := time.Date(2025, time.April, 4, 12, 30, 45, 0, time.Local)

	start, ok := GetStartOfDay(date)
	require.True(t, ok)
	assert.Equal(t, local(2025, time.April, 4), start)

	end, ok := GetEndOfDay(date)
	require.True(t, ok)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, 999*time.Millisecond, time.Duration(end.Nanosecond()))
	assert.Equal(t, 4, end.Day())

	_, ok = GetStartOfDay("bad")
	assert.False(t, ok)
	_, ok = GetEndOfDay(nil)
	assert.False(t, ok)
}
