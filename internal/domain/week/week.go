// Package week computes the Monday-to-Friday work weeks timesheets are built on.
//
// All arithmetic is done on local calendar dates: times are truncated to midnight in
// their own location before days are added, so DST transitions never shift a date.
package week

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkDays is the number of days in a work week (Monday to Friday).
const WorkDays = 5

const (
	isoDateLayout = "2006-01-02"
	labelLayout   = "Jan 2"
)

// ErrInvalidDate indicates a display date that cannot be parsed.
var ErrInvalidDate = errors.New("invalid display date")

// Range describes one work week.
type Range struct {
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DateRange  string    `json:"date_range"`
	WeekNumber int       `json:"week_number"`
	Start      time.Time `json:"-"`
	End        time.Time `json:"-"`
}

// Day is one calendar day of an expanded work week.
type Day struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// WeekStart returns the Monday on or before t, at midnight.
func WeekStart(t time.Time) time.Time {
	d := midnight(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		// Sunday closes the week that started six days earlier.
		return addDays(d, -6)
	}
	return addDays(d, 1-weekday)
}

// Dates returns the work week offset weeks after the week containing now.
func Dates(now time.Time, offset int) Range {
	start := addDays(WeekStart(now), offset*7)
	end := addDays(start, WorkDays-1)

	return Range{
		StartDate:  FormatDisplay(start),
		EndDate:    FormatDisplay(end),
		DateRange:  FormatDisplay(start) + " - " + FormatDisplay(end),
		WeekNumber: Number(start),
		Start:      start,
		End:        end,
	}
}

// Number returns the week-of-year shown next to a timesheet.
//
// This is ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7) with Sunday as weekday 0. It is
// not the ISO-8601 week number and is kept as-is because stored timesheets carry it.
func Number(t time.Time) int {
	d := midnight(t)
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	n := d.YearDay() - 1 + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

// FormatDisplay renders t as "20 January, 2026".
func FormatDisplay(t time.Time) string {
	return fmt.Sprintf("%d %s, %d", t.Day(), t.Month(), t.Year())
}

// ParseDisplay parses a date produced by FormatDisplay, in the local time zone.
func ParseDisplay(s string) (time.Time, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: bad day in %q", ErrInvalidDate, s)
	}
	month, ok := monthByName[strings.TrimSuffix(parts[1], ",")]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown month in %q", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad year in %q", ErrInvalidDate, s)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

// ExpandWorkWeek returns the five consecutive days starting at a display-formatted date.
func ExpandWorkWeek(startDate string) ([]Day, error) {
	start, err := ParseDisplay(startDate)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, WorkDays)
	for i := 0; i < WorkDays; i++ {
		d := addDays(start, i)
		days = append(days, Day{
			Date:  d.Format(isoDateLayout),
			Label: d.Format(labelLayout),
		})
	}
	return days, nil
}

// ISODate renders t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

var monthByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for i := time.January; i <= time.December; i++ {
		m[i.String()] = i
	}
	return m
}()

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}
