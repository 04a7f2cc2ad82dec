package datewin

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOBasic is the YYYYMMDD layout the portal expects in URLs.
const ISOBasic = "20060102"

// NextWeekKeyword selects NextWeekWindow when passed as a date argument.
const NextWeekKeyword = "nextweek"

// ErrInvalidDate marks a date argument that could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Anchor chooses the first day of a window relative to the reference day.
type Anchor int

const (
	// AnchorDay starts on the reference day itself.
	AnchorDay Anchor = iota
	// AnchorMonday starts on the Monday on or before the reference day.
	AnchorMonday
)

// Rollover decides what a weekend reference day means.
type Rollover int

const (
	// RolloverNone keeps Saturday and Sunday in the week that contains them.
	RolloverNone Rollover = iota
	// RolloverForward moves Saturday and Sunday to the following Monday.
	RolloverForward
)

// ThroughFriday as a Span ends the window on the Friday of the start's week.
const ThroughFriday = -1

// Policy parameterizes Compute.
type Policy struct {
	Anchor     Anchor
	Rollover   Rollover
	WeekOffset int // whole weeks added after anchoring
	Span       int // days from start to end, or ThroughFriday
}

// Window is an inclusive pair of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartISO formats Start as YYYYMMDD.
func (w Window) StartISO() string { return w.Start.Format(ISOBasic) }

// EndISO formats End as YYYYMMDD.
func (w Window) EndISO() string { return w.End.Format(ISOBasic) }

// String renders the window for logs.
func (w Window) String() string {
	return w.StartISO() + "-" + w.EndISO()
}

// Compute derives a window from today's calendar date in today's location.
// The clock part of today is ignored.
func Compute(today time.Time, p Policy) Window {
	day := dateOf(today)

	if p.Rollover == RolloverForward {
		switch day.Weekday() {
		case time.Saturday:
			day = day.AddDate(0, 0, 2)
		case time.Sunday:
			day = day.AddDate(0, 0, 1)
		}
	}

	start := day
	if p.Anchor == AnchorMonday {
		start = start.AddDate(0, 0, -weekdayIndex(start))
	}
	if p.WeekOffset != 0 {
		start = start.AddDate(0, 0, 7*p.WeekOffset)
	}

	var end time.Time
	if p.Span == ThroughFriday {
		end = start.AddDate(0, 0, 4-weekdayIndex(start))
		if end.Before(start) {
			end = start
		}
	} else {
		end = start.AddDate(0, 0, p.Span)
	}
	return Window{Start: start, End: end}
}

// AgendaWindow runs from today (or the next Monday on a weekend) to Friday.
func AgendaWindow(today time.Time) Window {
	return Compute(today, Policy{Anchor: AnchorDay, Rollover: RolloverForward, Span: ThroughFriday})
}

// LessonWindow runs from this week's Monday to Monday+5.
func LessonWindow(today time.Time) Window {
	return Compute(today, Policy{Anchor: AnchorMonday, Span: 5})
}

// NextWeekWindow runs from the first Monday strictly after today to Monday+5.
func NextWeekWindow(today time.Time) Window {
	return Compute(today, Policy{Anchor: AnchorMonday, WeekOffset: 1, Span: 5})
}

// DayWindow covers a single day.
func DayWindow(day time.Time) Window {
	return Compute(day, Policy{Anchor: AnchorDay})
}

// ParseDate accepts YYYYMMDD or YYYY-MM-DD in the local time zone.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range []string{ISOBasic, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: expected YYYYMMDD or YYYY-MM-DD (or %q)", ErrInvalidDate, value, NextWeekKeyword)
}

// Resolve turns a command's --date argument into a window. An empty argument
// uses fallback, the next-week keyword uses NextWeekWindow, anything else must
// be a single date.
func Resolve(arg string, today time.Time, fallback func(time.Time) Window) (Window, error) {
	switch trimmed := strings.ToLower(strings.TrimSpace(arg)); trimmed {
	case "":
		return fallback(today), nil
	case NextWeekKeyword:
		return NextWeekWindow(today), nil
	default:
		day, err := ParseDate(trimmed)
		if err != nil {
			return Window{}, err
		}
		return DayWindow(day), nil
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekdayIndex numbers Monday as 0 and Sunday as 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
