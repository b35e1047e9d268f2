package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// Clock is a wall-clock hour/minute pair
type Clock struct {
	Hour   int
	Minute int
}

// DefaultClock is used whenever a time label cannot be interpreted
var DefaultClock = Clock{Hour: 14, Minute: 0}

var (
	clockPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(?:([ap])\.?\s*m\b)?`)

	keywordClocks = []struct {
		keyword string
		clock   Clock
	}{
		{keyword: "morning", clock: Clock{Hour: 10}},
		{keyword: "afternoon", clock: Clock{Hour: 14}},
		{keyword: "evening", clock: Clock{Hour: 18}},
	}

	dateLayouts = []string{
		domain.DateFormat,
		domain.USDateFormat,
		domain.USDateFormatLoose,
	}
)

// ParseDate parses YYYY-MM-DD or MM/DD/YYYY into midnight of that day in loc
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, value, loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidAppointmentTime, raw)
}

// ParseTimeLabel interprets a free-form time label. It never fails:
// "H[:MM] [am|pm]" is parsed first, then the keywords
// morning/afternoon/evening, and anything else degrades to 14:00.
func ParseTimeLabel(label string) Clock {
	if c, ok := parseClock(label); ok {
		return c
	}

	lower := strings.ToLower(label)
	for _, kw := range keywordClocks {
		if strings.Contains(lower, kw.keyword) {
			return kw.clock
		}
	}

	return DefaultClock
}

func parseClock(label string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(label)
	if m == nil {
		return Clock{}, false
	}

	minuteStr, meridiem := m[2], strings.ToLower(m[3])

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return Clock{}, false
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return Clock{}, false
		}
	}

	switch {
	case meridiem == "p" && hour < 12:
		hour += 12
	case meridiem == "a" && hour == 12:
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute}, true
}

// At returns the instant of the clock on the given day in loc
func (c Clock) At(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

// ResolveStart combines a date string and a time label into an instant
func ResolveStart(date, label string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTimeLabel(label).At(day, loc), nil
}

// FormatTimeLabel renders an instant as the canonical "3:04 PM" label
func FormatTimeLabel(t time.Time) string {
	return t.Format(domain.TimeLabelFormat)
}
