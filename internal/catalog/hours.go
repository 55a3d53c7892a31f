package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// weekdayKeys is indexed by time.Weekday.
var weekdayKeys = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayKey returns the opening_hours key for t.
func WeekdayKey(t time.Time) string {
	return weekdayKeys[t.Weekday()]
}

// interval is a service window in seconds since midnight.
type interval struct {
	start, end int
}

func (iv interval) crossesMidnight() bool { return iv.end <= iv.start }

// IsOpen reports whether now falls inside any service window of the
// catalog. Windows whose end is not after their start run past midnight:
// they are honoured on their own day and on the early morning of the next.
func IsOpen(c *domain.Catalog, now time.Time) bool {
	secs := secondsOfDay(now)

	if openToday(c.OpeningHours[WeekdayKey(now)], secs) {
		return true
	}
	yesterday := now.AddDate(0, 0, -1)
	return openFromYesterday(c.OpeningHours[WeekdayKey(yesterday)], secs)
}

// ServiceHours returns the opening-hours string for the day of t. The
// boolean is false when the restaurant does not open that day.
func ServiceHours(c *domain.Catalog, t time.Time) (string, bool) {
	hours := c.OpeningHours[WeekdayKey(t)]
	if isClosedDay(hours) {
		return "", false
	}
	return hours, true
}

func openToday(hours string, secs int) bool {
	if isClosedDay(hours) {
		return false
	}
	for _, iv := range parseIntervals(hours) {
		if iv.crossesMidnight() {
			if secs >= iv.start || secs < iv.end {
				return true
			}
		} else if secs >= iv.start && secs < iv.end {
			return true
		}
	}
	return false
}

func openFromYesterday(hours string, secs int) bool {
	if isClosedDay(hours) {
		return false
	}
	for _, iv := range parseIntervals(hours) {
		if iv.crossesMidnight() && secs < iv.end {
			return true
		}
	}
	return false
}

func isClosedDay(hours string) bool {
	h := strings.ToLower(strings.TrimSpace(hours))
	return h == "" || h == "closed" || h == "fechado"
}

// parseIntervals reads "HH:MM-HH:MM, HH:MM-HH:MM". Malformed windows are
// skipped.
func parseIntervals(hours string) []interval {
	var out []interval
	for _, raw := range strings.Split(hours, ",") {
		raw = strings.TrimSpace(raw)
		startStr, endStr, ok := strings.Cut(raw, "-")
		if !ok {
			continue
		}
		start, ok1 := parseClock(startStr)
		end, ok2 := parseClock(endStr)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, interval{start: start, end: end})
	}
	return out
}

func parseClock(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, false
	}
	return h*3600 + m*60, true
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// PrettyHours renders "18:00-23:00, 11:00-14:00" as
// "18:00 as 23:00 e 11:00 as 14:00".
func PrettyHours(hours string) string {
	var parts []string
	for _, raw := range strings.Split(hours, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if start, end, ok := strings.Cut(raw, "-"); ok {
			parts = append(parts, strings.TrimSpace(start)+" as "+strings.TrimSpace(end))
			continue
		}
		parts = append(parts, raw)
	}
	return strings.Join(parts, " e ")
}
