package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateResolution is a resolved calendar date in the user's timezone.
type DateResolution struct {
	Date      string
	Ambiguous bool
}

// relativeDays maps lower-cased keywords to a whole-day offset from now.
var relativeDays = map[string]int{
	"오늘":                   0,
	"today":                0,
	"어제":                   -1,
	"yesterday":            -1,
	"그제":                   -2,
	"그저께":                  -2,
	"day before yesterday": -2,
	"내일":                   1,
	"tomorrow":             1,
	"모레":                   2,
	"day after tomorrow":   2,
}

var (
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDayPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
)

// Today formats now as YYYY-MM-DD in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(dateLayout)
}

// ResolveDate turns a raw date expression into a calendar date in loc.
// A nil or unparseable expression falls back to today and is ambiguous.
//
// MM/DD takes the current year in loc. A "12/31" resolved in early January
// lands in the new year; that rollover is a known limitation.
func ResolveDate(raw *string, loc *time.Location, now time.Time) DateResolution {
	if raw == nil {
		return DateResolution{Date: Today(now, loc), Ambiguous: true}
	}
	expr := strings.TrimSpace(*raw)

	if days, ok := relativeDays[strings.ToLower(expr)]; ok {
		shifted := now.Add(time.Duration(days) * 24 * time.Hour)
		return DateResolution{Date: Today(shifted, loc)}
	}

	if isoDatePattern.MatchString(expr) {
		return DateResolution{Date: expr}
	}

	if m := monthDayPattern.FindStringSubmatch(expr); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.In(loc).Year()
		return DateResolution{Date: fmt.Sprintf("%04d-%02d-%02d", year, month, day)}
	}

	return DateResolution{Date: Today(now, loc), Ambiguous: true}
}

const startTimeLayout = "15:04"

// ResolveStartTime normalizes a stated start time to HH:MM. It accepts 24h
// "H:MM" or "HH:MM". Anything else yields "" and raises no issue.
func ResolveStartTime(raw *string) string {
	if raw == nil {
		return ""
	}
	t, err := time.Parse(startTimeLayout, strings.TrimSpace(*raw))
	if err != nil {
		return ""
	}
	return t.Format(startTimeLayout)
}

// StartedAt combines a resolved date and HH:MM start time in loc. It
// returns nil when either part is missing or invalid.
func StartedAt(date, startTime string, loc *time.Location) *time.Time {
	if startTime == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout+" "+startTimeLayout, date+" "+startTime, loc)
	if err != nil {
		return nil
	}
	return &t
}

// ValidDate reports whether s is a real YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// LoadTimezone resolves an IANA zone name. Blank means UTC.
func LoadTimezone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}
