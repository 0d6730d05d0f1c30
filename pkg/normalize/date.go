package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order, the first matching layout wins.
// day-first slash form goes before month-first, so 03/04/2025 is April 3.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
	"2/1/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/1/2",
}

// numericDateRes extract three numeric groups separated by / or -, year-first pattern goes first
var numericDateRes = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),
	regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),
	regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2})`),
}

// ParseDate converts a freeform date string into a calendar date at midnight UTC.
// It tries the known layouts first and falls back to extracting a numeric triplet,
// read as Y-M-D and then as D-M-Y. The second result is false if nothing matched.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendarDate(t.Year(), int(t.Month()), t.Day())
		}
	}

	for _, re := range numericDateRes {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		// year-month-day makes sense only when the first group is a full year
		if len(m[1]) == 4 {
			if t, ok := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
				return t, true
			}
		}
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		if t, ok := calendarDate(year, atoi(m[2]), atoi(m[1])); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

// OptionalDate is ParseDate returning nil for unparseable input
func OptionalDate(raw string) *time.Time {
	t, ok := ParseDate(raw)
	if !ok {
		return nil
	}
	return &t
}

// calendarDate builds a date and rejects out-of-range month or day instead of normalizing them
func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
