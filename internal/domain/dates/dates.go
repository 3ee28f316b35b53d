// Package dates resolves the loose month and date encodings found in the
// source sheets.
//
// Three encodings coexist: abbreviated "Nov-25" month-year tokens, full
// month names paired with a separate year cell, and complete date strings.
// Parsers are tried most specific first and every parser is total: an
// unresolvable value reports ok=false rather than an error, and callers
// exclude the row from whatever window they are building.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolved month dates land mid-month so timezone drift cannot move them
// across a month boundary.
const midMonthDay = 15

var abbrevPattern = regexp.MustCompile(`^([A-Za-z]{3})-([0-9]{2})$`)

var monthAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

var monthFull = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// Layouts tried for complete date strings, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2-Jan-06",
}

// Resolve turns a month cell plus an optional year cell into a point in
// time. Strategy order: "Mon-YY" token, full month name with the year cell,
// then complete date layouts. ok is false when nothing matches.
func Resolve(month, year string) (time.Time, bool) {
	month = strings.TrimSpace(month)
	if month == "" {
		return time.Time{}, false
	}

	if m := abbrevPattern.FindStringSubmatch(month); m != nil {
		token := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		if mon, ok := monthAbbrev[token]; ok {
			yy, _ := strconv.Atoi(m[2])
			full := 1900 + yy
			if yy < 50 {
				full = 2000 + yy
			}
			return time.Date(full, mon, midMonthDay, 0, 0, 0, 0, time.UTC), true
		}
	}

	if mon, ok := monthFull[month]; ok {
		if y, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(year, ".0"))); err == nil && y > 0 {
			return time.Date(y, mon, midMonthDay, 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, month); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Parse resolves a cell that stands alone, with no companion year.
func Parse(s string) (time.Time, bool) {
	return Resolve(s, "")
}
