package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/pfrederiksen/class-schedule/internal/persian"
)

var (
	numericDatePattern = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	yearPattern        = regexp.MustCompile(`\d{4}`)
)

// ParseDateRange parses a Jalali date range into Gregorian start and end days.
//
// Supported formats, with Latin, Persian or Arabic-Indic digits:
//   - "1404/07/01 - 1404/07/30" - Two numeric dates
//   - "1404/07/01" - A single day
//   - "مهر ۱۴۰۴" - An entire month
//
// Returns (dateFrom, dateTo, error). Both are midnight UTC.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(persian.NormalizeDigits(input))
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	// Format 1: an entire month by name
	if month := persian.MonthNumber(input); month > 0 {
		year := yearPattern.FindString(input)
		if year == "" {
			return nil, nil, fmt.Errorf("date range %q names a month but no year", input)
		}
		jy, _ := strconv.Atoi(year)
		from, err := jalali.ToGregorian(jy, month, 1)
		if err != nil {
			return nil, nil, err
		}
		to, err := jalali.ToGregorian(jy, month, jalali.MonthLength(jy, month))
		if err != nil {
			return nil, nil, err
		}
		return &from, &to, nil
	}

	// Format 2: one or two numeric dates
	parts := strings.Split(input, "-")
	if len(parts) > 2 {
		return nil, nil, fmt.Errorf("invalid date range format. Use '1404/07/01 - 1404/07/30', '1404/07/01', or 'مهر ۱۴۰۴'")
	}

	from, err := parseNumericDate(parts[0])
	if err != nil {
		return nil, nil, err
	}
	to := from
	if len(parts) == 2 {
		if to, err = parseNumericDate(parts[1]); err != nil {
			return nil, nil, err
		}
	}

	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

func parseNumericDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	matches := numericDatePattern.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY/MM/DD)", s)
	}
	jy, _ := strconv.Atoi(matches[1])
	jm, _ := strconv.Atoi(matches[2])
	jd, _ := strconv.Atoi(matches[3])
	return jalali.ToGregorian(jy, jm, jd)
}
