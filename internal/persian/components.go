package persian

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	timePattern  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// DateComponents holds the raw fields pulled out of one date cell.
// Any field may be empty when the text did not contain it.
type DateComponents struct {
	Year     string `json:"year"`
	Month    string `json:"month"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	FullDate string `json:"full_date"`
	Original string `json:"original_string"`
}

// Complete reports whether year, month and day were all found.
func (c DateComponents) Complete() bool {
	return c.Year != "" && c.Month != "" && c.Day != ""
}

// ExtractComponents parses a portal date cell such as "یکشنبه ۱۳ مهر ۱۴۰۴ - ۱۴:۰۰".
//
// The time is the first H:MM or HH:MM run. The month comes from the month-name table,
// matched against the original text. The year is the first run of exactly four digits,
// and the day is the first run of at most two digits whose string differs from both the
// year and the month number. Missing fields are left empty; the result is never an error.
func ExtractComponents(text string) DateComponents {
	c := DateComponents{Original: text}
	if strings.TrimSpace(text) == "" {
		return c
	}

	cleaned := NormalizeDigits(text)

	c.Time = timePattern.FindString(cleaned)
	withoutTime := timePattern.ReplaceAllString(cleaned, "")

	if n := MonthNumber(text); n > 0 {
		c.Month = strconv.Itoa(n)
	}

	numbers := digitPattern.FindAllString(withoutTime, -1)
	for _, num := range numbers {
		if len(num) == 4 {
			c.Year = num
			break
		}
	}

	// String comparison on purpose: day "7" in month 7 is skipped (see DESIGN.md).
	for _, num := range numbers {
		if len(num) <= 2 && num != c.Year && num != c.Month {
			c.Day = num
			break
		}
	}

	c.FullDate = fmt.Sprintf("%s/%s/%s", c.Year, c.Month, c.Day)
	if c.Time != "" {
		c.FullDate += " - " + c.Time
	}
	return c
}
