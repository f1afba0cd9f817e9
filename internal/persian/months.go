package persian

import "strings"

// months is the Jalali month-name table in calendar order.
// Lookups scan it front to back, so earlier entries win when a text contains several names.
var months = [12]string{
	"فروردین",
	"اردیبهشت",
	"خرداد",
	"تیر",
	"مرداد",
	"شهریور",
	"مهر",
	"آبان",
	"آذر",
	"دی",
	"بهمن",
	"اسفند",
}

// MonthNumber returns the 1-based number of the first month name from the table that
// occurs anywhere in text, or 0 when none does.
func MonthNumber(text string) int {
	for i, name := range months {
		if strings.Contains(text, name) {
			return i + 1
		}
	}
	return 0
}

// MonthName returns the Persian name of month n (1-12), or "" when n is out of range.
func MonthName(n int) string {
	if n < 1 || n > len(months) {
		return ""
	}
	return months[n-1]
}
