package persian

import "strings"

// Digit glyphs indexed by their numeric value.
var (
	persianDigits = [10]string{"۰", "۱", "۲", "۳", "۴", "۵", "۶", "۷", "۸", "۹"}
	arabicDigits  = [10]string{"٠", "١", "٢", "٣", "٤", "٥", "٦", "٧", "٨", "٩"}
)

var digitReplacer = newDigitReplacer()

func newDigitReplacer() *strings.Replacer {
	pairs := make([]string, 0, 40)
	for i := 0; i < 10; i++ {
		ascii := string(rune('0' + i))
		pairs = append(pairs, persianDigits[i], ascii, arabicDigits[i], ascii)
	}
	return strings.NewReplacer(pairs...)
}

// NormalizeDigits replaces Persian and Arabic-Indic digits with ASCII digits.
// Every other byte of s is copied through unchanged, so the function is safe on
// arbitrary (even invalid UTF-8) input and applying it twice is the same as once.
func NormalizeDigits(s string) string {
	if s == "" {
		return s
	}
	return digitReplacer.Replace(s)
}
