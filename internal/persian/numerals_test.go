package persian

import (
	"strings"
	"testing"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"persian digits with slashes", "پنجشنبه ۲۱/۳/۱۳۸۳", "پنجشنبه 21/3/1383"},
		{"weekday after date", "۱۳۸۳/۳/۲۱ پنجشنبه", "1383/3/21 پنجشنبه"},
		{"dashes and spaced weekday", "یک شنبه ۱۳۸۳-۲-۲۱", "یک شنبه 1383-2-21"},
		{"arabic-indic digits", "٠١٢٣٤٥٦٧٨٩", "0123456789"},
		{"persian digits", "۰۱۲۳۴۵۶۷۸۹", "0123456789"},
		{"mixed scripts", "۱٢3", "123"},
		{"ascii untouched", "Mon 12:30", "Mon 12:30"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDigits(tt.input); got != tt.want {
				t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDigits_Idempotent(t *testing.T) {
	inputs := []string{
		"پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰",
		"٢٤ آبان ١٤٠٣",
		"no digits at all",
		"\xff\xfe broken ۱ utf8",
		"",
	}

	for _, in := range inputs {
		once := NormalizeDigits(in)
		twice := NormalizeDigits(once)
		if once != twice {
			t.Errorf("NormalizeDigits not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeDigits_PreservesNonDigits(t *testing.T) {
	glyphs := make(map[string]bool)
	for i := 0; i < 10; i++ {
		glyphs[persianDigits[i]] = true
		glyphs[arabicDigits[i]] = true
	}

	input := "دوشنبه ۱۴ اسفند ۱۴۰۴ - ۰۸:۰۰; a\\b\t\n"
	got := NormalizeDigits(input)

	inRunes := []rune(input)
	outRunes := []rune(got)
	if len(inRunes) != len(outRunes) {
		t.Fatalf("rune count changed: %d -> %d", len(inRunes), len(outRunes))
	}
	for i, r := range inRunes {
		if glyphs[string(r)] {
			if outRunes[i] < '0' || outRunes[i] > '9' {
				t.Errorf("glyph %q at %d mapped to %q, want ASCII digit", r, i, outRunes[i])
			}
			continue
		}
		if outRunes[i] != r {
			t.Errorf("non-digit %q at %d changed to %q", r, i, outRunes[i])
		}
	}

	if !strings.Contains(got, "اسفند") {
		t.Error("month name should pass through unchanged")
	}
}

func TestNormalizeDigits_InvalidUTF8(t *testing.T) {
	input := "\xff۳\xfe"
	want := "\xff3\xfe"
	if got := NormalizeDigits(input); got != want {
		t.Errorf("NormalizeDigits(%q) = %q, want %q", input, got, want)
	}
}
