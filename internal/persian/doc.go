// Package persian normalizes and parses date text scraped from the university portal.
//
// Portal cells carry dates in the form "[weekday] day month-name year[ - HH:MM]" written
// with Persian or Arabic-Indic digits, for example "پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰".
// NormalizeDigits maps the digit glyphs to ASCII and ExtractComponents pulls the year,
// month, day and time fields out of the text without validating them; calendar
// validation and conversion live in the jalali package.
package persian
