// Package jalali converts Jalali (Persian solar hijri) dates to the proleptic Gregorian
// calendar and back.
//
// Leap years follow the Borkowski break-table algorithm, which reduces to the 33-year
// cycle for every year between 1210 and 1629. Supported years are MinYear..MaxYear.
//
// Convert turns the raw fields produced by persian.ExtractComponents into a GregorianDate,
// reporting ErrMissingComponent, ErrInvalidDate or the non-fatal ErrMalformedTime.
package jalali
