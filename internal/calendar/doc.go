// Package calendar writes class sessions as an iCalendar (RFC 5545) file.
//
// Every valid session becomes one VEVENT with floating local DTSTART/DTEND values, a
// UTC DTSTAMP and the sanitized class name as SUMMARY. Sessions that lack a time or end
// before they start are reported, not written. Lines use CRLF endings and are folded at
// 75 octets. Inspect reads a calendar back for verification.
package calendar
