package jalali

import "errors"

var (
	// ErrMissingComponent means year, month or day was not found in the text.
	ErrMissingComponent = errors.New("missing date component")
	// ErrInvalidDate means the fields do not form a real Jalali day.
	ErrInvalidDate = errors.New("invalid jalali date")
	// ErrMalformedTime is returned together with a usable date-only result.
	ErrMalformedTime = errors.New("malformed time")
)
