package jalali

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pfrederiksen/class-schedule/internal/persian"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// GregorianDate is the converted form of one portal date cell.
type GregorianDate struct {
	Year     string     `json:"year"`
	Month    string     `json:"month"`
	Day      string     `json:"day"`
	Time     string     `json:"time,omitempty"`
	DateTime *time.Time `json:"date_time,omitempty"`
	FullDate string     `json:"full_date"`
	Display  string     `json:"display"`
}

// HasDateTime reports whether a valid time was combined with the date.
func (g *GregorianDate) HasDateTime() bool {
	return g != nil && g.DateTime != nil
}

// Convert turns extracted Jalali components into a Gregorian date.
//
// When the date converts but the time does not parse, Convert returns the date-only
// result together with an error wrapping ErrMalformedTime.
func Convert(c persian.DateComponents) (*GregorianDate, error) {
	if !c.Complete() {
		return nil, fmt.Errorf("%w: %q", ErrMissingComponent, c.FullDate)
	}

	jy, errY := strconv.Atoi(c.Year)
	jm, errM := strconv.Atoi(c.Month)
	jd, errD := strconv.Atoi(c.Day)
	if errY != nil || errM != nil || errD != nil {
		return nil, fmt.Errorf("%w: non-numeric field in %q", ErrInvalidDate, c.FullDate)
	}

	date, err := ToGregorian(jy, jm, jd)
	if err != nil {
		return nil, err
	}

	g := &GregorianDate{
		Year:     fmt.Sprintf("%04d", date.Year()),
		Month:    fmt.Sprintf("%02d", int(date.Month())),
		Day:      fmt.Sprintf("%02d", date.Day()),
		Time:     c.Time,
		FullDate: date.Format("2006-01-02"),
		Display:  date.Format("2006/01/02"),
	}
	if c.Time == "" {
		return g, nil
	}

	hour, minute, err := parseClock(c.Time)
	if err != nil {
		return g, err
	}

	dt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	g.DateTime = &dt
	g.FullDate = dt.Format("2006-01-02 15:04")
	g.Display += " - " + dt.Format("15:04")
	return g, nil
}

// ConvertString extracts the components of text and converts them.
func ConvertString(text string) (persian.DateComponents, *GregorianDate, error) {
	c := persian.ExtractComponents(text)
	g, err := Convert(c)
	return c, g, err
}

func parseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, s)
	}
	return hour, minute, nil
}
