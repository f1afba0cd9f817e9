package schedule

import (
	"fmt"

	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/pfrederiksen/class-schedule/internal/persian"
)

// Session is one class meeting with both endpoints converted.
type Session struct {
	Number         int                    `json:"number"`
	StartPersian   persian.DateComponents `json:"start_persian"`
	StartGregorian *jalali.GregorianDate  `json:"start_gregorian"`
	EndPersian     persian.DateComponents `json:"end_persian"`
	EndGregorian   *jalali.GregorianDate  `json:"end_gregorian"`
	UID            string                 `json:"uid"`
}

// ClassSchedule is every session found for one class, in page order.
type ClassSchedule struct {
	ClassName string    `json:"class_name"`
	Sessions  []Session `json:"sessions"`
}

// SkipReason explains why a session never reached the calendar.
type SkipReason string

const (
	SkipIncomplete      SkipReason = "incomplete"
	SkipStartDate       SkipReason = "start_unconvertible"
	SkipEndDate         SkipReason = "end_unconvertible"
	SkipMissingDateTime SkipReason = "missing_date_time"
	SkipInvalidRange    SkipReason = "invalid_range"
)

// Skip records a dropped session. Session is its 1-based position within the class as
// seen by the stage that dropped it: the marker count during assembly, the session
// number during serialization.
type Skip struct {
	ClassName string     `json:"class_name"`
	Session   int        `json:"session"`
	Reason    SkipReason `json:"reason"`
	Err       error      `json:"-"`
}

func (s Skip) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s session %d: %s (%v)", s.ClassName, s.Session, s.Reason, s.Err)
	}
	return fmt.Sprintf("%s session %d: %s", s.ClassName, s.Session, s.Reason)
}

// UID builds the event identifier "{class}_{number}_{start}", where start is
// 20060102T150405 when the start has a time and 20060102 otherwise.
func UID(className string, number int, start *jalali.GregorianDate) string {
	return fmt.Sprintf("%s_%d_%s", className, number, compactStart(start))
}

func compactStart(g *jalali.GregorianDate) string {
	switch {
	case g == nil:
		return ""
	case g.HasDateTime():
		return g.DateTime.Format("20060102T150405")
	default:
		return g.Year + g.Month + g.Day
	}
}
