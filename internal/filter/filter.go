// Package filter narrows assembled class schedules before they are written.
//
// A filter can select classes by name and sessions by start date:
//   - Date range: session start must fall within DateFrom and DateTo (inclusive)
//   - Classes: class name must contain at least one entry (case-insensitive)
//
// Example usage:
//
//	from, to, _ := filter.ParseDateRange("مهر ۱۴۰۴")
//	f := filter.NewFilter()
//	f.DateFrom, f.DateTo = from, to
//	f.Classes = []string{"ریاضی"}
//
//	kept := f.Apply(classes)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

// Filter represents class and session selection criteria
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Class name filtering (case-insensitive substring match)
	Classes []string `json:"classes,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match every class and session until criteria are added.
func NewFilter() *Filter {
	return &Filter{Classes: []string{}}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil && f.DateTo == nil && len(f.Classes) == 0
}

// MatchesClass reports whether a class name passes the class criteria.
func (f *Filter) MatchesClass(name string) bool {
	if len(f.Classes) == 0 {
		return true
	}
	nameLower := strings.ToLower(schedule.NormalizeText(name))
	for _, c := range f.Classes {
		if strings.Contains(nameLower, strings.ToLower(schedule.NormalizeText(c))) {
			return true
		}
	}
	return false
}

// MatchesSession reports whether a session starts inside the date range.
// Only the calendar day of the start is compared, so a session on DateTo still matches.
func (f *Filter) MatchesSession(sess schedule.Session) bool {
	if f.DateFrom == nil && f.DateTo == nil {
		return true
	}
	start, ok := startDay(sess)
	if !ok {
		return false
	}
	if f.DateFrom != nil && start.Before(day(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && start.After(day(*f.DateTo)) {
		return false
	}
	return true
}

// Apply returns the classes that match, each holding only its matching sessions.
// Session numbers and UIDs are left as assembled. The input is not modified.
func (f *Filter) Apply(classes []schedule.ClassSchedule) []schedule.ClassSchedule {
	if f.IsEmpty() {
		return classes
	}

	filtered := make([]schedule.ClassSchedule, 0, len(classes))
	for _, c := range classes {
		if !f.MatchesClass(c.ClassName) {
			continue
		}
		kept := schedule.ClassSchedule{ClassName: c.ClassName, Sessions: []schedule.Session{}}
		for _, sess := range c.Sessions {
			if f.MatchesSession(sess) {
				kept.Sessions = append(kept.Sessions, sess)
			}
		}
		filtered = append(filtered, kept)
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: 1404/07/01 | To: 1404/07/30 | Classes: ریاضی"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.DateFrom != nil {
		parts = append(parts, "From: "+jalaliString(*f.DateFrom))
	}
	if f.DateTo != nil {
		parts = append(parts, "To: "+jalaliString(*f.DateTo))
	}
	if len(f.Classes) > 0 {
		parts = append(parts, "Classes: "+strings.Join(f.Classes, ", "))
	}
	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{Classes: make([]string, len(f.Classes))}
	copy(clone.Classes, f.Classes)

	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}
	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}
	return clone
}

func startDay(sess schedule.Session) (time.Time, bool) {
	g := sess.StartGregorian
	if g == nil {
		return time.Time{}, false
	}
	if g.HasDateTime() {
		return day(*g.DateTime), true
	}
	t, err := time.Parse("2006-01-02", g.FullDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func jalaliString(t time.Time) string {
	jy, jm, jd, err := jalali.FromGregorian(t)
	if err != nil {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%04d/%02d/%02d", jy, jm, jd)
}
