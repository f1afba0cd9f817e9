package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

const (
	DefaultProductID = "University Class Schedule"
	DefaultLanguage  = "FA"

	localTimeFormat = "20060102T150405"
	utcTimeFormat   = "20060102T150405Z"

	maxSummaryRunes = 100
	maxLineOctets   = 75
)

var (
	// ErrMissingDateTime means a session endpoint has a date but no usable time.
	ErrMissingDateTime = errors.New("session endpoint has no date-time")
	// ErrInvalidSessionRange means a session does not end strictly after it starts.
	ErrInvalidSessionRange = errors.New("session end is not after start")
	// ErrIO means the calendar could not be written. It is the only fatal error.
	ErrIO = errors.New("writing calendar failed")
)

var textReplacer = strings.NewReplacer(
	"\n", " ",
	"\r", " ",
	";", ",",
	"\\", "/",
)

// Report summarizes one serialization run.
type Report struct {
	Classes int             `json:"classes"`
	Events  int             `json:"events"`
	Skipped []schedule.Skip `json:"skipped,omitempty"`
	Path    string          `json:"path,omitempty"`
}

// Serializer renders class schedules as one iCalendar document.
type Serializer struct {
	ProductID string
	Language  string
	// Now supplies DTSTAMP; defaults to time.Now.
	Now func() time.Time
}

// NewSerializer creates a Serializer, falling back to the defaults for empty arguments.
func NewSerializer(productID, language string) *Serializer {
	if productID == "" {
		productID = DefaultProductID
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &Serializer{ProductID: productID, Language: language, Now: time.Now}
}

// Write emits the calendar for classes to w. Sessions without both date-times, or whose
// end is not after the start, are left out and reported; they never stop the others.
// Any write error is returned wrapped in ErrIO.
func (s *Serializer) Write(w io.Writer, classes []schedule.ClassSchedule) (Report, error) {
	ics := &icsWriter{w: w}
	report := Report{}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	stamp := now().UTC().Format(utcTimeFormat)

	ics.line("BEGIN", "VCALENDAR")
	ics.line("VERSION", "2.0")
	ics.line("PRODID", fmt.Sprintf("-//%s//%s", sanitizeText(s.ProductID), sanitizeText(s.Language)))
	ics.line("CALSCALE", "GREGORIAN")
	ics.line("METHOD", "PUBLISH")

	for _, class := range classes {
		report.Classes++
		summary := SanitizeSummary(class.ClassName)

		for _, sess := range class.Sessions {
			start, end, err := sessionRange(sess)
			if err != nil {
				report.Skipped = append(report.Skipped, skipSession(class.ClassName, sess, err))
				continue
			}

			ics.line("BEGIN", "VEVENT")
			ics.line("UID", sanitizeText(sess.UID))
			ics.line("SUMMARY", summary)
			ics.line("DTSTART", start.Format(localTimeFormat))
			ics.line("DTEND", end.Format(localTimeFormat))
			ics.line("DTSTAMP", stamp)
			ics.line("SEQUENCE", "0")
			ics.line("TRANSP", "OPAQUE")
			ics.line("END", "VEVENT")
			report.Events++
		}
	}

	ics.line("END", "VCALENDAR")

	if ics.err != nil {
		return report, fmt.Errorf("%w: %w", ErrIO, ics.err)
	}

	logger.AddCounter("events.written", int64(report.Events))
	return report, nil
}

// AtomicWriter is satisfied by storage.Store.
type AtomicWriter interface {
	WriteAtomic(name string, fn func(w io.Writer) error) (string, error)
}

// WriteFile serializes classes into name through store. Nothing is left at the target
// path when writing fails.
func (s *Serializer) WriteFile(store AtomicWriter, name string, classes []schedule.ClassSchedule) (Report, error) {
	var report Report
	path, err := store.WriteAtomic(name, func(w io.Writer) error {
		var werr error
		report, werr = s.Write(w, classes)
		return werr
	})
	if err != nil {
		if !errors.Is(err, ErrIO) {
			err = fmt.Errorf("%w: %w", ErrIO, err)
		}
		logger.Error("Failed to create calendar file", logger.Fields{"file": name}, err)
		return report, err
	}

	report.Path = path
	logger.Info("Calendar file created", logger.Fields{
		"path":    path,
		"classes": report.Classes,
		"events":  report.Events,
		"skipped": len(report.Skipped),
	})
	return report, nil
}

func sessionRange(sess schedule.Session) (start, end time.Time, err error) {
	if !sess.StartGregorian.HasDateTime() || !sess.EndGregorian.HasDateTime() {
		return start, end, ErrMissingDateTime
	}
	start, end = *sess.StartGregorian.DateTime, *sess.EndGregorian.DateTime
	if !end.After(start) {
		return start, end, fmt.Errorf("%w: %s >= %s", ErrInvalidSessionRange,
			start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
	}
	return start, end, nil
}

func skipSession(className string, sess schedule.Session, err error) schedule.Skip {
	reason := schedule.SkipMissingDateTime
	if errors.Is(err, ErrInvalidSessionRange) {
		reason = schedule.SkipInvalidRange
	}
	logger.Warn("Skipping invalid session", logger.Fields{
		"class":   className,
		"session": sess.Number,
		"uid":     sess.UID,
		"reason":  string(reason),
	})
	logger.IncrCounter("sessions.skipped." + string(reason))
	return schedule.Skip{ClassName: className, Session: sess.Number, Reason: reason, Err: err}
}

// SanitizeSummary makes a class name safe for a SUMMARY value: line breaks become spaces,
// ';' becomes ',', '\' becomes '/', and names over 100 characters are cut to 97 plus "...".
func SanitizeSummary(text string) string {
	s := sanitizeText(text)
	if utf8.RuneCountInString(s) > maxSummaryRunes {
		runes := []rune(s)
		s = string(runes[:maxSummaryRunes-3]) + "..."
	}
	return s
}

func sanitizeText(text string) string {
	return textReplacer.Replace(text)
}

// icsWriter writes CRLF-terminated content lines and keeps the first error.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(name, value string) {
	if iw.err != nil {
		return
	}
	_, iw.err = io.WriteString(iw.w, foldLine(name+":"+value)+"\r\n")
}

// foldLine splits content lines longer than 75 octets, never inside a UTF-8 sequence.
// Continuation lines start with a single space.
func foldLine(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	width := 0
	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		if width+size > maxLineOctets {
			b.WriteString("\r\n ")
			width = 1
		}
		b.WriteString(line[i : i+size])
		width += size
		i += size
	}
	return b.String()
}
